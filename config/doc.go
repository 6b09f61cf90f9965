// Package config provides configuration loading and validation for tinifycli.
//
// The package handles an optional YAML configuration file, environment
// variables and CLI flags, merged by viper and validated using
// go-playground/validator. The API key is not part of the configuration; see
// the credential package.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (TINIFY_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with TINIFY_ prefix:
//   - dir → TINIFY_DIR
//   - api.endpoint → TINIFY_API_ENDPOINT
//   - api.timeout → TINIFY_API_TIMEOUT
//   - log.level → TINIFY_LOG_LEVEL
//
// # Validation
//
//   - Endpoint must be a URL
//   - Timeout must not be negative
//   - Log level must be debug, info, warn, or error
//   - Log format must be text or json
package config
