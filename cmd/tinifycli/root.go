package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sagarc03/tinifycli"
	"github.com/sagarc03/tinifycli/config"
	"github.com/sagarc03/tinifycli/credential"
	"github.com/sagarc03/tinifycli/filesystem"
	"github.com/sagarc03/tinifycli/output"
	"github.com/sagarc03/tinifycli/tinify"
)

// configFileName is looked up in the credential directory when --config is not given.
const configFileName = "config.yaml"

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Version: version,
		Use:     "tinifycli [KEY]",
		Short:   "Compress every image in a directory with the Tinify API",
		Long: `tinifycli uploads every PNG, JPEG, GIF, WebP and BMP image in the
working directory to the Tinify API and saves the compressed copy next to
it as compressed_<name>.

The API key is taken from the first argument, the TINIFY_KEY environment
variable, or the key saved with "tinifycli set <KEY>", in that order.
A key starting with "-" must follow "--", as in "tinifycli -- -abc123".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger := setupLogging(stderr, cfg.Log)

			ctx := config.WithContext(cmd.Context(), cfg)
			ctx = withApp(ctx, &app{
				stdin:  stdin,
				stdout: stdout,
				stderr: stderr,
				logger: logger,
			})
			cmd.SetContext(ctx)
			return nil
		},
		RunE: runCompress,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return tinifycli.NewUsageError(err)
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.tinifycli/config.yaml)")
	flags.String("dir", ".", "directory to scan and write into (env: TINIFY_DIR)")
	flags.String("endpoint", "", "Tinify shrink endpoint (default: "+tinify.DefaultEndpoint+", env: TINIFY_API_ENDPOINT)")
	flags.String("user-agent", "", "User-Agent header sent to the API (env: TINIFY_API_USER_AGENT)")
	flags.Duration("timeout", 0, "HTTP timeout per request, 0 for none (env: TINIFY_API_TIMEOUT)")
	flags.String("log-level", "info", "log level: debug, info, warn, error (env: TINIFY_LOG_LEVEL)")
	flags.String("log-format", "text", "log format: text, json (env: TINIFY_LOG_FORMAT)")
	flags.BoolP("quiet", "q", false, "suppress per-file progress lines")

	rootCmd.Flags().Bool("show-config", false, "print the effective configuration as YAML and exit")

	rootCmd.AddCommand(newSetCmd())

	return rootCmd
}

// execute runs the command tree with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdin, stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return exitCode(output.NewFormatter(stderr, false), err)
}

// exitCode reports err on f and maps it to an exit status.
func exitCode(f *output.HumanFormatter, err error) int {
	if err == nil {
		return 0
	}

	var usageErr *tinifycli.UsageError
	if errors.As(err, &usageErr) {
		f.FormatUsage(credential.DefaultDir())
		if errors.Is(err, tinifycli.ErrMissingKey) {
			f.FormatMissingKey(usageErr.Err)
		} else {
			f.FormatError(usageErr.Err)
		}
		return 1
	}

	f.FormatError(err)
	return 1
}

// loadConfig reads the file named by --config, or the default config file
// when it exists, then applies environment variables and flags.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	var files []string

	configPath, _ := flags.GetString("config")
	if configPath != "" {
		files = append(files, configPath)
	} else {
		defaultPath := filepath.Join(credential.DefaultDir(), configFileName)
		if _, err := os.Stat(defaultPath); err == nil {
			files = append(files, defaultPath)
		}
	}

	cfg, err := config.Load(files, flags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runCompress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := appFromContext(ctx)
	if err != nil {
		return err
	}
	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	if showConfig, _ := cmd.Flags().GetBool("show-config"); showConfig {
		return cfg.WriteYAML(a.stdout)
	}

	res, err := credential.Resolve(args, credential.KeyFromEnv(), credential.NewStore(credential.DefaultDir()))
	if err != nil {
		return err
	}
	a.logger.Debug("using API key", "source", res.Source)

	client := tinify.New(res.Key,
		tinify.WithEndpoint(cfg.API.Endpoint),
		tinify.WithUserAgent(cfg.API.UserAgent),
		tinify.WithTimeout(cfg.API.Timeout),
	)

	store, err := filesystem.Open(cfg.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn("failed to close directory", "dir", cfg.Dir, "err", closeErr)
		}
	}()

	quiet, _ := cmd.Flags().GetBool("quiet")
	formatter := output.NewFormatter(a.stderr, quiet)

	service, err := tinifycli.NewService(client, store, formatter)
	if err != nil {
		return err
	}

	summary, err := service.Run(ctx)
	if err != nil {
		return err
	}

	formatter.FormatSummary(summary)
	return nil
}
