package credential

import (
	"errors"
	"os"
	"strings"

	"github.com/sagarc03/tinifycli"
)

// EnvKey is the environment variable consulted when no key argument is given.
const EnvKey = "TINIFY_KEY"

// Source tells where a resolved key came from.
type Source string

const (
	SourceArgument    Source = "argument"
	SourceEnvironment Source = "environment"
	SourceStore       Source = "store"
)

// Resolution is the key a run uses and its origin.
type Resolution struct {
	Key    string
	Source Source
}

// Loader reads a saved key. *Store implements it.
type Loader interface {
	Load() (string, error)
}

// KeyFromEnv returns the value of the TINIFY_KEY environment variable.
func KeyFromEnv() string {
	return os.Getenv(EnvKey)
}

// Resolve picks the key for a run from, in order: the first positional
// argument, envKey, and the saved key.
//
// When none of them yields a key the error is a *tinifycli.UsageError
// wrapping tinifycli.ErrMissingKey. A saved key that cannot be read for any
// reason other than not existing is returned as a plain error.
func Resolve(args []string, envKey string, loader Loader) (Resolution, error) {
	if len(args) > 0 {
		return Resolution{Key: args[0], Source: SourceArgument}, nil
	}

	if key := strings.TrimSpace(envKey); key != "" {
		return Resolution{Key: key, Source: SourceEnvironment}, nil
	}

	if loader == nil {
		return Resolution{}, tinifycli.NewUsageError(tinifycli.ErrMissingKey)
	}

	key, err := loader.Load()
	if err != nil {
		if errors.Is(err, tinifycli.ErrNotFound) {
			return Resolution{}, tinifycli.NewUsageError(tinifycli.ErrMissingKey)
		}
		return Resolution{}, err
	}

	if key == "" {
		return Resolution{}, tinifycli.NewUsageError(tinifycli.ErrMissingKey)
	}

	return Resolution{Key: key, Source: SourceStore}, nil
}

// ValidateKey trims key and rejects it when nothing is left.
func ValidateKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", tinifycli.ErrEmptyKey
	}
	return key, nil
}
