package credential_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sagarc03/tinifycli"
	"github.com/sagarc03/tinifycli/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	key string
	err error
}

func (s stubLoader) Load() (string, error) {
	return s.key, s.err
}

func TestResolve(t *testing.T) {
	notFound := fmt.Errorf("read key file: %w", tinifycli.ErrNotFound)

	tests := []struct {
		name       string
		args       []string
		env        string
		loader     credential.Loader
		wantKey    string
		wantSource credential.Source
		wantUsage  bool
	}{
		{
			name:       "argument wins",
			args:       []string{"arg-key"},
			env:        "env-key",
			loader:     stubLoader{key: "saved-key"},
			wantKey:    "arg-key",
			wantSource: credential.SourceArgument,
		},
		{
			name:       "extra arguments ignored",
			args:       []string{"arg-key", "extra"},
			wantKey:    "arg-key",
			wantSource: credential.SourceArgument,
		},
		{
			name:       "environment before store",
			env:        " env-key ",
			loader:     stubLoader{key: "saved-key"},
			wantKey:    "env-key",
			wantSource: credential.SourceEnvironment,
		},
		{
			name:       "saved key",
			loader:     stubLoader{key: "saved-key"},
			wantKey:    "saved-key",
			wantSource: credential.SourceStore,
		},
		{
			name:      "nothing saved",
			loader:    stubLoader{err: notFound},
			wantUsage: true,
		},
		{
			name:      "saved key is blank",
			loader:    stubLoader{key: ""},
			wantUsage: true,
		},
		{
			name:      "no loader",
			wantUsage: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := credential.Resolve(tc.args, tc.env, tc.loader)

			if tc.wantUsage {
				var usageErr *tinifycli.UsageError
				require.True(t, errors.As(err, &usageErr), "want usage error, got %v", err)
				assert.ErrorIs(t, err, tinifycli.ErrMissingKey)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, res.Key)
			assert.Equal(t, tc.wantSource, res.Source)
		})
	}
}

func TestResolve_StoreReadFailure(t *testing.T) {
	readErr := errors.New("permission denied")

	_, err := credential.Resolve(nil, "", stubLoader{err: readErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)

	var usageErr *tinifycli.UsageError
	assert.False(t, errors.As(err, &usageErr))
}

func TestResolve_WithStore(t *testing.T) {
	store := credential.NewStore(filepath.Join(t.TempDir(), ".tinifycli"))

	_, err := credential.Resolve(nil, "", store)
	assert.ErrorIs(t, err, tinifycli.ErrMissingKey)

	require.NoError(t, store.Save(" saved \n"))

	res, err := credential.Resolve(nil, "", store)
	require.NoError(t, err)
	assert.Equal(t, credential.Resolution{Key: "saved", Source: credential.SourceStore}, res)
}

func TestKeyFromEnv(t *testing.T) {
	t.Setenv(credential.EnvKey, "from-env")
	assert.Equal(t, "from-env", credential.KeyFromEnv())
}

func TestValidateKey(t *testing.T) {
	key, err := credential.ValidateKey("  abc \n")
	require.NoError(t, err)
	assert.Equal(t, "abc", key)

	_, err = credential.ValidateKey(" \t\n")
	assert.ErrorIs(t, err, tinifycli.ErrEmptyKey)
}
