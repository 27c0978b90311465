package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// setupKeySources arranges the four credential sources in an isolated
// working directory. Each source gets a distinct value so the resolved key
// identifies where it came from.
func setupKeySources(t *testing.T, config, dotEnv, env bool) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	viper.Reset()
	if config {
		viper.Set("api_key", "key-from-config")
	}

	if dotEnv {
		envFile := filepath.Join(dir, ".env")
		if err := os.WriteFile(envFile, []byte(APIKeyEnvVar+"=key-from-dotenv\n"), 0644); err != nil {
			t.Fatalf("Failed to write .env file: %v", err)
		}
	}

	if env {
		t.Setenv(APIKeyEnvVar, "key-from-env")
	} else {
		t.Setenv(APIKeyEnvVar, "")
	}
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	// All 16 presence combinations: the effective key must come from the
	// highest-priority source that is present.
	for i := 0; i < 16; i++ {
		flag := i&8 != 0
		config := i&4 != 0
		dotEnv := i&2 != 0
		env := i&1 != 0

		name := fmt.Sprintf("flag=%t_config=%t_dotenv=%t_env=%t", flag, config, dotEnv, env)
		t.Run(name, func(t *testing.T) {
			setupKeySources(t, config, dotEnv, env)

			flagValue := ""
			if flag {
				flagValue = "key-from-flag"
			}

			key, source, err := ResolveAPIKey(flagValue)

			var wantKey string
			var wantSource APIKeySource
			switch {
			case flag:
				wantKey, wantSource = "key-from-flag", SourceFlag
			case config:
				wantKey, wantSource = "key-from-config", SourceConfigFile
			case dotEnv:
				wantKey, wantSource = "key-from-dotenv", SourceDotEnv
			case env:
				wantKey, wantSource = "key-from-env", SourceEnvironment
			default:
				if !errors.Is(err, ErrNoAPIKey) {
					t.Fatalf("Expected ErrNoAPIKey, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ResolveAPIKey failed: %v", err)
			}
			if key != wantKey {
				t.Errorf("Expected key %q, got %q", wantKey, key)
			}
			if source != wantSource {
				t.Errorf("Expected source %q, got %q", wantSource, source)
			}
		})
	}
}

func TestResolveAPIKey_ErrorNamesAllSources(t *testing.T) {
	setupKeySources(t, false, false, false)

	_, _, err := ResolveAPIKey("")
	if err == nil {
		t.Fatal("Expected error when all sources are exhausted")
	}

	for _, want := range []string{"--api-key", "config file", ".env", APIKeyEnvVar} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error message should mention %q, got: %v", want, err)
		}
	}
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "ziggurat" {
		t.Errorf("Expected command use 'ziggurat', got '%s'", cmd.Use)
	}

	// The documented CLI surface must exist
	for _, name := range []string{"input", "output", "to", "api-key", "verbose", "gui", "provider", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be registered", name)
		}
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("Expected persistent flag --config to be registered")
	}

	// -v is verbose, -V is version
	if f := cmd.Flags().ShorthandLookup("v"); f == nil || f.Name != "verbose" {
		t.Error("Expected shorthand -v to map to --verbose")
	}
	if f := cmd.Flags().ShorthandLookup("V"); f == nil || f.Name != "version" {
		t.Error("Expected shorthand -V to map to --version")
	}
}

func TestFlagChanged(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if FlagChanged(cmd.Flags(), "provider") {
		t.Error("Expected provider flag to be unchanged before parsing")
	}

	if err := cmd.Flags().Set("provider", "openai"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}
	if !FlagChanged(cmd.Flags(), "provider") {
		t.Error("Expected provider flag to report changed after set")
	}

	if FlagChanged(cmd.Flags(), "does-not-exist") {
		t.Error("Expected unknown flag to report unchanged")
	}
}
