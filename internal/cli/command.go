package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ziggurat/internal"
)

// APIKeyEnvVar is the environment variable holding the translation API key
const APIKeyEnvVar = "ZIGGURAT_API_KEY"

// ErrNoAPIKey is returned when every credential source is exhausted
var ErrNoAPIKey = errors.New("no API key found: checked --api-key flag, config file, .env file and " + APIKeyEnvVar + " environment variable")

// APIKeySource identifies where the effective API key came from
type APIKeySource string

const (
	SourceFlag        APIKeySource = "command line flag"
	SourceConfigFile  APIKeySource = "config file"
	SourceDotEnv      APIKeySource = ".env file"
	SourceEnvironment APIKeySource = "environment variable"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ziggurat",
		Short: "PDF and EPUB document translator",
		Long: `ziggurat extracts text from PDF and EPUB documents, translates it
via the Google Translate API (or an LLM backend) and reassembles the
translated text into an output document of the same format.

Examples:
  ziggurat --input book.epub --output buch.epub --to de
  ziggurat --input paper.pdf --output papier.pdf --to fr --provider openai
  ziggurat                                  # launch the GUI`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is .ziggurat.json in cwd or $HOME)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Input document (PDF or EPUB)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output document path")
	cmd.Flags().StringVarP(&flags.Target, "to", "t", "", "Target language code (e.g. de, fr, ja)")
	cmd.Flags().StringVar(&flags.APIKey, "api-key", "", "Translation API key (overrides config file, .env and environment)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Launch the graphical frontend")

	// Translation flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: google, openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model override for the openai and gemini providers")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, "Fragments per translation request")
	cmd.Flags().BoolVar(&flags.NoMemory, "no-memory", false, "Disable the persistent translation memory")

	// Register the version flag ourselves so it gets -V and leaves -v
	// for --verbose.
	cmd.Flags().BoolVarP(&flags.ShowVersion, "version", "V", false, "Print version and exit")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translate.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translate.batch_size", cmd.Flags().Lookup("batch-size"))
}

// FlagChanged reports whether a flag was set explicitly on the command line
func FlagChanged(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("json")
	} else {
		// Search for .ziggurat.json in cwd first, then home
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("json")
		viper.SetConfigName(".ziggurat")
	}

	// Environment variables are handled explicitly in ResolveAPIKey; wiring
	// them into viper would let them shadow the config file and break the
	// source precedence.

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ResolveAPIKey resolves the effective API key with the documented
// precedence: CLI flag > config file > .env file > environment variable.
// The .env file is read directly rather than loaded into the environment
// so the two lowest-priority sources stay distinguishable.
func ResolveAPIKey(flagValue string) (string, APIKeySource, error) {
	if flagValue != "" {
		return flagValue, SourceFlag, nil
	}

	if key := viper.GetString("api_key"); key != "" {
		return key, SourceConfigFile, nil
	}

	if env, err := godotenv.Read(); err == nil {
		if key := env[APIKeyEnvVar]; key != "" {
			return key, SourceDotEnv, nil
		}
	}

	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key, SourceEnvironment, nil
	}

	return "", "", ErrNoAPIKey
}
