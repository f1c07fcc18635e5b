package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/secrets"
	"github.com/talentwire/scout/internal/talent"
)

const (
	app = "scout"
)

type Config struct {
	Backend  *BackendConfig `mapstructure:"backend"`
	Search   *SearchConfig  `mapstructure:"search"`
	Upload   *UploadConfig  `mapstructure:"upload"`
	StateDir string         `mapstructure:"state-dir"`
}

type BackendConfig struct {
	URL       string        `mapstructure:"url"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	TopK int `mapstructure:"top-k"`
}

type UploadConfig struct {
	PollInterval time.Duration `mapstructure:"poll-interval"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "scout is a conversational cli for searching candidate profiles and uploading resumes",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("backend.token-file", "SCOUT_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SCOUT_TOKEN_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("backend.url", "SCOUT_BACKEND_URL"); err != nil {
		log.Fatalf("binding SCOUT_BACKEND_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must be parseable.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}

		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Every setting has a default, so a missing config file is fine.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Backend == nil {
		config.Backend = &BackendConfig{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Upload == nil {
		config.Upload = &UploadConfig{}
	}

	return config, nil
}

// newClient builds the backend API client from the config. The bearer token
// is optional; backends without authentication need no token file.
func newClient(ctx context.Context, logger *zap.Logger, config *Config) (*talent.Client, error) {
	token, err := secrets.LoadOptional(secrets.Source{
		Name: "backend token",
		File: config.Backend.TokenFile,
	})
	if err != nil {
		return nil, err
	}

	client := talent.New(ctx, logger, config.Backend.URL).
		WithToken(token).
		WithTimeout(config.Backend.Timeout)

	if config.Backend.UserAgent != "" {
		client.UserAgent = config.Backend.UserAgent
	}

	return client, nil
}

// stateDir resolves the directory holding the session id and conversation
// files, defaulting to a scout dir under the user config dir.
func stateDir(config *Config) string {
	if config.StateDir != "" {
		return config.StateDir
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "." + app
	}

	return filepath.Join(base, app)
}
