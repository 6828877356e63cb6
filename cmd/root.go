package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/fixtures"
	"github.com/spigell/stemwijzer/internal/logger"
	"github.com/spigell/stemwijzer/internal/remote"
	"github.com/spigell/stemwijzer/internal/secrets"
	"github.com/spigell/stemwijzer/internal/server"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

const (
	app       = "stemwijzer"
	envPrefix = "STEMWIJZER"
)

type Config struct {
	Remote    *RemoteConfig    `mapstructure:"remote"`
	Data      fixtures.Source  `mapstructure:"data"`
	Scoring   ScoringConfig    `mapstructure:"scoring"`
	Server    server.Config    `mapstructure:"server"`
	Favorites *FavoritesConfig `mapstructure:"favorites"`
	Top       int              `mapstructure:"top"`
}

type RemoteConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base-url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
}

type ScoringConfig struct {
	StrictStances bool `mapstructure:"strict-stances"`
}

type FavoritesConfig struct {
	Database string `mapstructure:"database"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "stemwijzer matches your opinions on political statements with Dutch party positions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is stemwijzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("remote-url", "", "base URL of the remote stemwijzer backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("remote.base-url", rootCmd.PersistentFlags().Lookup("remote-url"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("remote.enabled", false)
	viper.SetDefault("remote.base-url", "http://localhost:8081")
	viper.SetDefault("remote.timeout", "10s")
	viper.SetDefault("server.listen", ":8081")
	viper.SetDefault("server.request-timeout", "30s")
	viper.SetDefault("favorites.database", "stemwijzer.db")
	viper.SetDefault("top", 10)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so only an explicit or broken config is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
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
		return nil, errors.New("config is required")
	}
	if config.Remote == nil {
		config.Remote = &RemoteConfig{}
	}
	if config.Favorites == nil {
		config.Favorites = &FavoritesConfig{}
	}

	return config, nil
}

// setup builds the logger and reads the config, the first steps of every
// command.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting with config",
		zap.Bool("remote_enabled", config.Remote.Enabled),
		zap.String(logger.FieldRemoteURL, config.Remote.BaseURL),
		zap.String("questions_file", config.Data.QuestionsFile),
		zap.String("positions_file", config.Data.PositionsFile),
		zap.Bool("strict_stances", config.Scoring.StrictStances),
	)

	return l, config
}

func newStore(config *Config, logger *zap.Logger) (*fixtures.Store, error) {
	tables, err := fixtures.Load(config.Data)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	return fixtures.NewStore(tables, config.Data, logger), nil
}

func newScorer(config *Config) *sw.Scorer {
	return sw.NewScorer(sw.WithStrictStances(config.Scoring.StrictStances))
}

func resolveToken(config *RemoteConfig) (string, error) {
	if config == nil {
		return "", errors.New("remote config is required")
	}

	return secrets.LoadOptional(secrets.Source{
		Name:  "remote token",
		Value: config.Token,
		File:  config.TokenFile,
	})
}

func newRemote(config *RemoteConfig, logger *zap.Logger) (*remote.Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, errors.New("remote.base-url is not configured")
	}

	token, err := resolveToken(config)
	if err != nil {
		return nil, err
	}

	client := remote.New(logger, config.BaseURL,
		remote.WithToken(token),
		remote.WithTimeout(config.Timeout),
	)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client, nil
}
