package cmd

import (
	"log"

	"careertracker/internal/source"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "careertracker"

	defaultHTTPAddr      = ":8080"
	defaultIntervalHours = 6
)

type Config struct {
	DatabaseURL string          `mapstructure:"database-url"`
	RedisURL    string          `mapstructure:"redis-url"`
	HTTP        HTTPConfig      `mapstructure:"http"`
	Fetch       FetchConfig     `mapstructure:"fetch"`
	Sources     []source.Config `mapstructure:"sources"`
	SMTP        *SMTPConfig     `mapstructure:"smtp"`
	AI          *AIConfig       `mapstructure:"ai"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type FetchConfig struct {
	IntervalHours int `mapstructure:"interval-hours"`
}

type SMTPConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	PasswordFile string `mapstructure:"password-file"`
	From         string `mapstructure:"from"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careertracker aggregates job postings from configured boards and manages your applications",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database-url", "DATABASE_URL"); err != nil {
		log.Fatalf("binding DATABASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("redis-url", "REDIS_URL"); err != nil {
		log.Fatalf("binding REDIS_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careertracker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for serve and fetch. If there is no config, we can skip initialization
	if serveCmd.CalledAs() == "" && fetchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config != nil {
		if config.HTTP.Addr == "" {
			config.HTTP.Addr = defaultHTTPAddr
		}
		if config.Fetch.IntervalHours <= 0 {
			config.Fetch.IntervalHours = defaultIntervalHours
		}
	}

	return config, nil
}
