package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Events   EventsConfig
	Matching MatchingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// EventsConfig configures the RabbitMQ booking-event publisher. An empty URL
// disables publishing.
type EventsConfig struct {
	URL      string
	Exchange string
}

// MatchingConfig points at the matching service that produced the confirmed
// match a booking is seeded from.
type MatchingConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("EVENTS_EXCHANGE", "booking.events")
	viper.SetDefault("MATCHING_TIMEOUT_SECONDS", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Events: EventsConfig{
			URL:      viper.GetString("EVENTS_URL"),
			Exchange: viper.GetString("EVENTS_EXCHANGE"),
		},
		Matching: MatchingConfig{
			BaseURL:        viper.GetString("MATCHING_BASE_URL"),
			TimeoutSeconds: viper.GetInt("MATCHING_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
