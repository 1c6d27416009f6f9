package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Payment  PaymentConfig
	Booking  BookingConfig
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

type PaymentConfig struct {
	APIBase        string
	SecretKey      string
	TimeoutSeconds int
}

type BookingConfig struct {
	// Hours before check-in until which a booking stays cancellable.
	// Exposed to clients as a deadline, never enforced as state.
	CancelWindowHours int
	// When true, a cron sweep marks overdue confirmed bookings completed.
	AutoComplete     bool
	AutoCompleteCron string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENT_API_BASE", "https://api.stripe.com")
	viper.SetDefault("PAYMENT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("BOOKING_CANCEL_WINDOW_HOURS", 48)
	viper.SetDefault("BOOKING_AUTO_COMPLETE", false)
	viper.SetDefault("BOOKING_AUTO_COMPLETE_CRON", "0 3 * * *")

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
		Payment: PaymentConfig{
			APIBase:        viper.GetString("PAYMENT_API_BASE"),
			SecretKey:      viper.GetString("PAYMENT_SECRET_KEY"),
			TimeoutSeconds: viper.GetInt("PAYMENT_TIMEOUT_SECONDS"),
		},
		Booking: BookingConfig{
			CancelWindowHours: viper.GetInt("BOOKING_CANCEL_WINDOW_HOURS"),
			AutoComplete:      viper.GetBool("BOOKING_AUTO_COMPLETE"),
			AutoCompleteCron:  viper.GetString("BOOKING_AUTO_COMPLETE_CRON"),
		},
	}

	return config, nil
}
