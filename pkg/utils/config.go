package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Session   SessionConfig
	OTP       OTPConfig
	Slots     SlotConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// StoreConfig selects the repository backend. The default "memory" driver
// serves the seeded demo dataset; "postgres" uses the pgx pool.
type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// SlotConfig shapes the generated availability window per speaker.
type SlotConfig struct {
	WindowDays  int     // rolling window length, today inclusive
	StartHour   int     // first slot start, 24-hour
	EndHour     int     // last slot end, 24-hour
	BookedRatio float64 // share of seeded slots pre-marked booked
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("SLOT_WINDOW_DAYS", 7)
	viper.SetDefault("SLOT_START_HOUR", 9)
	viper.SetDefault("SLOT_END_HOUR", 16)
	viper.SetDefault("SLOT_BOOKED_RATIO", 0.3)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	// Missing .env is fine, defaults plus real env vars still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			viper.Reset()
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Driver: viper.GetString("STORE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		Slots: SlotConfig{
			WindowDays:  viper.GetInt("SLOT_WINDOW_DAYS"),
			StartHour:   viper.GetInt("SLOT_START_HOUR"),
			EndHour:     viper.GetInt("SLOT_END_HOUR"),
			BookedRatio: viper.GetFloat64("SLOT_BOOKED_RATIO"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}
