package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Mongo configuration (inquiry store).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration (wizard sessions).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Business calendar settings. Times are minutes from midnight in the
	// business time zone; the last bookable start is CloseMinute itself.
	TimeZone        string `mapstructure:"BUSINESS_TIME_ZONE"`
	OpenMinute      int    `mapstructure:"BUSINESS_OPEN_MINUTE"`
	CloseMinute     int    `mapstructure:"BUSINESS_CLOSE_MINUTE"`
	SlotStepMinutes int    `mapstructure:"SLOT_STEP_MINUTES"`
	MeetingMinutes  int    `mapstructure:"MEETING_MINUTES"`

	// Calendar store (Google Calendar).
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Video-conferencing provider (server-to-server OAuth).
	VideoClientID     string `mapstructure:"VIDEO_CLIENT_ID"`
	VideoClientSecret string `mapstructure:"VIDEO_CLIENT_SECRET"`
	VideoAccountID    string `mapstructure:"VIDEO_ACCOUNT_ID"`
	VideoAPIBaseURL   string `mapstructure:"VIDEO_API_BASE_URL"`
	VideoTokenURL     string `mapstructure:"VIDEO_TOKEN_URL"`

	// Transactional email endpoint.
	EmailEndpoint string `mapstructure:"EMAIL_ENDPOINT"`
	EmailAPIKey   string `mapstructure:"EMAIL_API_KEY"`
	EmailSender   string `mapstructure:"EMAIL_SENDER"`

	// Operator contacts for booking alerts.
	OperatorEmail    string `mapstructure:"OPERATOR_EMAIL"`
	OperatorName     string `mapstructure:"OPERATOR_NAME"`
	OperatorFCMTopic string `mapstructure:"OPERATOR_FCM_TOPIC"`

	// Firebase service account for operator push alerts (optional).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "lumora")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("BUSINESS_TIME_ZONE", "Europe/Madrid")
	viper.SetDefault("BUSINESS_OPEN_MINUTE", 9*60)
	viper.SetDefault("BUSINESS_CLOSE_MINUTE", 16*60+30)
	viper.SetDefault("SLOT_STEP_MINUTES", 30)
	viper.SetDefault("MEETING_MINUTES", 60)
	viper.SetDefault("VIDEO_TOKEN_URL", "https://zoom.us/oauth/token")
	viper.SetDefault("VIDEO_API_BASE_URL", "https://api.zoom.us/v2")
	viper.SetDefault("OPERATOR_NAME", "Lumora Team")
	viper.SetDefault("OPERATOR_FCM_TOPIC", "bookings")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BusinessLocation resolves the configured business time zone.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.TimeZone)
	if err != nil {
		log.Fatalf("invalid BUSINESS_TIME_ZONE %q: %v", AppConfig.TimeZone, err)
	}
	return loc
}
