package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	OAuth    OAuthConfig
	Storage  StorageConfig
	Token    TokenConfig
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

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	From          string
	SubjectPrefix string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

type StorageConfig struct {
	ProjectID    string
	KeyFile      string
	Bucket       string
	AvatarFolder string
	KTPFolder    string
}

// TokenConfig covers email verification / password reset tokens.
type TokenConfig struct {
	ExpiryMinutes      int
	SweepIntervalHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 60)
	viper.SetDefault("TOKEN_SWEEP_INTERVAL_HOURS", 1)
	viper.SetDefault("EMAIL_SUBJECT_PREFIX", "[Dampit Trans Solo] ")
	viper.SetDefault("LOG_PATH", "logs/")

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
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:          viper.GetString("SMTP_HOST"),
			Port:          viper.GetInt("SMTP_PORT"),
			User:          viper.GetString("SMTP_USER"),
			Password:      viper.GetString("SMTP_PASS"),
			From:          viper.GetString("EMAIL_FROM"),
			SubjectPrefix: viper.GetString("EMAIL_SUBJECT_PREFIX"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleCallbackURL:  viper.GetString("GOOGLE_CALLBACK_URL"),
		},
		Storage: StorageConfig{
			ProjectID:    viper.GetString("GCLOUD_PROJECT_ID"),
			KeyFile:      viper.GetString("GCLOUD_KEY_FILE"),
			Bucket:       viper.GetString("GCLOUD_STORAGE"),
			AvatarFolder: viper.GetString("GCLOUD_STORAGE_AVATAR_FOLDER"),
			KTPFolder:    viper.GetString("GCLOUD_STORAGE_KTP_FOLDER"),
		},
		Token: TokenConfig{
			ExpiryMinutes:      viper.GetInt("TOKEN_EXPIRY_MINUTES"),
			SweepIntervalHours: viper.GetInt("TOKEN_SWEEP_INTERVAL_HOURS"),
		},
	}

	return config, nil
}
