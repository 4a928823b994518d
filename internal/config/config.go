package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	OutputDir   string
	DatabaseURL string
	Harvest     HarvestConfig
	Trello      TrelloConfig
	Zoho        ZohoConfig
	Mailchimp   MailchimpConfig
	SMTP        SMTPConfig
	Coupon      CouponConfig
}

// HarvestConfig holds the Harvest invoicing credentials. Both Token and
// AccountID are required for a real call; otherwise invoices are simulated.
type HarvestConfig struct {
	Token     string
	AccountID string
	BaseURL   string
}

func (c HarvestConfig) Configured() bool {
	return c.Token != "" && c.AccountID != ""
}

type TrelloConfig struct {
	Key     string
	Token   string
	ListID  string
	BaseURL string
}

func (c TrelloConfig) Configured() bool {
	return c.Key != "" && c.Token != "" && c.ListID != ""
}

type ZohoConfig struct {
	AccessToken string
	BaseURL     string
}

func (c ZohoConfig) Configured() bool {
	return c.AccessToken != ""
}

type MailchimpConfig struct {
	APIKey       string
	ListID       string
	ServerPrefix string
	BaseURL      string
}

func (c MailchimpConfig) Configured() bool {
	return c.APIKey != "" && c.ListID != "" && c.ServerPrefix != ""
}

// SMTPConfig holds the outbound mail transport. All four values must be set
// or email sending falls back to the simulated path.
type SMTPConfig struct {
	Server   string
	Port     int
	User     string
	Password string
}

func (c SMTPConfig) Configured() bool {
	return c.Server != "" && c.Port != 0 && c.User != "" && c.Password != ""
}

// CouponConfig drives the notification branch: orders strictly above
// Threshold get the coupon email plus the Mailchimp HighOrderTag.
type CouponConfig struct {
	Threshold    float64
	Code         string
	HighOrderTag string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OUTPUT_DIR", "outputs")
	viper.SetDefault("HARVEST_BASE_URL", "https://api.harvestapp.com")
	viper.SetDefault("TRELLO_BASE_URL", "https://api.trello.com")
	viper.SetDefault("ZOHO_BASE_URL", "https://www.zohoapis.com")
	viper.SetDefault("SMTP_SERVER", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("COUPON_THRESHOLD", "50")
	viper.SetDefault("COUPON_CODE", "COUPON15")
	viper.SetDefault("HIGH_ORDER_TAG", "high-order")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "5000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		OutputDir:   getEnvOrViper("OUTPUT_DIR", "outputs"),
		DatabaseURL: getEnvOrViper("DATABASE_URL", ""),
		Harvest: HarvestConfig{
			Token:     getEnvOrViper("HARVEST_TOKEN", ""),
			AccountID: getEnvOrViper("HARVEST_ACCOUNT_ID", ""),
			BaseURL:   getEnvOrViper("HARVEST_BASE_URL", "https://api.harvestapp.com"),
		},
		Trello: TrelloConfig{
			Key:     getEnvOrViper("TRELLO_KEY", ""),
			Token:   getEnvOrViper("TRELLO_TOKEN", ""),
			ListID:  getEnvOrViper("TRELLO_LIST_ID", ""),
			BaseURL: getEnvOrViper("TRELLO_BASE_URL", "https://api.trello.com"),
		},
		Zoho: ZohoConfig{
			AccessToken: getEnvOrViper("ZOHO_ACCESS_TOKEN", ""),
			BaseURL:     getEnvOrViper("ZOHO_BASE_URL", "https://www.zohoapis.com"),
		},
		Mailchimp: MailchimpConfig{
			APIKey:       getEnvOrViper("MAILCHIMP_API_KEY", ""),
			ListID:       getEnvOrViper("MAILCHIMP_LIST_ID", ""),
			ServerPrefix: getEnvOrViper("MAILCHIMP_SERVER_PREFIX", ""),
			BaseURL:      getEnvOrViper("MAILCHIMP_BASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Server:   getEnvOrViper("SMTP_SERVER", "smtp.gmail.com"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     getEnvOrViper("SMTP_USER", ""),
			Password: getEnvOrViper("SMTP_PASSWORD", ""),
		},
		Coupon: CouponConfig{
			Threshold:    viper.GetFloat64("COUPON_THRESHOLD"),
			Code:         getEnvOrViper("COUPON_CODE", "COUPON15"),
			HighOrderTag: getEnvOrViper("HIGH_ORDER_TAG", "high-order"),
		},
	}

	// Mailchimp's regional base URL is derived from the server prefix unless
	// overridden explicitly (overrides are how tests point at a local server).
	if cfg.Mailchimp.BaseURL == "" && cfg.Mailchimp.ServerPrefix != "" {
		cfg.Mailchimp.BaseURL = fmt.Sprintf("https://%s.api.mailchimp.com", cfg.Mailchimp.ServerPrefix)
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
