package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// Notification channels
const (
	ChannelSMTP = entity.ChannelSMTP
	ChannelLark = entity.ChannelLark
	ChannelNone = "none"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Store        StoreConfig        `mapstructure:"store"`
	Document     DocumentConfig     `mapstructure:"document"`
	Profile      ProfileConfig      `mapstructure:"profile"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds the delivery log database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// StoreConfig holds the record store configuration
type StoreConfig struct {
	Format      string `mapstructure:"format"` // csv or xlsx
	InvoicePath string `mapstructure:"invoice_path"`
	KYCPath     string `mapstructure:"kyc_path"`
}

// DocumentConfig holds artifact output configuration
type DocumentConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	VerifyOutput bool   `mapstructure:"verify_output"`
}

// ProfileConfig overrides fields of the default issuer profile.
// Empty values keep the default.
type ProfileConfig struct {
	CompanyName     string `mapstructure:"company_name"`
	CompanyAddress  string `mapstructure:"company_address"`
	CompanyCity     string `mapstructure:"company_city"`
	CompanyWebsite  string `mapstructure:"company_website"`
	CompanyPhone    string `mapstructure:"company_phone"`
	CompanyEmail    string `mapstructure:"company_email"`
	CompanyVAT      string `mapstructure:"company_vat"`
	BankAccountName string `mapstructure:"bank_account_name"`
	BankAccountNo   string `mapstructure:"bank_account_no"`
	BankIBAN        string `mapstructure:"bank_iban"`
	BankSwift       string `mapstructure:"bank_swift"`
	BankBranch      string `mapstructure:"bank_branch"`
	Terms           string `mapstructure:"terms"`
	BalanceDueTerms string `mapstructure:"balance_due_terms"`
	VATRate         string `mapstructure:"vat_rate"`
	VATLabel        string `mapstructure:"vat_label"`
	FooterNote      string `mapstructure:"footer_note"`
	CurrencyCode    string `mapstructure:"currency_code"`
	DeclarationText string `mapstructure:"declaration_text"`
	InvoicePrefix   string `mapstructure:"invoice_prefix"`
}

// NotificationConfig selects and configures the outbound channel
type NotificationConfig struct {
	Channel string     `mapstructure:"channel"` // smtp, lark or none
	SMTP    SMTPConfig `mapstructure:"smtp"`
	Lark    LarkConfig `mapstructure:"lark"`
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	From               string        `mapstructure:"from"`
	FromName           string        `mapstructure:"from_name"`
	Timeout            time.Duration `mapstructure:"timeout"`
	RequireTLS         bool          `mapstructure:"require_tls"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// LarkConfig holds Lark API configuration
type LarkConfig struct {
	AppID     string `mapstructure:"app_id"`
	AppSecret string `mapstructure:"app_secret"`
	BaseURL   string `mapstructure:"base_url"`
}

// Load reads .env (when present), the YAML file at configPath (when
// non-empty) and environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment variables: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Notification.SMTP.From == "" {
		cfg.Notification.SMTP.From = cfg.Notification.SMTP.Username
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	// Database defaults
	v.SetDefault("database.path", "data/deliveries.db")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// Store defaults
	v.SetDefault("store.format", "csv")
	v.SetDefault("store.invoice_path", "data/invoice_records.csv")
	v.SetDefault("store.kyc_path", "data/customer_records.csv")

	// Document defaults
	v.SetDefault("document.output_dir", "output")
	v.SetDefault("document.verify_output", false)

	// Notification defaults
	v.SetDefault("notification.channel", ChannelSMTP)
	v.SetDefault("notification.smtp.host", "smtp.gmail.com")
	v.SetDefault("notification.smtp.port", 587)
	v.SetDefault("notification.smtp.timeout", 30*time.Second)
	v.SetDefault("notification.smtp.from_name", entity.DefaultProfile().CompanyName)
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		// Sensitive credentials from environment
		"notification.smtp.username": {"SMTP_USERNAME", "GMAIL_USER"},
		"notification.smtp.password": {"SMTP_PASSWORD", "GMAIL_APP_PASSWORD"},
		"notification.smtp.host":     {"SMTP_HOST"},
		"notification.smtp.port":     {"SMTP_PORT"},
		"notification.smtp.from":     {"SMTP_FROM"},
		"notification.lark.app_id":   {"LARK_APP_ID"},
		"notification.lark.app_secret": {
			"LARK_APP_SECRET",
		},
		"notification.channel": {"NOTIFICATION_CHANNEL"},
		"store.format":         {"STORE_FORMAT"},
		"store.invoice_path":   {"STORE_INVOICE_PATH"},
		"store.kyc_path":       {"STORE_KYC_PATH"},
		"document.output_dir":  {"DOCUMENT_OUTPUT_DIR"},
		"server.port":          {"SERVER_PORT"},
		"logger.level":         {"LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch strings.ToLower(c.Store.Format) {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("store.format must be csv or xlsx, got %q", c.Store.Format)
	}
	if c.Store.InvoicePath == "" {
		return fmt.Errorf("store.invoice_path is required")
	}
	if c.Store.KYCPath == "" {
		return fmt.Errorf("store.kyc_path is required")
	}

	if c.Document.OutputDir == "" {
		return fmt.Errorf("document.output_dir is required")
	}

	if _, err := c.Profile.ToEntity(); err != nil {
		return err
	}

	switch c.Notification.Channel {
	case ChannelSMTP:
		if c.Notification.SMTP.Host == "" {
			return fmt.Errorf("notification.smtp.host is required")
		}
		if c.Notification.SMTP.Port <= 0 {
			return fmt.Errorf("notification.smtp.port must be positive")
		}
		if c.Notification.SMTP.From == "" {
			return fmt.Errorf("notification.smtp.from or notification.smtp.username is required")
		}
	case ChannelLark:
		if c.Notification.Lark.AppID == "" {
			return fmt.Errorf("notification.lark.app_id is required")
		}
		if c.Notification.Lark.AppSecret == "" {
			return fmt.Errorf("notification.lark.app_secret is required")
		}
	case ChannelNone:
	default:
		return fmt.Errorf("notification.channel must be smtp, lark or none, got %q", c.Notification.Channel)
	}

	return nil
}

// ToEntity merges the overrides onto the default profile
func (p ProfileConfig) ToEntity() (entity.Profile, error) {
	profile := entity.DefaultProfile()

	overrides := []struct {
		value string
		dst   *string
	}{
		{p.CompanyName, &profile.CompanyName},
		{p.CompanyAddress, &profile.CompanyAddress},
		{p.CompanyCity, &profile.CompanyCity},
		{p.CompanyWebsite, &profile.CompanyWebsite},
		{p.CompanyPhone, &profile.CompanyPhone},
		{p.CompanyEmail, &profile.CompanyEmail},
		{p.CompanyVAT, &profile.CompanyVAT},
		{p.BankAccountName, &profile.BankAccountName},
		{p.BankAccountNo, &profile.BankAccountNo},
		{p.BankIBAN, &profile.BankIBAN},
		{p.BankSwift, &profile.BankSwift},
		{p.BankBranch, &profile.BankBranch},
		{p.Terms, &profile.Terms},
		{p.BalanceDueTerms, &profile.BalanceDueTerms},
		{p.VATLabel, &profile.VATLabel},
		{p.FooterNote, &profile.FooterNote},
		{p.CurrencyCode, &profile.CurrencyCode},
		{p.DeclarationText, &profile.DeclarationText},
		{p.InvoicePrefix, &profile.InvoicePrefix},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(o.value); v != "" {
			*o.dst = v
		}
	}

	if rate := strings.TrimSpace(p.VATRate); rate != "" {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return entity.Profile{}, fmt.Errorf("profile.vat_rate is not a number: %w", err)
		}
		if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return entity.Profile{}, fmt.Errorf("profile.vat_rate must be in [0, 1), got %s", rate)
		}
		profile.VATRate = d
	}

	return profile, nil
}
