package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/agendabeleza/backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Server    ServerSettings    `yaml:"server"`
	Database  DatabaseSettings  `yaml:"database"`
	Mail      MailSettings      `yaml:"mail"`
	Security  SecuritySettings  `yaml:"security"`
	Session   SessionSettings   `yaml:"session"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
	BaseURL     string `yaml:"base_url" env:"APP_BASE_URL"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseSettings contains database connection settings.
// SSLCA points at the trust anchor used for TLS; FallbackCA is tried when it is missing.
type DatabaseSettings struct {
	Host           string        `yaml:"host" env:"MYSQL_HOST"`
	Port           int           `yaml:"port" env:"MYSQL_PORT"`
	Name           string        `yaml:"name" env:"MYSQL_DB"`
	User           string        `yaml:"user" env:"MYSQL_USER"`
	Password       string        `yaml:"password" env:"MYSQL_PASSWORD"`
	SSLCA          string        `yaml:"ssl_ca" env:"MYSQL_SSL_CA"`
	FallbackCA     string        `yaml:"fallback_ca" env:"MYSQL_FALLBACK_CA"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MYSQL_CONNECT_TIMEOUT"`
	MaxAttempts    int           `yaml:"max_attempts" env:"MYSQL_MAX_ATTEMPTS"`
	RetryDelay     time.Duration `yaml:"retry_delay" env:"MYSQL_RETRY_DELAY"`
	AutoMigrate    bool          `yaml:"auto_migrate" env:"MYSQL_AUTO_MIGRATE"`
}

// MailSettings contains outgoing email settings
type MailSettings struct {
	Provider         string        `yaml:"provider" env:"MAIL_PROVIDER"`
	Server           string        `yaml:"server" env:"MAIL_SERVER"`
	Port             int           `yaml:"port" env:"MAIL_PORT"`
	UseTLS           bool          `yaml:"use_tls" env:"MAIL_USE_TLS"`
	UseSSL           bool          `yaml:"use_ssl" env:"MAIL_USE_SSL"`
	Username         string        `yaml:"username" env:"MAIL_USERNAME"`
	Password         string        `yaml:"password" env:"MAIL_PASSWORD"`
	SenderName       string        `yaml:"sender_name" env:"MAIL_SENDER_NAME"`
	SenderAddress    string        `yaml:"sender_address" env:"MAIL_DEFAULT_SENDER"`
	AdminAddress     string        `yaml:"admin_address" env:"MAIL_ADMIN_ADDRESS"`
	MailerSendAPIKey string        `yaml:"mailersend_api_key" env:"MAILERSEND_API_KEY"`
	SendGridAPIKey   string        `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	Workers          int           `yaml:"workers" env:"MAIL_WORKERS"`
	QueueSize        int           `yaml:"queue_size" env:"MAIL_QUEUE_SIZE"`
	SendTimeout      time.Duration `yaml:"send_timeout" env:"MAIL_SEND_TIMEOUT"`
}

// SecuritySettings contains secrets and hashing parameters
type SecuritySettings struct {
	SecretKey        string        `yaml:"secret_key" env:"SECRET_KEY"`
	ResetTokenMaxAge time.Duration `yaml:"reset_token_max_age" env:"RESET_TOKEN_MAX_AGE"`
	BcryptCost       int           `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// SessionSettings contains session cookie and storage settings
type SessionSettings struct {
	CookieName    string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
	TTL           time.Duration `yaml:"ttl" env:"SESSION_TTL"`
	Secure        bool          `yaml:"secure" env:"SESSION_COOKIE_SECURE"`
	Store         string        `yaml:"store" env:"SESSION_STORE"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	File       string `yaml:"file" env:"LOG_FILE"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// RateLimitSettings throttles the credential endpoints per client IP
type RateLimitSettings struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// Address returns host:port of the database server
func (dbs *DatabaseSettings) Address() string {
	return fmt.Sprintf("%s:%d", dbs.Host, dbs.Port)
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// SMTPAddress returns host:port of the mail relay
func (ms *MailSettings) SMTPAddress() string {
	return fmt.Sprintf("%s:%d", ms.Server, ms.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := newConfig()

	// The file is optional; environment variables alone are enough.
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// newConfig returns a config holding the defaults a zero value cannot
// express. The file and environment are applied on top of it.
func newConfig() *AppConfig {
	return &AppConfig{
		Mail: MailSettings{UseTLS: true},
	}
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}
	if config.App.BaseURL == "" {
		config.App.BaseURL = constants.DefaultBaseURL
	}
	config.App.BaseURL = strings.TrimRight(config.App.BaseURL, "/")

	// Server defaults
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Port == 0 {
		config.Database.Port = constants.DefaultDBPort
	}
	if config.Database.FallbackCA == "" {
		config.Database.FallbackCA = constants.DefaultFallbackCA
	}
	if config.Database.ConnectTimeout == 0 {
		config.Database.ConnectTimeout = constants.DBConnectTimeout
	}
	if config.Database.MaxAttempts == 0 {
		config.Database.MaxAttempts = constants.DefaultDBMaxAttempts
	}
	if config.Database.RetryDelay == 0 {
		config.Database.RetryDelay = constants.DBRetryDelay
	}

	// Mail defaults
	if config.Mail.Provider == "" {
		if config.Mail.Username == "" {
			config.Mail.Provider = constants.MailProviderLog
		} else {
			config.Mail.Provider = constants.MailProviderSMTP
		}
	}
	if config.Mail.Server == "" {
		config.Mail.Server = constants.DefaultMailServer
	}
	if config.Mail.Port == 0 {
		config.Mail.Port = constants.DefaultMailPort
	}
	// Implicit TLS replaces STARTTLS.
	if config.Mail.UseSSL {
		config.Mail.UseTLS = false
	}
	if config.Mail.SenderName == "" {
		config.Mail.SenderName = config.App.Name
	}
	if config.Mail.SenderAddress == "" {
		config.Mail.SenderAddress = config.Mail.Username
	}
	if config.Mail.AdminAddress == "" {
		config.Mail.AdminAddress = config.Mail.Username
	}
	if config.Mail.Workers == 0 {
		config.Mail.Workers = constants.DefaultMailWorkers
	}
	if config.Mail.QueueSize == 0 {
		config.Mail.QueueSize = constants.DefaultMailQueueSize
	}
	if config.Mail.SendTimeout == 0 {
		config.Mail.SendTimeout = constants.DefaultMailSendTimeout
	}

	// Security defaults
	if config.Security.ResetTokenMaxAge == 0 {
		config.Security.ResetTokenMaxAge = constants.DefaultResetTokenMaxAge * time.Second
	}

	// Session defaults
	if config.Session.CookieName == "" {
		config.Session.CookieName = constants.DefaultCookieName
	}
	if config.Session.TTL == 0 {
		config.Session.TTL = constants.DefaultSessionTTL
	}
	if config.Session.Store == "" {
		config.Session.Store = constants.SessionStoreMemory
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// Rate limit defaults
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitRPS
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.App.IsProduction() &&
		(config.Security.SecretKey == "" || config.Security.SecretKey == constants.PlaceholderSecretKey) {
		return fmt.Errorf("secret key must be set in production")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user must be set")
	}

	if config.Database.MaxAttempts < 1 {
		return fmt.Errorf("database max attempts must be at least 1")
	}

	switch config.Mail.Provider {
	case constants.MailProviderSMTP, constants.MailProviderMailerSend, constants.MailProviderSendGrid, constants.MailProviderLog:
	default:
		return fmt.Errorf("unknown mail provider: %s", config.Mail.Provider)
	}

	if config.Mail.Provider == constants.MailProviderMailerSend && config.Mail.MailerSendAPIKey == "" {
		return fmt.Errorf("mailersend provider requires an API key")
	}

	if config.Mail.Provider == constants.MailProviderSendGrid && config.Mail.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid provider requires an API key")
	}

	switch config.Session.Store {
	case constants.SessionStoreMemory:
	case constants.SessionStoreRedis:
		if config.Session.RedisAddr == "" {
			return fmt.Errorf("redis session store requires an address")
		}
	default:
		return fmt.Errorf("unknown session store: %s", config.Session.Store)
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	logCfg := *config

	if logCfg.Database.Password != "" {
		logCfg.Database.Password = constants.LogRedactedValue
	}
	if logCfg.Mail.Password != "" {
		logCfg.Mail.Password = constants.LogRedactedValue
	}
	if logCfg.Security.SecretKey != "" {
		logCfg.Security.SecretKey = constants.LogRedactedValue
	}

	log.Info().
		Str("environment", logCfg.App.Environment).
		Str("version", logCfg.App.Version).
		Str("server", logCfg.Server.ServerAddress()).
		Str("db_host", logCfg.Database.Host).
		Int("db_port", logCfg.Database.Port).
		Str("db_name", logCfg.Database.Name).
		Str("db_ssl_ca", logCfg.Database.SSLCA).
		Str("mail_provider", logCfg.Mail.Provider).
		Str("mail_server", logCfg.Mail.SMTPAddress()).
		Str("session_store", logCfg.Session.Store).
		Str("log_level", logCfg.Logging.Level).
		Msg("Configuration loaded")
}
