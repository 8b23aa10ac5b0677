package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"reservations/pkg/client"
	kafka_config "reservations/pkg/kafka/config"
	"reservations/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	PublicBaseURL string
	AdminEmail    string
	SenderEmail   string
	SenderName    string

	MailTransport string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPTLSPolicy string
	AWSRegion     string

	StoreBackend      string
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Kafka *kafka_config.Config

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// A .env file is a local-development convenience; real deployments set
	// the environment directly.
	_ = godotenv.Load()

	senderEmail := getEnvStr(EnvSenderEmail, DefaultSenderEmail)

	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		PublicBaseURL: strings.TrimRight(getEnvStr(EnvPublicBaseURL, DefaultPublicBaseURL), "/"),
		AdminEmail:    getEnvStr(EnvAdminEmail, senderEmail),
		SenderEmail:   senderEmail,
		SenderName:    getEnvStr(EnvSenderName, DefaultSenderName),

		MailTransport: strings.ToLower(getEnvStr(EnvMailTransport, DefaultMailTransport)),
		SMTPHost:      getEnvStr(EnvSMTPHost, ""),
		SMTPPort:      getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUsername:  getEnvStr(EnvSMTPUsername, ""),
		SMTPPassword:  getEnvStr(EnvSMTPPassword, ""),
		SMTPTLSPolicy: strings.ToLower(getEnvStr(EnvSMTPTLSPolicy, DefaultSMTPTLSPolicy)),
		AWSRegion:     getEnvStr(EnvAWSRegion, ""),

		StoreBackend:      strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Kafka: kafka_config.Load(),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if u, err := url.Parse(cfg.PublicBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("PublicBaseURL must be an absolute http(s) URL, got: %s", cfg.PublicBaseURL))
	}
	if cfg.SenderEmail == "" {
		errors = append(errors, "SenderEmail cannot be empty")
	}
	if cfg.AdminEmail == "" {
		errors = append(errors, "AdminEmail cannot be empty")
	}

	switch cfg.MailTransport {
	case MailTransportSMTP:
		if cfg.SMTPHost == "" {
			errors = append(errors, "SMTPHost cannot be empty when MailTransport is smtp")
		}
		if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
		}
		switch cfg.SMTPTLSPolicy {
		case "mandatory", "opportunistic", "none":
		default:
			errors = append(errors, fmt.Sprintf("SMTPTLSPolicy must be one of [mandatory, opportunistic, none], got: %s", cfg.SMTPTLSPolicy))
		}
	case MailTransportSES, MailTransportLog:
	default:
		errors = append(errors, fmt.Sprintf("MailTransport must be one of [smtp, ses, log], got: %s", cfg.MailTransport))
	}

	switch cfg.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendMongo:
		if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of [memory, mongo], got: %s", cfg.StoreBackend))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.Kafka != nil {
		if err := cfg.Kafka.Validate(); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	args := []any{
		"port", cfg.Port,
		"public_base_url", cfg.PublicBaseURL,
		"admin_email", cfg.AdminEmail,
		"sender_email", cfg.SenderEmail,
		"mail_transport", cfg.MailTransport,
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
		"smtp_password_set", cfg.SMTPPassword != "",
		"store_backend", cfg.StoreBackend,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	}
	if cfg.StoreBackend == StoreBackendMongo {
		args = append(args,
			"mongo_uri", redactMongoURI(cfg.MongoURI),
			"mongo_database", cfg.MongoDatabaseName,
			"mongo_conn_timeout", cfg.MongoConnTimeout,
		)
	}
	if cfg.Kafka != nil {
		args = append(args,
			"kafka_enabled", cfg.Kafka.Enabled(),
			"kafka_brokers", cfg.Kafka.Brokers,
			"kafka_topic", cfg.Kafka.Topic,
		)
	}
	cfg.Log.Info("Configuration loaded successfully", args...)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallbackCSV string) []string {
	var out []string
	for _, item := range strings.Split(getEnvStr(key, fallbackCSV), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}
