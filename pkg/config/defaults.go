package config

import "time"

const (
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultPublicBaseURL = "http://localhost:5000"
	DefaultSenderEmail   = "reservations@localhost"
	DefaultSenderName    = "Maison d'Élite"

	DefaultMailTransport = MailTransportLog
	DefaultSMTPPort      = 587
	DefaultSMTPTLSPolicy = "mandatory"

	DefaultStoreBackend      = StoreBackendMemory
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "reservations"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 45 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

const (
	MailTransportSMTP = "smtp"
	MailTransportSES  = "ses"
	MailTransportLog  = "log"

	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)
