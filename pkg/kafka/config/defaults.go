package kafka_config

import "time"

const (
	DefaultKafkaBrokers = ""

	DefaultTopic    = "reservations.events"
	DefaultDLQTopic = ""

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false
)
