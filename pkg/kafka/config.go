package kafka

import "time"

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers messages before
	// flushing. Zero means the package default.
	BatchTimeout time.Duration
}
