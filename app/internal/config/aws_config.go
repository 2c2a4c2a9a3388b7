package config

type AwsConfig struct {
	Region   string    `mapstructure:"region"`
	Endpoint string    `mapstructure:"endpoint"`
	Sqs      SQSConfig `mapstructure:"sqs"`
}

// SQSEnabled reports whether a claim event queue is configured.
func (c AwsConfig) SQSEnabled() bool {
	return c.Sqs.QueueURLs.ClaimEventQueue != ""
}
