package notification

import "strings"

// Config holds configuration for the kafka notification consumer.
type Config struct {
	// Enabled starts the consumer with the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Brokers is a comma separated list of broker addresses.
	Brokers string `mapstructure:"brokers" default:"localhost:9092"`
	// Topic carries the save and publish notifications.
	Topic string `mapstructure:"topic" default:"content-notifications"`
	// GroupID is the consumer group.
	GroupID string `mapstructure:"group_id" default:"content-relations"`
}

// BrokerList splits Brokers into addresses.
func (c Config) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
