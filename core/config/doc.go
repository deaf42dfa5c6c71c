// Package config provides configuration management for the relation service.
//
// It uses Viper to load settings from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and body limit
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the export bucket
//   - Log: level and format
//   - Relations: query parameter limit, page and batch sizes, type cache TTL
//   - Kafka: notification consumer
//
// Environment keys are the upper-cased section and field joined by an
// underscore, e.g. RELATIONS_PAGE_SIZE or KAFKA_BROKERS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
