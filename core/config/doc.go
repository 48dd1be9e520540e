// Package config loads the application configuration from environment
// variables and an optional .env file. Defaults are declared as struct
// tags and registered with viper through reflection, so every setting
// can be overridden with an environment variable named after its nested
// key (server.port -> SERVER_PORT).
//
// Reconciliation field mappings are structured data and therefore load
// from a YAML file instead, see LoadMappings.
package config
