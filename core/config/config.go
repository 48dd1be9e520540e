package config

import (
	"reflect"
	"strings"

	"termsheet-reconciler/core/database"
	"termsheet-reconciler/core/logger"
	"termsheet-reconciler/core/server"
	"termsheet-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the booking database connection.
	Database database.Config `mapstructure:"database"`
	// Recon holds tolerances and output settings for reconciliation runs.
	Recon ReconConfig `mapstructure:"recon"`
	// OpenAI holds credentials for the term sheet extraction service.
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// ReconConfig holds the reconciliation configuration surface that varies
// per deployment. Field order and synonym lists are overridden through a
// separate mappings file (see LoadMappings) rather than environment
// variables, since they are structured data.
type ReconConfig struct {
	// NumericTolerance is the accepted relative difference for numeric
	// fields (0.001 = 0.1%).
	NumericTolerance float64 `mapstructure:"numeric_tolerance" default:"0.001"`
	// DateToleranceDays is the accepted day difference for date fields.
	DateToleranceDays int `mapstructure:"date_tolerance_days" default:"0"`
	// OutputDir is where generated reports are written.
	OutputDir string `mapstructure:"output_dir" default:"outputs"`
	// MappingsFile optionally points to a YAML file overriding the
	// built-in field order and synonym lists.
	MappingsFile string `mapstructure:"mappings_file" default:""`
	// BookingTable is the booking table name used by the database loader.
	BookingTable string `mapstructure:"booking_table" default:"booking_records"`
}

// OpenAIConfig holds configuration for the LLM extraction collaborator.
type OpenAIConfig struct {
	// ApiKey is the OpenAI API key. Extraction is disabled when empty.
	ApiKey string `mapstructure:"api_key" default:""`
	// Model is the chat completion model used for extraction.
	Model string `mapstructure:"model" default:"gpt-4o"`
	// TimeoutSeconds bounds a single extraction call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
	// MaxTokens caps the completion size.
	MaxTokens int `mapstructure:"max_tokens" default:"1500"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
