package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	S3           S3Config           `mapstructure:"s3"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Firebase     FirebaseConfig     `mapstructure:"firebase"`
	Notification NotificationConfig `mapstructure:"notification"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
// Expiration is parsed from a duration string ("60m", "1h", ...).
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// FirebaseConfig points at the service-account key used by the push gateway.
type FirebaseConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// NotificationConfig tunes the fan-out engine. ChunkSize must not exceed
// the FCM per-call multicast ceiling.
type NotificationConfig struct {
	ChunkSize          int  `mapstructure:"chunk_size"`
	PruneInvalidTokens bool `mapstructure:"prune_invalid_tokens"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Env override for nested keys, e.g. server.address -> SERVER_ADDRESS
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "coaching_app")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("notification.chunk_size", 500)
	viper.SetDefault("notification.prune_invalid_tokens", false)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; rely on defaults and env vars.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
