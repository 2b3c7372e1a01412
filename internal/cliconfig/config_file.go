package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Frequency, Message and RedisDB are pointers so an explicit zero value can be
// told apart from unset.
type FileConfig struct {
	NodeName           string `toml:"node_name"`
	Frequency          *int   `toml:"frequency"`
	Message            *string `toml:"message"`
	RedisAddr          string `toml:"redis_addr"`
	RedisPassword      string `toml:"redis_password"`
	RedisDB            *int   `toml:"redis_db"`
	Namespace          string `toml:"namespace"`
	ChatterTopic       string `toml:"chatter_topic"`
	TransformTopic     string `toml:"tf_topic"`
	ChatterQueueSize   int    `toml:"chatter_queue"`
	TransformQueueSize int    `toml:"tf_queue"`
	ServiceAddr        string `toml:"service_addr"`
	MessageFile        string `toml:"message_file"`
	LogLevel           string `toml:"log_level"`
	ShutdownTimeout    string `toml:"shutdown_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.talker/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".talker", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("node-name", fc.NodeName, &cfg.NodeName)
	s.setStringPtr("message", fc.Message, &cfg.Message)
	s.setString("redis-addr", fc.RedisAddr, &cfg.RedisAddr)
	s.setString("redis-password", fc.RedisPassword, &cfg.RedisPassword)
	s.setString("namespace", fc.Namespace, &cfg.Namespace)
	s.setString("chatter-topic", fc.ChatterTopic, &cfg.ChatterTopic)
	s.setString("tf-topic", fc.TransformTopic, &cfg.TransformTopic)
	s.setString("service-addr", fc.ServiceAddr, &cfg.ServiceAddr)
	s.setString("message-file", fc.MessageFile, &cfg.MessageFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setIntPtr("frequency", fc.Frequency, &cfg.Frequency)
	s.setIntPtr("redis-db", fc.RedisDB, &cfg.RedisDB)
	s.setInt("chatter-queue", fc.ChatterQueueSize, &cfg.ChatterQueueSize)
	s.setInt("tf-queue", fc.TransformQueueSize, &cfg.TransformQueueSize)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
