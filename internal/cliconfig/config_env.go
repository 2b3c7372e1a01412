package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TALKER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("node-name", os.Getenv("TALKER_NODE_NAME"), &cfg.NodeName)
	if v, ok := os.LookupEnv("TALKER_MESSAGE"); ok {
		s.setStringPtr("message", &v, &cfg.Message)
	}
	s.setString("redis-addr", os.Getenv("TALKER_REDIS_ADDR"), &cfg.RedisAddr)
	s.setString("redis-password", os.Getenv("TALKER_REDIS_PASSWORD"), &cfg.RedisPassword)
	s.setString("namespace", os.Getenv("TALKER_NAMESPACE"), &cfg.Namespace)
	s.setString("chatter-topic", os.Getenv("TALKER_CHATTER_TOPIC"), &cfg.ChatterTopic)
	s.setString("tf-topic", os.Getenv("TALKER_TF_TOPIC"), &cfg.TransformTopic)
	s.setString("service-addr", os.Getenv("TALKER_SERVICE_ADDR"), &cfg.ServiceAddr)
	s.setString("message-file", os.Getenv("TALKER_MESSAGE_FILE"), &cfg.MessageFile)
	s.setString("log-level", os.Getenv("TALKER_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", os.Getenv("TALKER_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	if err := s.setSignedIntFromString("frequency", os.Getenv("TALKER_FREQUENCY"), &cfg.Frequency); err != nil {
		return err
	}
	if err := s.setSignedIntFromString("redis-db", os.Getenv("TALKER_REDIS_DB"), &cfg.RedisDB); err != nil {
		return err
	}
	if err := s.setIntFromString("chatter-queue", os.Getenv("TALKER_CHATTER_QUEUE"), &cfg.ChatterQueueSize); err != nil {
		return err
	}
	if err := s.setIntFromString("tf-queue", os.Getenv("TALKER_TF_QUEUE"), &cfg.TransformQueueSize); err != nil {
		return err
	}

	return nil
}
