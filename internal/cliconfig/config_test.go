package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NodeName != "talker" {
		t.Errorf("NodeName = %v, want talker", cfg.NodeName)
	}
	if cfg.Frequency != 10 {
		t.Errorf("Frequency = %v, want 10", cfg.Frequency)
	}
	if cfg.Message != "Written By Aman Virmani" {
		t.Errorf("Message = %q, want the default message", cfg.Message)
	}
	if cfg.ChatterQueueSize != 1000 {
		t.Errorf("ChatterQueueSize = %v, want 1000", cfg.ChatterQueueSize)
	}
	if cfg.TransformQueueSize != 100 {
		t.Errorf("TransformQueueSize = %v, want 100", cfg.TransformQueueSize)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %v, want empty", cfg.RedisAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative frequency is accepted", func(c *Config) { c.Frequency = -5 }, false},
		{"zero frequency is accepted", func(c *Config) { c.Frequency = 0 }, false},
		{"empty message is accepted", func(c *Config) { c.Message = "" }, false},
		{"missing node name", func(c *Config) { c.NodeName = "" }, true},
		{"missing chatter topic", func(c *Config) { c.ChatterTopic = "" }, true},
		{"missing tf topic", func(c *Config) { c.TransformTopic = "" }, true},
		{"same topics", func(c *Config) { c.TransformTopic = c.ChatterTopic }, true},
		{"zero chatter queue", func(c *Config) { c.ChatterQueueSize = 0 }, true},
		{"zero tf queue", func(c *Config) { c.TransformQueueSize = 0 }, true},
		{"negative redis db", func(c *Config) { c.RedisDB = -1 }, true},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args keeps configured value", nil, 25},
		{"positive", []string{"5"}, 5},
		{"negative", []string{"-5"}, -5},
		{"non numeric", []string{"abc"}, 0},
		{"trailing junk", []string{"12hz"}, 12},
		{"extra args ignored", []string{"7", "8"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Frequency = 25

			ApplyArgs(&cfg, tt.args)

			if cfg.Frequency != tt.want {
				t.Errorf("Frequency = %v, want %v", cfg.Frequency, tt.want)
			}
		})
	}
}
