package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				NodeName:         "robot",
				Frequency:        intPtr(5),
				RedisAddr:        "localhost:6379",
				ChatterQueueSize: 10,
				ShutdownTimeout:  "5s",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				NodeName:         "robot",
				Frequency:        5,
				RedisAddr:        "localhost:6379",
				ChatterQueueSize: 10,
				ShutdownTimeout:  5 * time.Second,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				NodeName:  "file-node",
				Frequency: intPtr(3),
			},
			changed: map[string]bool{"frequency": true},
			initial: Config{
				NodeName:  "flag-node",
				Frequency: 20,
			},
			expected: Config{
				NodeName:  "file-node",
				Frequency: 20, // unchanged because flag was set
			},
		},
		{
			name: "explicit zero and negative ints are applied",
			fileConfig: FileConfig{
				Frequency: intPtr(-3),
				RedisDB:   intPtr(0),
			},
			changed:  map[string]bool{},
			initial:  Config{Frequency: 10, RedisDB: 2},
			expected: Config{Frequency: -3, RedisDB: 0},
		},
		{
			name:       "explicit empty message is applied",
			fileConfig: FileConfig{Message: strPtr("")},
			changed:    map[string]bool{},
			initial:    Config{Message: "Written By Aman Virmani"},
			expected:   Config{Message: ""},
		},
		{
			name:       "unset message keeps default",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{Message: "Written By Aman Virmani"},
			expected:   Config{Message: "Written By Aman Virmani"},
		},
		{
			name:       "unset frequency keeps default",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{Frequency: 10},
			expected:   Config{Frequency: 10},
		},
		{
			name: "handles all field types correctly",
			fileConfig: FileConfig{
				NodeName:           "n",
				Frequency:          intPtr(50),
				Message:            strPtr("hi"),
				RedisAddr:          "r:6379",
				RedisPassword:      "secret",
				RedisDB:            intPtr(3),
				Namespace:          "ns",
				ChatterTopic:       "c",
				TransformTopic:     "t",
				ChatterQueueSize:   7,
				TransformQueueSize: 8,
				ServiceAddr:        ":9090",
				MessageFile:        "/tmp/msg",
				LogLevel:           "debug",
				ShutdownTimeout:    "1m",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				NodeName:           "n",
				Frequency:          50,
				Message:            "hi",
				RedisAddr:          "r:6379",
				RedisPassword:      "secret",
				RedisDB:            3,
				Namespace:          "ns",
				ChatterTopic:       "c",
				TransformTopic:     "t",
				ChatterQueueSize:   7,
				TransformQueueSize: 8,
				ServiceAddr:        ":9090",
				MessageFile:        "/tmp/msg",
				LogLevel:           "debug",
				ShutdownTimeout:    time.Minute,
			},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{ShutdownTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
node_name = "robot"
frequency = -4
message = "from file"
redis_addr = "localhost:6379"
redis_db = 0
tf_topic = "transforms"
shutdown_timeout = "5s"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.NodeName != "robot" {
		t.Errorf("NodeName = %v, want robot", fc.NodeName)
	}
	if fc.Frequency == nil || *fc.Frequency != -4 {
		t.Errorf("Frequency = %v, want -4", fc.Frequency)
	}
	if fc.RedisDB == nil || *fc.RedisDB != 0 {
		t.Errorf("RedisDB = %v, want explicit 0", fc.RedisDB)
	}
	if fc.Message == nil || *fc.Message != "from file" {
		t.Errorf("Message = %v, want from file", fc.Message)
	}
	if fc.TransformTopic != "transforms" {
		t.Errorf("TransformTopic = %v, want transforms", fc.TransformTopic)
	}
	if fc.ShutdownTimeout != "5s" {
		t.Errorf("ShutdownTimeout = %v, want 5s", fc.ShutdownTimeout)
	}
}

func TestLoadFileConfig_EmptyMessage(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty-message.toml")
	if err := os.WriteFile(configPath, []byte("message = \"\"\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Message == nil || *fc.Message != "" {
		t.Fatalf("Message = %v, want explicit empty string", fc.Message)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}
	if cfg.Message != "" {
		t.Errorf("Message = %q, want empty", cfg.Message)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
node_name = "talker"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".talker") {
		t.Errorf("DefaultConfigPath() = %v, should contain .talker", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
