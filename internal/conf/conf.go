package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// LLM configuration
	LLM LLMConfig

	// Store configuration
	Store StoreConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Debug mode
	Debug bool
}

// LLMConfig contains language-model service configuration
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// StoreConfig contains database and script path configuration
type StoreConfig struct {
	ChatDBPath     string // foreign Messages store (read-only)
	AgentDBPath    string // the agent's own database
	SendScriptPath string // AppleScript used for delivery
}

// DaemonConfig contains poll loop configuration
type DaemonConfig struct {
	PollInterval time.Duration
	Lookback     time.Duration
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	homeDir, _ := os.UserHomeDir()

	chatDBPath := os.Getenv("CHAT_DB_PATH")
	if chatDBPath == "" {
		chatDBPath = filepath.Join(homeDir, "Library", "Messages", "chat.db")
	}

	agentDBPath := os.Getenv("AGENT_DB_PATH")
	if agentDBPath == "" {
		agentDBPath = filepath.Join(homeDir, ".imessage-agent", "agent.db")
	}

	sendScriptPath := os.Getenv("SEND_SCRIPT_PATH")
	if sendScriptPath == "" {
		execPath, _ := os.Executable()
		sendScriptPath = filepath.Join(filepath.Dir(execPath), "scripts", "send_message.applescript")
		if _, err := os.Stat(sendScriptPath); os.IsNotExist(err) {
			sendScriptPath = "./scripts/send_message.applescript"
		}
	}

	pollSeconds := 5
	if val := os.Getenv("POLL_INTERVAL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			pollSeconds = parsed
		}
	}

	// The lookback window must stay larger than any expected tick delay;
	// the dedup ledger filters the re-scanned overlap.
	lookbackMinutes := 2
	if val := os.Getenv("LOOKBACK_MINUTES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			lookbackMinutes = parsed
		}
	}

	return &Config{
		LLM: LLMConfig{
			APIKey:  os.Getenv("LLM_API_KEY"),
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Model:   os.Getenv("LLM_MODEL"),
		},
		Store: StoreConfig{
			ChatDBPath:     chatDBPath,
			AgentDBPath:    agentDBPath,
			SendScriptPath: sendScriptPath,
		},
		Daemon: DaemonConfig{
			PollInterval: time.Duration(pollSeconds) * time.Second,
			Lookback:     time.Duration(lookbackMinutes) * time.Minute,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return &ConfigError{Field: "LLM_API_KEY", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
