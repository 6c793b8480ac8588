package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type BackendConfig struct {
	URL       string `toml:"url"`
	LegacyMCP bool   `toml:"legacy_mcp"`
}

type UserConfig struct {
	Backend       BackendConfig `toml:"backend"`
	DataDirectory string        `toml:"data_directory"`
}

// Config is the resolved runtime configuration
type Config struct {
	BackendURL    string
	LegacyMCP     bool
	DataDirectory string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// MCPEndpoint returns the URL of the legacy JSON-RPC math tools endpoint
func (c *Config) MCPEndpoint() string {
	return c.BackendURL + "/mcp"
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("TUTORTUI_BACKEND_URL"); url != "" {
		c.BackendURL = url
	}
	if dataDir := os.Getenv("TUTORTUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if legacy := os.Getenv("TUTORTUI_LEGACY_MCP"); legacy != "" {
		c.LegacyMCP = legacy == "true" || legacy == "1"
	}
}

// Load resolves the runtime configuration: settings.toml, then .env,
// then process environment variables (highest precedence).
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BackendURL:    userCfg.Backend.URL,
		LegacyMCP:     userCfg.Backend.LegacyMCP,
		DataDirectory: userCfg.DataDirectory,
	}
	cfg.applyEnvOverrides()

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = GetDefaultDataDir()
	}

	if err := EnsureDir(cfg.DataDir()); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func CheckDebug() bool {
	debug := os.Getenv("TUTORTUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log may contain conversation fragments
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (TUTORTUI_DEBUG=%s) ===", os.Getenv("TUTORTUI_DEBUG"))
}
