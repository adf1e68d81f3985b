package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	Models         []string
	Prompt         string
	TranscriptsDir string
	SummaryTimeout time.Duration
	CacheTTL       time.Duration
	NoCache        bool
	ServerAddr     string
	Verbose        bool
	Quiet          bool
	GeminiAPIKey   string
	MCPLogEnabled  bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a prompt.txt file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// .env support for the API key, matching local development habits
	_ = godotenv.Load()

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytnotes")
	dataDir := filepath.Join(xdg.DataHome, "ytnotes")
	cacheDir := filepath.Join(xdg.CacheHome, "ytnotes")

	transcriptsDir := filepath.Join(dataDir, "transcripts")

	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("models", DefaultModels)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("cache_ttl", time.Hour)
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("YTNOTES")
	v.AutomaticEnv()

	// The Gemini key lives in the conventional env vars, not under the prefix
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		Models:         v.GetStringSlice("models"),
		Prompt:         v.GetString("prompt"),
		TranscriptsDir: v.GetString("transcripts_dir"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		ServerAddr:     v.GetString("server_addr"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		MCPLogEnabled:  v.GetBool("mcp_log"),

		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// ValidateGeminiAPIKey checks if the Gemini API key is set and returns a
// standardized error if not
func ValidateGeminiAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("Gemini API key is required - set GEMINI_API_KEY or GOOGLE_API_KEY (environment or .env), or gemini_api_key in config.toml")
	}
	return nil
}
