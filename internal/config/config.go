package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server          ServerConfig
	Gemini          GeminiConfig
	Speech          SpeechConfig
	Storage         StorageConfig
	DefaultLanguage string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:          server,
		Gemini:          loadGeminiConfig(),
		Speech:          speech,
		Storage:         storage,
		DefaultLanguage: getEnvOrDefault("DEFAULT_LANGUAGE", "Français"),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// GeminiConfig holds the text-generation credentials and model selection.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether the text-generation credential is present. Without
// it the story pipeline cannot run at all.
func (c GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadGeminiConfig() GeminiConfig {
	return GeminiConfig{
		APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// SpeechConfig holds the ElevenLabs text-to-speech settings. A missing API
// key degrades audio synthesis to always-absent instead of failing startup.
type SpeechConfig struct {
	APIKey  string
	VoiceID string
	BaseURL string
	Timeout int
}

// Enabled reports whether the speech credential was provided.
func (c SpeechConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return SpeechConfig{
		APIKey:  strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		VoiceID: getEnvOrDefault("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		BaseURL: getEnvOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		Timeout: timeoutSeconds,
	}, nil
}

// StorageConfig locates the local key/value store and bounds its size.
type StorageConfig struct {
	Path       string
	QuotaBytes int64
}

func loadStorageConfig() (StorageConfig, error) {
	quota, err := parseOptionalInt64Env("STORAGE_QUOTA_BYTES")
	if err != nil {
		return StorageConfig{}, err
	}

	cfg := StorageConfig{
		Path: getEnvOrDefault("STORAGE_PATH", "data/mythos.db"),
	}
	if quota != nil {
		cfg.QuotaBytes = *quota
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalInt64Env(key string) (*int64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
