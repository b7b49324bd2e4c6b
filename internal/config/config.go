package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	TTSGoogle     = "google"
	TTSElevenLabs = "elevenlabs"
	TTSOpenAI     = "openai"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port string

	TranslatorProvider string
	OpenAIAPIKey       string
	OpenAIModel        string
	GeminiAPIKey       string
	GeminiModel        string
	TranslateTimeout   time.Duration

	TTSProvider       string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	RateLimitPerMinute int
	MaxUploadBytes     int64

	DatabaseURL string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3Insecure  bool

	TelegramBotToken string
	AdminChatID      int64

	AdminPassword string
	AuthSecret    string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		TranslatorProvider: strings.ToLower(getEnv("TRANSLATOR_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", ""),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", ""),
		TranslateTimeout:   getEnvDuration("TRANSLATE_TIMEOUT", 120*time.Second),

		TTSProvider:       strings.ToLower(getEnv("TTS_PROVIDER", TTSGoogle)),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Insecure:  getEnvBool("S3_INSECURE", false),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminChatID:      int64(getEnvInt("ADMIN_CHAT_ID", 0)),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AuthSecret:    os.Getenv("AUTH_SECRET"),
	}
}

// Validate checks that the selected providers have their credentials.
func (c *Config) Validate() error {
	switch c.TranslatorProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &ports.CredentialError{Key: "OPENAI_API_KEY"}
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return &ports.CredentialError{Key: "GEMINI_API_KEY"}
		}
	default:
		return &ports.CredentialError{Key: "TRANSLATOR_PROVIDER"}
	}

	switch c.TTSProvider {
	case TTSGoogle:
	case TTSElevenLabs:
		if c.ElevenLabsAPIKey == "" {
			return &ports.CredentialError{Key: "ELEVENLABS_API_KEY"}
		}
	case TTSOpenAI:
		if c.OpenAIAPIKey == "" {
			return &ports.CredentialError{Key: "OPENAI_API_KEY"}
		}
	default:
		return &ports.CredentialError{Key: "TTS_PROVIDER"}
	}

	// history routes are mounted only with a database
	if c.DatabaseURL != "" && c.AuthSecret == "" {
		return &ports.CredentialError{Key: "AUTH_SECRET"}
	}
	return nil
}

func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration accepts "90s" style values or plain seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
