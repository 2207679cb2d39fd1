package config

import (
	"crypto/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"ai-tutoring-system/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	MaxFileSize        int64
	LogLevel           string
	LogFile            string
	SupabaseURL        string
	SupabaseKey        string
	StorageBucket      string
	ChatHistoryTable   string
	GCPProjectID       string
	GCPLocation        string
	GCPCredentialsFile string
	GeminiModel        string
	SessionTTL         time.Duration
	SessionHashKey     []byte
	SessionBlockKey    []byte
	AllowedOrigins     []string
	PDFTextEngine      string
	NotesFontFile      string
}

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            getEnvOrDefault("LOG_FILE", ""),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket:      getEnvOrDefault("STORAGE_BUCKET", "user-documents"),
		ChatHistoryTable:   getEnvOrDefault("CHAT_HISTORY_TABLE", "Chat-History"),
		GCPProjectID:       getEnvOrDefault("GCP_PROJECT_ID", ""),
		GCPLocation:        getEnvOrDefault("GCP_LOCATION", "us-central1"),
		GCPCredentialsFile: getEnvOrDefault("GCP_CREDENTIALS_FILE", ""),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-pro"),
		SessionTTL:         getEnvDurationOrDefault("SESSION_TTL", time.Hour),
		SessionHashKey:     getEnvKeyOrRandom("SESSION_HASH_KEY", 32),
		SessionBlockKey:    getEnvKeyOrRandom("SESSION_BLOCK_KEY", 32),
		AllowedOrigins:     getEnvListOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins),
		PDFTextEngine:      strings.ToLower(getEnvOrDefault("PDF_TEXT_ENGINE", "fitz")),
		NotesFontFile:      getEnvOrDefault("NOTES_FONT_FILE", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFile returns the optional rotated log file path
func (c *AppConfig) GetLogFile() string {
	return c.LogFile
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the bucket holding uploaded documents
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetChatHistoryTable returns the chat-history table name
func (c *AppConfig) GetChatHistoryTable() string {
	return c.ChatHistoryTable
}

func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

func (c *AppConfig) GetGCPCredentialsFile() string {
	return c.GCPCredentialsFile
}

func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetSessionTTL returns the idle lifetime of a browser session
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

func (c *AppConfig) GetSessionHashKey() []byte {
	return c.SessionHashKey
}

func (c *AppConfig) GetSessionBlockKey() []byte {
	return c.SessionBlockKey
}

// GetAllowedOrigins returns the CORS allow list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetPDFTextEngine returns "fitz" or "native"
func (c *AppConfig) GetPDFTextEngine() string {
	return c.PDFTextEngine
}

func (c *AppConfig) GetNotesFontFile() string {
	return c.NotesFontFile
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvKeyOrRandom returns the raw env value, or size random bytes. Random
// keys invalidate every session cookie on restart.
func getEnvKeyOrRandom(key string, size int) []byte {
	if value := os.Getenv(key); value != "" {
		return []byte(value)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic("config: cannot read random bytes: " + err.Error())
	}
	return b
}
