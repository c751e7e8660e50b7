package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Pack     PackConfig     `mapstructure:"pack" validate:"required"`
	Extract  ExtractConfig  `mapstructure:"extract" validate:"required"`
	Telegram TelegramConfig `mapstructure:"telegram" validate:"required"`
	Export   ExportConfig   `mapstructure:"export"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// MaxOpenConns caps the connection pool.
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=1"`
}

// PackConfig controls pack generation and retention.
type PackConfig struct {
	// MinInputLength rejects texts shorter than this many characters.
	MinInputLength int `mapstructure:"min_input_length" validate:"gte=1"`
	// RetentionCount is how many saved packs are kept; older ones are pruned.
	RetentionCount int    `mapstructure:"retention_count" validate:"gte=1"`
	DefaultTitle   string `mapstructure:"default_title" validate:"required,max=160"`
}

// ExtractConfig controls article extraction from URLs.
type ExtractConfig struct {
	MaxChars        int    `mapstructure:"max_chars" validate:"gte=100"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
	UserAgent       string `mapstructure:"user_agent" validate:"required"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
	// RedisURL enables the extraction cache when set.
	RedisURL string `mapstructure:"redis_url" validate:"omitempty,url"`
}

// TelegramConfig configures the chat transport.
type TelegramConfig struct {
	// BotToken may be empty; the webhook then reports the bot as misconfigured.
	BotToken         string `mapstructure:"bot_token"`
	AppURL           string `mapstructure:"app_url" validate:"omitempty,url"`
	APIBaseURL       string `mapstructure:"api_base_url" validate:"required,url"`
	MaxMessageLength int    `mapstructure:"max_message_length" validate:"gte=200,lte=4096"`
	WorkerCount      int    `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize        int    `mapstructure:"queue_size" validate:"gte=1"`
}

// ExportConfig controls document export.
type ExportConfig struct {
	// FontDir holds the NotoSans TTF files; empty uses the core PDF font.
	FontDir string `mapstructure:"font_dir"`
	// AppURL is printed with a QR code in the document footer.
	AppURL string `mapstructure:"app_url" validate:"omitempty,url"`
}
