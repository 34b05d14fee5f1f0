package config

import "time"

// Config is the root application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Translit TranslitConfig `yaml:"translit"`
	Forms    FormsConfig    `yaml:"forms"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig locates the verb-form dataset.
type DataConfig struct {
	Dir            string        `yaml:"dir"             env:"PRAKRIYA_DATA_DIR"`
	BaseURL        string        `yaml:"base_url"        env:"PRAKRIYA_BASE_URL"        env-default:"https://github.com/drdhaval2785/python-prakriya/raw/master/prakriya/data/"`
	Archive        string        `yaml:"archive"         env:"PRAKRIYA_ARCHIVE"         env-default:"composite_v002.tar.gz"`
	Offline        bool          `yaml:"offline"         env:"PRAKRIYA_OFFLINE"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"    env:"PRAKRIYA_HTTP_TIMEOUT"    env-default:"10m"`
	PreloadWorkers int           `yaml:"preload_workers" env:"PRAKRIYA_PRELOAD_WORKERS" env-default:"4"`
}

// TranslitConfig holds the default input and output schemes.
type TranslitConfig struct {
	Input  string `yaml:"input"  env:"PRAKRIYA_INPUT"  env-default:"slp1"`
	Output string `yaml:"output" env:"PRAKRIYA_OUTPUT" env-default:"slp1"`
}

// FormsConfig picks where generated forms are served from.
type FormsConfig struct {
	Backend    string `yaml:"backend"     env:"PRAKRIYA_FORMS_BACKEND" env-default:"json"`
	SQLitePath string `yaml:"sqlite_path" env:"PRAKRIYA_FORMS_DB"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"PRAKRIYA_ADDR"             env-default:":8080"`
	AllowedOrigins  []string      `yaml:"allowed_origins"  env:"PRAKRIYA_ALLOWED_ORIGINS"  env-default:"*"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"PRAKRIYA_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"PRAKRIYA_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"PRAKRIYA_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)
