package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	timex "github.com/ferdiebergado/pneumodetect/internal/pkg/time"
	"github.com/ilyakaznacheev/cleanenv"
)

type App struct {
	Env         string `json:"env,omitempty" env:"APP_ENV" env-default:"development"`
	LogLevel    string `json:"log_level,omitempty" env:"LOG_LEVEL" env-default:"info"`
	Key         string `json:"-" env:"KEY"`
	FrontendURL string `json:"frontend_url,omitempty" env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

type Server struct {
	Port            int            `json:"port,omitempty" env:"PORT" env-default:"8000"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	RequestTimeout  timex.Duration `json:"request_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty" env-default:"1048576"`
	MaxUploadBytes  int64          `json:"max_upload_bytes,omitempty" env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty" env:"DB_DRIVER" env-default:"pgx"`
	URL             string         `json:"-" env:"DATABASE_URL"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty" env-default:"10"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty" env-default:"5"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

type JWT struct {
	JTILength uint32         `json:"jti_length,omitempty" env-default:"8"`
	Issuer    string         `json:"issuer,omitempty" env:"JWT_ISSUER" env-default:"pneumodetect"`
	TTL       timex.Duration `json:"ttl,omitempty"`
}

type Cookie struct {
	Name     string `json:"name,omitempty" env-default:"access_token"`
	SameSite string `json:"same_site,omitempty" env:"COOKIE_SAMESITE" env-default:"lax"`
	Secure   bool   `json:"secure,omitempty" env:"COOKIE_SECURE"`
}

type Email struct {
	Sender    string         `json:"sender,omitempty" env:"EMAIL_SENDER"`
	Workers   int            `json:"workers,omitempty" env-default:"2"`
	QueueSize int            `json:"queue_size,omitempty" env-default:"100"`
	Timeout   timex.Duration `json:"timeout,omitempty"`
}

type SMTP struct {
	Host     string `json:"host,omitempty" env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `json:"port,omitempty" env:"SMTP_PORT" env-default:"587"`
	User     string `json:"-" env:"SMTP_USER"`
	Password string `json:"-" env:"SMTP_PASS"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty" env-default:"65536"`
	Iterations uint32 `json:"iterations,omitempty" env-default:"3"`
	Threads    uint8  `json:"threads,omitempty" env-default:"2"`
	SaltLength uint32 `json:"salt_length,omitempty" env-default:"16"`
	KeyLength  uint32 `json:"key_length,omitempty" env-default:"32"`
}

type Verification struct {
	TokenTTL    timex.Duration `json:"token_ttl,omitempty"`
	MaxAttempts int            `json:"max_attempts,omitempty" env-default:"5"`
}

type Storage struct {
	Bucket       string         `json:"bucket,omitempty" env:"S3_BUCKET"`
	Region       string         `json:"region,omitempty" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint     string         `json:"endpoint,omitempty" env:"S3_ENDPOINT"`
	AccessKey    string         `json:"-" env:"S3_ACCESS_KEY"`
	SecretKey    string         `json:"-" env:"S3_SECRET_KEY"`
	PublicURL    string         `json:"public_url,omitempty" env:"S3_PUBLIC_URL"`
	UsePathStyle bool           `json:"use_path_style,omitempty" env:"S3_USE_PATH_STYLE"`
	Folder       string         `json:"folder,omitempty" env-default:"PneumoDetect"`
	Timeout      timex.Duration `json:"timeout,omitempty"`
}

type Model struct {
	Path      string `json:"path,omitempty" env:"MODEL_PATH" env-default:"model/pneumodetect.pnmd"`
	CacheSize int    `json:"cache_size,omitempty" env:"MODEL_CACHE_SIZE"`
	MaxPixels int    `json:"max_pixels,omitempty" env:"MODEL_MAX_PIXELS" env-default:"50000000"`
}

type History struct {
	Limit         int            `json:"limit,omitempty" env-default:"100"`
	DisplayOffset timex.Duration `json:"display_offset,omitempty"`
}

type RateLimit struct {
	RPS   float64 `json:"rps,omitempty" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `json:"burst,omitempty" env:"RATE_LIMIT_BURST" env-default:"10"`
	// TrustProxy keys clients on forwarding headers. Enable it only behind
	// a reverse proxy that overwrites them.
	TrustProxy bool `json:"trust_proxy,omitempty" env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

type CORS struct {
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type Config struct {
	App          App          `json:"app"`
	Server       Server       `json:"server"`
	DB           DB           `json:"db"`
	JWT          JWT          `json:"jwt"`
	Cookie       Cookie       `json:"cookie"`
	Email        Email        `json:"email"`
	SMTP         SMTP         `json:"smtp"`
	Argon2       Argon2       `json:"argon2"`
	Verification Verification `json:"verification"`
	Storage      Storage      `json:"storage"`
	Model        Model        `json:"model"`
	History      History      `json:"history"`
	RateLimit    RateLimit    `json:"rate_limit"`
	CORS         CORS         `json:"cors"`
}

// LogValue omits every secret loaded from the environment.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.App.Env),
		slog.Int("port", c.Server.Port),
		slog.String("db_driver", c.DB.Driver),
		slog.String("smtp_host", c.SMTP.Host),
		slog.String("bucket", c.Storage.Bucket),
		slog.String("model_path", c.Model.Path),
		slog.Any("cors", c.CORS.AllowedOrigins),
	)
}

// Load reads cfgFile and overrides its values with environment variables.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")

	cfgFile = filepath.Clean(cfgFile)
	var cfg Config
	if err := cleanenv.ReadConfig(cfgFile, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
	}

	applyDefaults(&cfg)

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", &cfg))
	return &cfg, nil
}

// applyDefaults fills the durations left unset by the config file.
func applyDefaults(cfg *Config) {
	setDuration(&cfg.Server.ReadTimeout, 10*time.Second)
	setDuration(&cfg.Server.WriteTimeout, 30*time.Second)
	setDuration(&cfg.Server.IdleTimeout, time.Minute)
	setDuration(&cfg.Server.ShutdownTimeout, 10*time.Second)
	setDuration(&cfg.Server.RequestTimeout, 20*time.Second)
	setDuration(&cfg.DB.PingTimeout, 5*time.Second)
	setDuration(&cfg.JWT.TTL, 72*time.Hour)
	setDuration(&cfg.Email.Timeout, 30*time.Second)
	setDuration(&cfg.Verification.TokenTTL, 24*time.Hour)
	setDuration(&cfg.Storage.Timeout, 15*time.Second)
	setDuration(&cfg.History.DisplayOffset, 5*time.Hour)

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{cfg.App.FrontendURL}
	}
}

func setDuration(d *timex.Duration, def time.Duration) {
	if d.Duration == 0 {
		d.Duration = def
	}
}
