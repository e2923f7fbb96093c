package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Log        LogConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Auth       AuthConfig
	OAuth      OAuthConfig
	Mail       MailConfig
	Classifier ClassifierConfig
	GreenScore GreenScoreConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	// PublicURL is the externally visible base URL used in magic links and OAuth redirects.
	PublicURL string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type AuthConfig struct {
	MagicLinkTTL  time.Duration
	OAuthStateTTL time.Duration
}

type OAuthConfig struct {
	Google   OAuthProviderConfig
	LinkedIn OAuthProviderConfig
}

type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
}

func (c OAuthProviderConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type MailConfig struct {
	// Driver is "log" or "gmail".
	Driver          string
	From            string
	CredentialsFile string
	TokenFile       string
}

type ClassifierConfig struct {
	// Provider is "gemini", "vertex" or "static".
	Provider string
	Model    string
	Timeout  time.Duration

	GeminiAPIKey string

	VertexProject  string
	VertexLocation string

	StaticReply string
}

type GreenScoreConfig struct {
	MissingESGPolicy string
	PolicyFile       string
	RescoreWorkers   int
	RescoreRPS       float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment and an optional greenleaf.yaml in the
// working directory. Environment variables win over file values.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("greenleaf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "greenleaf")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "10m")

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "720h")

	v.SetDefault("AUTH_MAGIC_LINK_TTL", "24h")
	v.SetDefault("AUTH_OAUTH_STATE_TTL", "10m")

	v.SetDefault("MAIL_DRIVER", "log")
	v.SetDefault("MAIL_FROM", "Greenleaf Registration <noreply.greenleaf@corithos.com>")

	v.SetDefault("CLASSIFIER_PROVIDER", "gemini")
	v.SetDefault("VERTEX_LOCATION", "us-central1")
	v.SetDefault("CLASSIFIER_STATIC_REPLY", "0")

	v.SetDefault("GREENSCORE_RESCORE_WORKERS", 4)
	v.SetDefault("GREENSCORE_RESCORE_RPS", 2.0)
}

func fromViper(v *viper.Viper) (Config, error) {
	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     opt("APP_NAME"),
		Environment: opt("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		PublicURL:   strings.TrimRight(opt("PUBLIC_URL"), "/"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                req("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                req("DB_NAME"),
		DBUser:                req("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		RunMigrations:         v.GetBool("DB_RUN_MIGRATIONS"),
		RunSeeders:            v.GetBool("DB_RUN_SEEDERS"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.Auth = AuthConfig{
		MagicLinkTTL:  v.GetDuration("AUTH_MAGIC_LINK_TTL"),
		OAuthStateTTL: v.GetDuration("AUTH_OAUTH_STATE_TTL"),
	}

	cfg.OAuth = OAuthConfig{
		Google: OAuthProviderConfig{
			ClientID:     opt("OAUTH_GOOGLE_CLIENT_ID"),
			ClientSecret: opt("OAUTH_GOOGLE_CLIENT_SECRET"),
		},
		LinkedIn: OAuthProviderConfig{
			ClientID:     opt("OAUTH_LINKEDIN_CLIENT_ID"),
			ClientSecret: opt("OAUTH_LINKEDIN_CLIENT_SECRET"),
		},
	}

	cfg.Mail = MailConfig{
		Driver:          strings.ToLower(opt("MAIL_DRIVER")),
		From:            opt("MAIL_FROM"),
		CredentialsFile: opt("MAIL_GMAIL_CREDENTIALS_FILE"),
		TokenFile:       opt("MAIL_GMAIL_TOKEN_FILE"),
	}

	cfg.Classifier = ClassifierConfig{
		Provider:       strings.ToLower(opt("CLASSIFIER_PROVIDER")),
		Model:          opt("CLASSIFIER_MODEL"),
		Timeout:        v.GetDuration("CLASSIFIER_TIMEOUT"),
		GeminiAPIKey:   opt("GEMINI_API_KEY"),
		VertexProject:  opt("VERTEX_PROJECT"),
		VertexLocation: opt("VERTEX_LOCATION"),
		StaticReply:    opt("CLASSIFIER_STATIC_REPLY"),
	}

	cfg.GreenScore = GreenScoreConfig{
		MissingESGPolicy: strings.ToLower(opt("GREENSCORE_MISSING_ESG_POLICY")),
		PolicyFile:       opt("GREENSCORE_POLICY_FILE"),
		RescoreWorkers:   v.GetInt("GREENSCORE_RESCORE_WORKERS"),
		RescoreRPS:       v.GetFloat64("GREENSCORE_RESCORE_RPS"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Classifier.Provider {
	case "gemini":
		if cfg.Classifier.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when CLASSIFIER_PROVIDER=gemini")
		}
	case "vertex":
		if cfg.Classifier.VertexProject == "" {
			return errors.New("VERTEX_PROJECT is required when CLASSIFIER_PROVIDER=vertex")
		}
	case "static":
	default:
		return fmt.Errorf("unknown CLASSIFIER_PROVIDER %q", cfg.Classifier.Provider)
	}

	switch cfg.Mail.Driver {
	case "log":
	case "gmail":
		if cfg.Mail.CredentialsFile == "" || cfg.Mail.TokenFile == "" {
			return errors.New("MAIL_GMAIL_CREDENTIALS_FILE and MAIL_GMAIL_TOKEN_FILE are required when MAIL_DRIVER=gmail")
		}
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", cfg.Mail.Driver)
	}

	// empty leaves the choice to the policy file
	switch cfg.GreenScore.MissingESGPolicy {
	case "", "neutral", "penalize":
	default:
		return fmt.Errorf("unknown GREENSCORE_MISSING_ESG_POLICY %q", cfg.GreenScore.MissingESGPolicy)
	}

	return nil
}
