package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Mongo      Mongo      `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	TikTok     TikTok     `mapstructure:",squash"`
	Facebook   Facebook   `mapstructure:",squash"`
	Instagram  Instagram  `mapstructure:",squash"`
	Twitter    Twitter    `mapstructure:",squash"`
	Collection Collection `mapstructure:",squash"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level"`
	StorageDriver string `mapstructure:"storage_driver"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Mongo struct {
	URL      string `mapstructure:"mongo_url"`
	Database string `mapstructure:"mongo_database"`
}

type Auth struct {
	Secret            string        `mapstructure:"auth_secret"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

// Platform é a configuração comum a todas as integrações de redes sociais
type Platform struct {
	BaseURL              string
	AccessToken          string
	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

type TikTok struct {
	BaseURL              string        `mapstructure:"tiktok_base_url"`
	AccessToken          string        `mapstructure:"tiktok_access_token"`
	RateLimitWindow      time.Duration `mapstructure:"tiktok_rate_limit_window"`
	RateLimitMaxRequests int           `mapstructure:"tiktok_rate_limit_max_requests"`
}

type Facebook struct {
	BaseURL              string        `mapstructure:"facebook_base_url"`
	AccessToken          string        `mapstructure:"facebook_access_token"`
	AdAccountID          string        `mapstructure:"facebook_ad_account_id"`
	RateLimitWindow      time.Duration `mapstructure:"facebook_rate_limit_window"`
	RateLimitMaxRequests int           `mapstructure:"facebook_rate_limit_max_requests"`
}

type Instagram struct {
	BaseURL              string        `mapstructure:"instagram_base_url"`
	AccessToken          string        `mapstructure:"instagram_access_token"`
	RateLimitWindow      time.Duration `mapstructure:"instagram_rate_limit_window"`
	RateLimitMaxRequests int           `mapstructure:"instagram_rate_limit_max_requests"`
}

type Twitter struct {
	BaseURL              string        `mapstructure:"twitter_base_url"`
	APIKey               string        `mapstructure:"twitter_api_key"`
	RateLimitWindow      time.Duration `mapstructure:"twitter_rate_limit_window"`
	RateLimitMaxRequests int           `mapstructure:"twitter_rate_limit_max_requests"`
}

type Collection struct {
	HourlyCron       string        `mapstructure:"collection_hourly_cron"`
	DailyCron        string        `mapstructure:"collection_daily_cron"`
	SchedulerEnabled bool          `mapstructure:"collection_scheduler_enabled"`
	Parallel         bool          `mapstructure:"collection_parallel"`
	RequestTimeout   time.Duration `mapstructure:"collection_request_timeout"`
	MaxRetries       int           `mapstructure:"collection_max_retries"`
	RetryDelay       time.Duration `mapstructure:"collection_retry_delay"`
	CacheTTL         time.Duration `mapstructure:"collection_cache_ttl"`
	CacheSweep       time.Duration `mapstructure:"collection_cache_sweep"`
	Platforms        []string      `mapstructure:"collection_platforms"`
}

func (c TikTok) Platform() Platform {
	return Platform{c.BaseURL, c.AccessToken, c.RateLimitWindow, c.RateLimitMaxRequests}
}

func (c Facebook) Platform() Platform {
	return Platform{c.BaseURL, c.AccessToken, c.RateLimitWindow, c.RateLimitMaxRequests}
}

func (c Instagram) Platform() Platform {
	return Platform{c.BaseURL, c.AccessToken, c.RateLimitWindow, c.RateLimitMaxRequests}
}

func (c Twitter) Platform() Platform {
	return Platform{c.BaseURL, c.APIKey, c.RateLimitWindow, c.RateLimitMaxRequests}
}

func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 8000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("STORAGE_DRIVER", "postgres") // postgres | mongo

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "localhost:5432/social_metrics?sslmode=disable")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "root")

	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "social_metrics")

	v.SetDefault("AUTH_SECRET", "your_secret_key")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")

	v.SetDefault("TIKTOK_BASE_URL", "https://open.tiktokapis.com/v2")
	v.SetDefault("TIKTOK_ACCESS_TOKEN", "")
	v.SetDefault("TIKTOK_RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("TIKTOK_RATE_LIMIT_MAX_REQUESTS", 100)

	v.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com/v18.0")
	v.SetDefault("FACEBOOK_ACCESS_TOKEN", "")
	v.SetDefault("FACEBOOK_AD_ACCOUNT_ID", "") // vazio desabilita a coleta de anúncios
	v.SetDefault("FACEBOOK_RATE_LIMIT_WINDOW", "1h")
	v.SetDefault("FACEBOOK_RATE_LIMIT_MAX_REQUESTS", 200)

	v.SetDefault("INSTAGRAM_BASE_URL", "https://graph.instagram.com/v18.0")
	v.SetDefault("INSTAGRAM_ACCESS_TOKEN", "")
	v.SetDefault("INSTAGRAM_RATE_LIMIT_WINDOW", "1h")
	v.SetDefault("INSTAGRAM_RATE_LIMIT_MAX_REQUESTS", 200)

	v.SetDefault("TWITTER_BASE_URL", "https://api.twitter.com/2")
	v.SetDefault("TWITTER_API_KEY", "")
	v.SetDefault("TWITTER_RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("TWITTER_RATE_LIMIT_MAX_REQUESTS", 450)

	// Defaults para a coleta de métricas
	v.SetDefault("COLLECTION_HOURLY_CRON", "0 * * * *")  // A cada hora cheia
	v.SetDefault("COLLECTION_DAILY_CRON", "0 0 * * *")   // Todos os dias à meia-noite
	v.SetDefault("COLLECTION_SCHEDULER_ENABLED", true)   // Habilitar agendador
	v.SetDefault("COLLECTION_PARALLEL", false)           // Plataformas coletadas em sequência
	v.SetDefault("COLLECTION_REQUEST_TIMEOUT", "15s")    // Timeout por tentativa
	v.SetDefault("COLLECTION_MAX_RETRIES", 3)            // Retentativas após a primeira chamada
	v.SetDefault("COLLECTION_RETRY_DELAY", "1s")         // Backoff linear: tentativa x delay
	v.SetDefault("COLLECTION_CACHE_TTL", "5m")
	v.SetDefault("COLLECTION_CACHE_SWEEP", "60s")
	v.SetDefault("COLLECTION_PLATFORMS", "tiktok,facebook,instagram,twitter")

	v.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return Load(viper.GetViper())
}

// Load decodifica a configuração da instância do viper informada
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar configuração: %w", err)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if config.Auth.TokenTTL <= 0 {
		config.Auth.TokenTTL = 24 * time.Hour
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
