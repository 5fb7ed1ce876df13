package config

import (
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Twilio    TwilioConfig
	Gemini    GeminiConfig
	Diagnosis DiagnosisConfig
	RateLimit RateLimitConfig
	SMTP      SMTPConfig
	Places    PlacesConfig
	Catalog   CatalogConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// Supported values for DBConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DefaultMongoDatabase is used when neither MONGODB_DATABASE nor the URI path
// names a database.
const DefaultMongoDatabase = "health-management"

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AuthRequired bool
}

type TwilioConfig struct {
	AccountSID string
	APIKey     string
	APISecret  string
	TokenTTL   time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type DiagnosisConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
	Workers        int
	QueueSize      int
	JobTTL         time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type PlacesConfig struct {
	APIKey  string
	BaseURL string
	Radius  uint
}

type CatalogConfig struct {
	Path string
}

func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/health-management")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("TWILIO_TOKEN_TTL", "1h")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("DIAGNOSIS_MAX_ATTEMPTS", 3)
	v.SetDefault("DIAGNOSIS_INITIAL_BACKOFF", "5s")
	v.SetDefault("DIAGNOSIS_MAX_BACKOFF", "60s")
	v.SetDefault("DIAGNOSIS_TIMEOUT", "5m")
	v.SetDefault("DIAGNOSIS_WORKERS", 4)
	v.SetDefault("DIAGNOSIS_QUEUE_SIZE", 100)
	v.SetDefault("DIAGNOSIS_JOB_TTL", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("PLACES_BASE_URL", "https://maps.gomaps.pro")
	v.SetDefault("PLACES_RADIUS", 5000)

	// A missing .env is fine, the environment alone is enough.
	_ = v.ReadInConfig()

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: mongoDatabase(v.GetString("MONGODB_DATABASE"), v.GetString("MONGODB_URI")),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AuthRequired: v.GetBool("AUTH_REQUIRED"),
		},
		Twilio: TwilioConfig{
			AccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			APIKey:     v.GetString("TWILIO_API_KEY"),
			APISecret:  v.GetString("TWILIO_API_SECRET"),
			TokenTTL:   durationOr(v, "TWILIO_TOKEN_TTL", time.Hour),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Diagnosis: DiagnosisConfig{
			MaxAttempts:    v.GetInt("DIAGNOSIS_MAX_ATTEMPTS"),
			InitialBackoff: durationOr(v, "DIAGNOSIS_INITIAL_BACKOFF", 5*time.Second),
			MaxBackoff:     durationOr(v, "DIAGNOSIS_MAX_BACKOFF", time.Minute),
			Timeout:        durationOr(v, "DIAGNOSIS_TIMEOUT", 5*time.Minute),
			Workers:        v.GetInt("DIAGNOSIS_WORKERS"),
			QueueSize:      v.GetInt("DIAGNOSIS_QUEUE_SIZE"),
			JobTTL:         durationOr(v, "DIAGNOSIS_JOB_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Places: PlacesConfig{
			APIKey:  v.GetString("PLACES_API_KEY"),
			BaseURL: v.GetString("PLACES_BASE_URL"),
			Radius:  v.GetUint("PLACES_RADIUS"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("HOSPITAL_CATALOG_PATH"),
		},
	}

	return config, nil
}

// mongoDatabase prefers an explicit name, then the database in the URI path.
func mongoDatabase(explicit, uri string) string {
	if explicit != "" {
		return explicit
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultMongoDatabase
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
