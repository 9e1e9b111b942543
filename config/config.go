package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFile           string `mapstructure:"LOG_FILE"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// TrustedProxies lists proxy IPs/CIDRs whose forwarding headers name the client. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Firebase project.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
	FirebaseBucket      string `mapstructure:"FIREBASE_BUCKET"`

	// Feature behaviour.
	DashboardWindow          int           `mapstructure:"DASHBOARD_WINDOW"`
	StreakCountLeading       bool          `mapstructure:"STREAK_COUNT_LEADING"`
	BookingStrictTransitions bool          `mapstructure:"BOOKING_STRICT_TRANSITIONS"`
	RatingCacheTTL           time.Duration `mapstructure:"RATING_CACHE_TTL"`
	ReminderLead             time.Duration `mapstructure:"REMINDER_LEAD"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "calmwave")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("FIREBASE_CREDENTIALS", "./serviceAccountKey.json")
	v.SetDefault("FIREBASE_BUCKET", "calmwave-fd31b.appspot.com")
	v.SetDefault("DASHBOARD_WINDOW", 5)
	v.SetDefault("STREAK_COUNT_LEADING", false)
	v.SetDefault("BOOKING_STRICT_TRANSITIONS", false)
	v.SetDefault("RATING_CACHE_TTL", "10m")
	v.SetDefault("REMINDER_LEAD", "1h")
}

// Load reads configuration from a .env file, config.yaml and the environment, in increasing priority.
func Load(v *viper.Viper) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			log.Fatalf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "calmwave-dev-secret"
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
