package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Configuration struct {
	ApiPort  string `mapstructure:"api_port"`
	LogPath  string `mapstructure:"log_path"`
	LogLevel string `mapstructure:"log_level"`

	Database    string `mapstructure:"database"` // "sqlite3" or "postgres"
	DbHost      string `mapstructure:"db_host"`
	DbPort      string `mapstructure:"db_port"`
	DbUser      string `mapstructure:"db_user"`
	DbName      string `mapstructure:"db_name"`
	DbPass      string `mapstructure:"db_pass"`
	DbPath      string `mapstructure:"db_path"`
	AutoMigrate bool   `mapstructure:"automigrate"`

	Security struct {
		JwtSecret    string `mapstructure:"jwt_secret"`
		SessionHours int    `mapstructure:"session_hours"`
	} `mapstructure:"security"`

	Redis struct {
		Addr           string `mapstructure:"addr"`
		Password       string `mapstructure:"password"`
		DB             int    `mapstructure:"db"`
		HomeTTLSeconds int    `mapstructure:"home_ttl_seconds"`
	} `mapstructure:"redis"`

	Events struct {
		Driver  string   `mapstructure:"driver"` // "kafka", "amqp" or empty
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
		AmqpURL string   `mapstructure:"amqp_url"`
	} `mapstructure:"events"`

	Stripe struct {
		SecretKey  string `mapstructure:"secret_key"`
		PriceID    string `mapstructure:"price_id"`
		MonthlyFee int64  `mapstructure:"monthly_fee"`
	} `mapstructure:"stripe"`

	Storage struct {
		ImageDir string `mapstructure:"image_dir"`
	} `mapstructure:"storage"`

	Site struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"site"`

	Admin struct {
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`

	Log struct {
		Logstash struct {
			Enable bool   `mapstructure:"enable"`
			URL    string `mapstructure:"url"`
		} `mapstructure:"logstash"`
		Elk struct {
			Enable bool   `mapstructure:"enable"`
			URL    string `mapstructure:"url"`
			Index  string `mapstructure:"index"`
		} `mapstructure:"elk"`
	} `mapstructure:"log"`

	Cors struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// Load reads the config file at path. When the file does not exist the values come
// from the environment instead (database.host -> DATABASE_HOST style keys).
func Load(path string) (Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Configuration{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return Configuration{}, fmt.Errorf("config: decode: %w", err)
	}
	normalize(&c)
	return c, nil
}

// Every key gets a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_port", "8080")
	v.SetDefault("log_path", "logs/server.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("database", "sqlite3")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "")
	v.SetDefault("db_name", "nagoyameshi")
	v.SetDefault("db_pass", "")
	v.SetDefault("db_path", "db/database.db")
	v.SetDefault("automigrate", false)
	v.SetDefault("security.jwt_secret", "CHANGE_ME")
	v.SetDefault("security.session_hours", 24)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.home_ttl_seconds", 60)
	v.SetDefault("events.driver", "")
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "nagoyameshi-events")
	v.SetDefault("events.amqp_url", "")
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.price_id", "")
	v.SetDefault("stripe.monthly_fee", 300)
	v.SetDefault("storage.image_dir", "storage/restaurants")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("log.logstash.enable", false)
	v.SetDefault("log.logstash.url", "")
	v.SetDefault("log.elk.enable", false)
	v.SetDefault("log.elk.url", "")
	v.SetDefault("log.elk.index", "nagoyameshi")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// normalize fixes values that came in empty or out of range.
func normalize(c *Configuration) {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.SessionHours <= 0 {
		c.Security.SessionHours = 24
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Stripe.MonthlyFee <= 0 {
		c.Stripe.MonthlyFee = 300
	}
	if c.Redis.HomeTTLSeconds <= 0 {
		c.Redis.HomeTTLSeconds = 60
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// SetConfigFile with a missing path surfaces as an *os.PathError instead.
	return strings.Contains(err.Error(), "no such file")
}
