package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Portal   PortalConfig   `yaml:"portal"`
}

// DatabaseConfig с пустым Host означает хранение в памяти.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"PORTAL_DB_HOST"`
	Port     int    `yaml:"port" env:"PORTAL_DB_PORT"`
	Username string `yaml:"username" env:"PORTAL_DB_USER"`
	Password string `yaml:"password" env:"PORTAL_DB_PASSWORD"`
	DBName   string `yaml:"name" env:"PORTAL_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"PORTAL_DB_SSL_MODE"`
}

// KafkaConfig с пустым Host отключает события.
type KafkaConfig struct {
	Host                 string `yaml:"host" env:"PORTAL_KAFKA_HOST"`
	Port                 int    `yaml:"port" env:"PORTAL_KAFKA_PORT"`
	SubmissionsTopicName string `yaml:"submissions_topic_name" env:"PORTAL_KAFKA_SUBMISSIONS_TOPIC"`
}

// RedisConfig с пустым Host: LRU кэш в процессе, без rate limit.
type RedisConfig struct {
	Host string `yaml:"host" env:"PORTAL_REDIS_HOST"`
	Port int    `yaml:"port" env:"PORTAL_REDIS_PORT"`
}

type PortalConfig struct {
	HTTPAddr string `yaml:"http_addr" env:"PORTAL_HTTP_ADDR"`
	// Port is the bare port many hosts inject. It wins over HTTPAddr.
	Port     string `yaml:"-" env:"PORT"`
	GRPCAddr string `yaml:"grpc_addr" env:"PORTAL_GRPC_ADDR"`

	ServicesDataPath  string `yaml:"services_data_path" env:"PORTAL_SERVICES_DATA_PATH"`
	ElectionsDataPath string `yaml:"elections_data_path" env:"PORTAL_ELECTIONS_DATA_PATH"`

	TrackingCacheTTLSeconds  int `yaml:"tracking_cache_ttl_seconds" env:"PORTAL_TRACKING_CACHE_TTL_SECONDS"`
	LRUCacheSize             int `yaml:"lru_cache_size" env:"PORTAL_LRU_CACHE_SIZE"`
	SubmitRateLimitPerMinute int `yaml:"submit_rate_limit_per_minute" env:"PORTAL_SUBMIT_RATE_LIMIT_PER_MINUTE"`

	// TrustProxy берёт адрес клиента из X-Forwarded-For / X-Real-IP.
	// Включать только за своим reverse proxy.
	TrustProxy bool `yaml:"trust_proxy" env:"PORTAL_TRUST_PROXY"`

	// NodeID is the snowflake node of this replica (0..1023).
	NodeID int64 `yaml:"node_id" env:"PORTAL_NODE_ID"`

	LogLevel string `yaml:"log_level" env:"PORTAL_LOG_LEVEL"`

	WorkerHTTPAddr     string `yaml:"worker_http_addr" env:"PORTAL_WORKER_HTTP_ADDR"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group" env:"PORTAL_KAFKA_CONSUMER_GROUP"`
}

// LoadConfig reads the YAML file, then applies environment overrides.
// An empty filename skips the file.
func LoadConfig(filename string) (*Config, error) {
	var config Config
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if config.Portal.Port != "" {
		config.Portal.HTTPAddr = ":" + config.Portal.Port
	}
	return &config, nil
}

func (c DatabaseConfig) Enabled() bool { return c.Host != "" }
func (c KafkaConfig) Enabled() bool    { return c.Host != "" }
func (c RedisConfig) Enabled() bool    { return c.Host != "" }

func (c DatabaseConfig) ConnString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func (c KafkaConfig) Brokers() []string {
	return []string{fmt.Sprintf("%s:%d", c.Host, c.Port)}
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
