package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Astemirdum/hotel-reservation/pkg/circuit_breaker"
	"github.com/Astemirdum/hotel-reservation/pkg/kafka"
	"github.com/Astemirdum/hotel-reservation/pkg/logger"
	"github.com/Astemirdum/hotel-reservation/pkg/postgres"
	"github.com/Astemirdum/hotel-reservation/pkg/sqlite"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/repository"
)

type Storage string

const (
	StoragePostgres Storage = "postgres"
	StorageSQLite   Storage = "sqlite"
	StorageMemory   Storage = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RESERVATION_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"RESERVATION_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Config struct {
	Server         HTTPServer             `yaml:"server"`
	Storage        Storage                `yaml:"storage" envconfig:"STORAGE"`
	Database       postgres.DB            `yaml:"db"`
	SQLite         sqlite.DB              `yaml:"sqlite"`
	Redis          repository.RedisConfig `yaml:"redis"`
	Kafka          kafka.Config           `yaml:"kafka"`
	CircuitBreaker circuit_breaker.Config `yaml:"circuitBreaker"`
	Log            logger.Log             `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig applies the options, then the YAML file named by CONFIG_FILE
// (if any), then the environment. Later sources win.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(os.Getenv("CONFIG_FILE"), ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

// Load builds a fresh config without touching the process-wide one.
func Load(path string, ops ...Option) (*Config, error) {
	config := Config{
		Storage: StoragePostgres,
		Server: HTTPServer{
			Host:        "0.0.0.0",
			Port:        "8070",
			ReadTimeout: 10 * time.Second,
		},
		Database: postgres.DB{
			SSLMode:         "disable",
			MaxOpenConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		SQLite: sqlite.DB{Path: "reservation.db"},
		Redis:  repository.RedisConfig{TTL: time.Minute},
		Kafka:  kafka.Config{Topic: kafka.ReservationTopic},
		CircuitBreaker: circuit_breaker.Config{
			Window:        20,
			FailureRatio:  0.5,
			Cooldown:      30 * time.Second,
			RecoveryCalls: 3,
		},
	}
	for _, op := range ops {
		op(&config)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	switch config.Storage {
	case StoragePostgres, StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}
	return &config, nil
}

func printConfig(cfg *Config) {
	masked := *cfg
	masked.Database.Password = "***"
	masked.Redis.Password = "***"
	jscfg, _ := json.MarshalIndent(masked, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
