package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host            string        `validate:"required"`
	Port            string        `validate:"required,numeric"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Mode            string        `validate:"oneof=RW RO"`
}

type RedisCache struct {
	Host         string
	Port         string
	Password     string
	DB           int           `validate:"gte=0,lte=15"`
	PingAttempts int           `validate:"gt=0"`
	PingBackoff  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Qdrant struct {
	Host       string
	Port       int
	APIKey     string
	Collection string
}

type Room struct {
	CodeAttempts     int           `validate:"min=1,max=64"`
	JoinRetries      int           `validate:"min=0,max=8"`
	SubscriberBuffer int           `validate:"min=1"`
	SessionTTL       time.Duration `validate:"gt=0"`
	DeckSize         int           `validate:"min=1"`
}

// Drivers picks the adapter behind every external collaborator.
type Drivers struct {
	Store   string `validate:"oneof=memory postgres"`
	Bus     string `validate:"oneof=memory redis"`
	Catalog string `validate:"oneof=static postgres qdrant"`
	Session string `validate:"oneof=memory redis"`
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Qdrant   Qdrant
	Room     Room
	Drivers  Drivers
	LogLevel string `validate:"oneof=debug info warn error"`
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s invalid config : %v", logtag, err)
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg.redacted())
	return cfg
}

// FromEnv builds the config from the current environment without touching flags or files.
func FromEnv() *Config {
	return &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Qdrant:   *newQdrant(),
		Room:     *newRoom(),
		Drivers:  *newDrivers(),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func (c Config) redacted() Config {
	c.Redis.Password = "***"
	c.Postgres.Password = "***"
	c.Qdrant.APIKey = "***"
	return c
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:            getenv("HTTP_PORT", "8080"),
		Host:            getenv("HTTP_HOST", "localhost"),
		ShutdownTimeout: getenvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		Mode:            getenv("HTTP_MODE", "RW"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:         getenv("REDIS_PORT", "6379"),
		Host:         getenv("REDIS_HOST", "redis"),
		Password:     getenv("REDIS_PASSWORD", "shared"),
		DB:           getenvInt("REDIS_DB", 0),
		PingAttempts: getenvInt("REDIS_PING_ATTEMPTS", 5),
		PingBackoff:  getenvDuration("REDIS_PING_BACKOFF", time.Second),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "test"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newQdrant() *Qdrant {
	return &Qdrant{
		Host:       getenv("QDRANT_HOST", "qdrant"),
		Port:       getenvInt("QDRANT_PORT", 6334),
		APIKey:     getenv("QDRANT_API_KEY", ""),
		Collection: getenv("QDRANT_COLLECTION", "movies"),
	}
}

func newRoom() *Room {
	return &Room{
		CodeAttempts:     getenvInt("ROOM_CODE_ATTEMPTS", 8),
		JoinRetries:      getenvInt("ROOM_JOIN_RETRIES", 1),
		SubscriberBuffer: getenvInt("ROOM_SUBSCRIBER_BUFFER", 256),
		SessionTTL:       getenvDuration("ROOM_SESSION_TTL", 6*time.Hour),
		DeckSize:         getenvInt("ROOM_DECK_SIZE", 50),
	}
}

func newDrivers() *Drivers {
	return &Drivers{
		Store:   getenv("STORE_DRIVER", "memory"),
		Bus:     getenv("BUS_DRIVER", "memory"),
		Catalog: getenv("CATALOG_DRIVER", "static"),
		Session: getenv("SESSION_DRIVER", "memory"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s is not an int (%q). Using default value %d\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s is not a duration (%q). Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return v
}
