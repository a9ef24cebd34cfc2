package infra_redis_init

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/kinoswap/matchroom/internal/config"
)

const logtag = "[redis]"

// Connect pings the server until it answers, giving up after cfg.PingAttempts.
func Connect(cfg config.RedisCache) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	attempts := max(cfg.PingAttempts, 1)
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = client.Ping().Err(); err == nil {
			log.Printf("%s connected to %s db=%d", logtag, addr, cfg.DB)
			return client, nil
		}
		log.Printf("%s ping %s failed (%d/%d) : %v", logtag, addr, attempt, attempts, err)
		if attempt < attempts {
			time.Sleep(cfg.PingBackoff)
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
}

func MustEstablishConn(cfg config.RedisCache) *redis.Client {
	client, err := Connect(cfg)
	if err != nil {
		log.Fatalf("%s %v", logtag, err)
	}
	return client
}
