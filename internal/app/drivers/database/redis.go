package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"hims-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient backs the OR-number counters and the charge replay window;
// a dead redis at startup is fatal because both guards depend on it.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return rdb
}
