package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the Redis instance named by REDIS_URL
func ConnectRedis() (*redis.Client, error) {
	redisURL := os.Getenv("REDIS_URL")

	var client *redis.Client
	if redisURL != "" && redisURL != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %v", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: "localhost:6379",
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	log.Println("Redis connection established")
	return client, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(client *redis.Client) error {
	if err := client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}

// AsynqRedisOpt builds the task queue's Redis connection options from the
// same REDIS_URL the main client uses
func AsynqRedisOpt() asynq.RedisClientOpt {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL != "" && redisURL != "localhost:6379" {
		if opt, err := redis.ParseURL(redisURL); err == nil {
			return asynq.RedisClientOpt{
				Addr:     opt.Addr,
				Username: opt.Username,
				Password: opt.Password,
				DB:       opt.DB,
			}
		}
		log.Println("Could not parse REDIS_URL for asynq, falling back to localhost")
	}
	return asynq.RedisClientOpt{Addr: "localhost:6379"}
}
