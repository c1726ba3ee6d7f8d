package app

import (
	"github.com/giriraj47/helpstudyabroad/internal/config"
	"github.com/giriraj47/helpstudyabroad/internal/logger"
	"github.com/giriraj47/helpstudyabroad/internal/redis"
)

type Infra struct {
	Redis *redis.Client
}

func setupInfra(cfg config.Config) (*Infra, error) {
	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
	})

	return &Infra{
		Redis: redisClient,
	}, nil
}
