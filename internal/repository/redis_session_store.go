package repository

import (
	"context"
	"errors"
	"time"

	"github.com/limbo/cherries/pkg/cleanup"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps the session keys under cherries:<profile>:<key>.
type RedisSessionStore struct {
	client  *redis.Client
	profile string
}

func NewRedisSessionStore(ctx context.Context, cfg *RedisCfg, profile string) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.New("pinging redis for session store error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return NewRedisSessionStoreWithClient(client, profile), nil
}

func NewRedisSessionStoreWithClient(client *redis.Client, profile string) *RedisSessionStore {
	return &RedisSessionStore{
		client:  client,
		profile: profile,
	}
}

func (rs *RedisSessionStore) keys() []string {
	keys := make([]string, len(SessionKeys))
	for i, key := range SessionKeys {
		keys[i] = "cherries:" + rs.profile + ":" + key
	}
	return keys
}

func (rs *RedisSessionStore) Load(ctx context.Context) (*entity.Session, error) {
	raw, err := rs.client.MGet(ctx, rs.keys()...).Result()
	if err != nil {
		return nil, errors.New("loading session error: " + err.Error())
	}
	values := make(map[string]string, len(SessionKeys))
	for i, key := range SessionKeys {
		if s, ok := raw[i].(string); ok {
			values[key] = s
		}
	}
	return decodeSession(values)
}

func (rs *RedisSessionStore) Save(ctx context.Context, session *entity.Session) error {
	encoded, err := encodeSession(session)
	if err != nil {
		return err
	}
	keys := rs.keys()
	_, err = rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			pipe.Set(ctx, key, encoded[i], 0)
		}
		return nil
	})
	if err != nil {
		return errors.New("saving session error: " + err.Error())
	}
	return nil
}

func (rs *RedisSessionStore) Clear(ctx context.Context) error {
	if err := rs.client.Del(ctx, rs.keys()...).Err(); err != nil {
		return errors.New("clearing session error: " + err.Error())
	}
	return nil
}
