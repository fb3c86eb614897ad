package redis

import (
	"context"

	"bhasaconnect/internal/ports/tokenstore"

	"github.com/go-redis/redis/v8"
)

// TokenStoreRedis ذخیره‌سازی توکن‌ها در Redis برای اجراهای headless
type TokenStoreRedis struct {
	Client *redis.Client
}

func NewTokenStoreRedis(client *redis.Client) *TokenStoreRedis {
	return &TokenStoreRedis{Client: client}
}

var _ tokenstore.TokenStore = (*TokenStoreRedis)(nil)

func (s *TokenStoreRedis) Set(key string, value []byte) error {
	return s.Client.Set(context.Background(), s.key(key), value, 0).Err()
}

func (s *TokenStoreRedis) Get(key string) ([]byte, error) {
	v, err := s.Client.Get(context.Background(), s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *TokenStoreRedis) Delete(key string) error {
	return s.Client.Del(context.Background(), s.key(key)).Err()
}

func (s *TokenStoreRedis) key(key string) string {
	return "bhasaconnect:" + key
}
