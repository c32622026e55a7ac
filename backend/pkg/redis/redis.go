package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
)

// Client encapsula o cliente Redis
// Usos atuais: cache do relatório, blacklist de tokens e rate limit.
// A aplicação opera em modo degradado quando o Redis está indisponível.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient cria a conexão Redis e executa um Ping de verificação
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}

	logger.Info("conexão com o Redis estabelecida", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Cache genérico (relatório / dashboard) ──

// GetCached retorna o valor em cache para a chave, "" se ausente
func (c *Client) GetCached(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

// SetCached grava um valor com TTL
func (c *Client) SetCached(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// InvalidatePrefix remove todas as chaves com o prefixo informado
// Usado ao gravar/editar lançamentos para derrubar o cache do relatório.
func (c *Client) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ── Blacklist de tokens ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken adiciona o JWT ID à blacklist com TTL igual à validade restante
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token já expirado, não precisa entrar na blacklist
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted verifica se o JWT ID está na blacklist
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limit ──

// CheckRateLimit janela fixa simples via INCR + EXPIRE
// Retorna false quando o limite da janela foi excedido.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close encerra a conexão com o Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
