package tokencache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis é um TokenStore sobre Redis, para compartilhar tokens entre
// instâncias do processo. A expiração fica por conta do TTL nativo.
type Redis struct {
	cliente *redis.Client
	prefixo string
}

// NovoRedis cria um armazém sobre o cliente informado. O prefixo separa
// os tokens de outras chaves no mesmo banco de dados.
func NovoRedis(cliente *redis.Client, prefixo string) *Redis {
	if prefixo == "" {
		prefixo = "boleto:token:"
	}
	return &Redis{cliente: cliente, prefixo: prefixo}
}

// Get retorna o token da chave, ou "" quando ausente.
func (r *Redis) Get(ctx context.Context, chave string) (string, error) {
	token, err := r.cliente.Get(ctx, r.prefixo+chave).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("erro ao ler token do redis: %w", err)
	}
	return token, nil
}

// Set grava o token com o prazo de vida informado.
func (r *Redis) Set(ctx context.Context, chave, token string, ttl time.Duration) error {
	if err := r.cliente.Set(ctx, r.prefixo+chave, token, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar token no redis: %w", err)
	}
	return nil
}
