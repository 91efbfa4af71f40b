package tokencache

import (
	"context"
	"sync"
	"time"
)

type entrada struct {
	token  string
	expira time.Time
}

// Memory é um TokenStore em memória com expiração por chave. Entradas
// vencidas são removidas na leitura.
type Memory struct {
	mu       sync.Mutex
	entradas map[string]entrada

	// agora é substituível em teste.
	agora func() time.Time
}

// NovaMemory cria um armazém em memória vazio.
func NovaMemory() *Memory {
	return &Memory{
		entradas: make(map[string]entrada),
		agora:    time.Now,
	}
}

// Get retorna o token da chave, ou "" quando ausente ou expirado.
func (m *Memory) Get(_ context.Context, chave string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entradas[chave]
	if !ok {
		return "", nil
	}
	if m.agora().After(e.expira) {
		delete(m.entradas, chave)
		return "", nil
	}
	return e.token, nil
}

// Set grava o token com o prazo de vida informado.
func (m *Memory) Set(_ context.Context, chave, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entradas[chave] = entrada{token: token, expira: m.agora().Add(ttl)}
	return nil
}
