// Package ports define os contratos entre a aplicação e os adaptadores
// bancários. Todo banco registra títulos; baixa, consulta e alteração
// são capacidades opcionais descobertas por type assertion.
package ports

import (
	"context"
	"time"
)

// BancoService é o contrato mínimo de um adaptador de cobrança.
type BancoService interface {
	// Send registra o boleto no banco e preenche no próprio serviço a
	// linha digitável, o código de barras e, quando solicitado, o PIX.
	Send(ctx context.Context) error
}

// Baixavel é implementado pelos bancos que expõem baixa (cancelamento)
// de título registrado.
type Baixavel interface {
	Baixar(ctx context.Context) error
}

// Consultavel é implementado pelos bancos que expõem consulta de
// título registrado.
type Consultavel interface {
	// Consulta busca o título no banco e repopula os dados de saída.
	Consulta(ctx context.Context) error
}

// Alteravel é implementado pelos bancos que aceitam alteração de
// título já registrado.
type Alteravel interface {
	Alterar(ctx context.Context) error
}

// TokenStore guarda tokens OAuth entre execuções. Implementações devem
// ser seguras para uso concorrente; corrida em cache frio é aceitável
// porque reautenticar é idempotente.
type TokenStore interface {
	// Get retorna o token da chave, ou "" quando ausente ou expirado.
	Get(ctx context.Context, chave string) (string, error)

	// Set grava o token com o prazo de vida reportado pelo banco.
	Set(ctx context.Context, chave, token string, ttl time.Duration) error
}
