package domain

import (
	"errors"
	"fmt"
)

// Erros sentinela para condições comuns a todos os bancos.
var (
	// ErrTokenInvalido indica falha de autenticação junto ao banco.
	// Nunca é retentado automaticamente.
	ErrTokenInvalido = errors.New("boleto: token inválido ou expirado")
)

// ErroValidacao indica campo obrigatório ausente ou malformado,
// detectado na leitura durante a montagem do payload, sempre antes de
// qualquer chamada de rede.
type ErroValidacao struct {
	Campo    string
	Mensagem string // opcional; quando vazio, deriva do campo
}

func (e *ErroValidacao) Error() string {
	if e.Mensagem != "" {
		return e.Mensagem
	}
	return fmt.Sprintf("%s inválido.", e.Campo)
}

// NovoErroValidacao cria um ErroValidacao para o campo informado.
func NovoErroValidacao(campo string) *ErroValidacao {
	return &ErroValidacao{Campo: campo}
}

// IsValidacao informa se o erro é de validação local.
func IsValidacao(err error) bool {
	var ev *ErroValidacao
	return errors.As(err, &ev)
}

// ErroRegistro é a rejeição de negócio normalizada: o código estável do
// banco (ou resolvido/checksum quando o banco só devolve texto livre), a
// mensagem original e o status HTTP da resposta. É o único formato que
// os chamadores precisam conhecer para ramificar por código.
type ErroRegistro struct {
	Codigo     string
	Mensagem   string
	StatusHTTP int
}

func (e *ErroRegistro) Error() string {
	if e.Codigo != "" {
		return fmt.Sprintf("(%s) %s", e.Codigo, e.Mensagem)
	}
	return e.Mensagem
}

// NovoErroRegistro cria um ErroRegistro.
func NovoErroRegistro(codigo, mensagem string, status int) *ErroRegistro {
	return &ErroRegistro{Codigo: codigo, Mensagem: mensagem, StatusHTTP: status}
}

// CodigoDoErro extrai o código de um ErroRegistro; vazio quando o erro
// é de outra natureza.
func CodigoDoErro(err error) string {
	var er *ErroRegistro
	if errors.As(err, &er) {
		return er.Codigo
	}
	return ""
}

// IsRegistro informa se o erro é uma rejeição de negócio do banco.
func IsRegistro(err error) bool {
	var er *ErroRegistro
	return errors.As(err, &er)
}
