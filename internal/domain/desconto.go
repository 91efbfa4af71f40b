package domain

import "time"

// TipoDesconto identifica a variante de desconto.
type TipoDesconto int

const (
	DescontoValor      TipoDesconto = 1
	DescontoPercentual TipoDesconto = 2
)

// Desconto é um abatimento condicionado a uma data-limite. A posição na
// sequência do boleto determina o campo do banco (primeiro/segundo/
// terceiro desconto); no máximo três são aceitos.
type Desconto struct {
	tipo  TipoDesconto
	valor float64
	data  time.Time
}

func NovoDesconto(tipo TipoDesconto, valor float64, data time.Time) *Desconto {
	return &Desconto{tipo: tipo, valor: valor, data: data}
}

func (d *Desconto) Tipo() TipoDesconto { return d.tipo }
func (d *Desconto) Valor() float64     { return d.valor }
func (d *Desconto) Data() time.Time    { return d.data }
