package domain

import "time"

// TipoJuros identifica a variante de juros de mora. Cada banco traduz a
// variante para seu próprio código inteiro; uma variante desconhecida é
// erro fatal de montagem, nunca descartada em silêncio.
type TipoJuros int

const (
	JurosIsento TipoJuros = iota
	JurosDiario
	JurosMensal
)

// Juros carrega a taxa (percentual mensal) ou o valor (diário, em
// reais) e a data de referência a partir da qual incide.
type Juros struct {
	tipo  TipoJuros
	valor float64
	data  time.Time
}

func NovoJuros(tipo TipoJuros, valor float64, data time.Time) *Juros {
	return &Juros{tipo: tipo, valor: valor, data: data}
}

func (j *Juros) Tipo() TipoJuros { return j.tipo }
func (j *Juros) Valor() float64  { return j.valor }
func (j *Juros) Data() time.Time { return j.data }

// DiasCarencia calcula os dias entre o vencimento e a data de
// referência, respeitando o mínimo do banco (1 para a maioria, 0 onde o
// banco aceita incidência no próprio vencimento). Nunca negativo.
func (j *Juros) DiasCarencia(vencimento time.Time, minimo int) int {
	return diasEntre(vencimento, j.data, minimo)
}

func diasEntre(de, ate time.Time, minimo int) int {
	dias := int(ate.Sub(de).Hours() / 24)
	if dias < minimo {
		return minimo
	}
	return dias
}
