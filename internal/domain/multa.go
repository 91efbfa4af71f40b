package domain

import "time"

// Multa é o percentual cobrado após o vencimento. A ausência de uma
// Multa no boleto significa "sem multa"; não existe variante isenta.
type Multa struct {
	percentual float64
	data       time.Time
}

func NovaMulta(percentual float64, data time.Time) *Multa {
	return &Multa{percentual: percentual, data: data}
}

func (m *Multa) Percentual() float64 { return m.percentual }
func (m *Multa) Data() time.Time     { return m.data }

// DiasCarencia segue a mesma regra de Juros.DiasCarencia.
func (m *Multa) DiasCarencia(vencimento time.Time, minimo int) int {
	return diasEntre(vencimento, m.data, minimo)
}
