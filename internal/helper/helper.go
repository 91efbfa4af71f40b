// Package helper reúne as rotinas de normalização numérica e textual
// compartilhadas pelos encoders de cada banco.
//
// Cada banco dita seu próprio formato de campo (largura fixa, escala
// decimal, remoção de acentos), então estas funções são o vocabulário
// comum que os adaptadores combinam, nunca regras de negócio.
package helper

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Numero remove tudo que não for dígito.
func Numero(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PadLeft extrai os dígitos de s e completa com zeros à esquerda até o
// tamanho pedido. Larguras fixas fazem parte do contrato de cada banco
// (agência 4, conta 14, convênio 7 etc.).
func PadLeft(s string, tamanho int) string {
	s = Numero(s)
	if len(s) >= tamanho {
		return s
	}
	return strings.Repeat("0", tamanho-len(s)) + s
}

var removerAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Ascii translitera acentos para a letra base e descarta o que não
// couber em ASCII imprimível. Idempotente: aplicar duas vezes não altera
// o resultado.
func Ascii(s string) string {
	if s == "" {
		return s
	}
	sem, _, err := transform.String(removerAcentos, s)
	if err != nil {
		sem = s
	}
	var b strings.Builder
	b.Grow(len(sem))
	for _, r := range sem {
		if r >= 0x20 && r < 0x7f {
			switch r {
			case '`', '^', '~', '\'', '"', '?':
				// marcas soltas de acentuação não interessam a nenhum banco
			default:
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// AlfaNumerico mantém apenas [a-zA-Z0-9 ].
func AlfaNumerico(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncar corta s em no máximo n runas.
func Truncar(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Mask aplica uma máscara posicional sobre os dígitos de s, onde '#'
// consome um dígito e qualquer outro caractere é copiado literal.
// Ex.: Mask("02514010", "#####-###") == "02514-010".
func Mask(s, mascara string) string {
	s = Numero(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	k := 0
	for _, m := range mascara {
		if m == '#' {
			if k < len(s) {
				b.WriteByte(s[k])
				k++
			}
			continue
		}
		b.WriteRune(m)
	}
	return b.String()
}

// Telefone é o resultado de SplitPhone.
type Telefone struct {
	Tipo   string // "Celular" ou "Fixo"
	DDD    string
	Numero string
}

// SplitPhone separa DDD e número de um telefone em formato livre,
// descartando o código de país quando presente. Retorna nil para
// entrada vazia.
func SplitPhone(s string) *Telefone {
	s = Numero(s)
	if s == "" {
		return nil
	}
	if len(s) >= 12 {
		s = s[2:]
	}
	var ddd, numero string
	if len(s) >= 10 {
		ddd = s[:2]
		numero = s[2:]
	} else {
		numero = s
	}
	tipo := "Fixo"
	if numero != "" {
		switch numero[0] {
		case '7', '8', '9':
			tipo = "Celular"
		}
	}
	return &Telefone{Tipo: tipo, DDD: ddd, Numero: numero}
}

// FormatValor formata um valor monetário com duas casas decimais e ponto
// como separador ("100.00").
func FormatValor(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatValorSemSeparador formata com duas casas e remove o separador
// ("100.00" vira "10000"), como exigido pelos campos de valor de largura
// fixa.
func FormatValorSemSeparador(v float64) string {
	return strings.ReplaceAll(FormatValor(v), ".", "")
}

// FormatPercentual formata um percentual na escala decimal do banco
// (2 ou 5 casas, conforme o contrato do campo).
func FormatPercentual(v float64, casas int32) string {
	return decimal.NewFromFloat(v).StringFixed(casas)
}

// LinhaParaCodigoBarras converte a linha digitável (47 dígitos) no
// código de barras (44 dígitos), removendo os dígitos verificadores de
// cada campo e reordenando o campo livre. Retorna vazio se a entrada não
// tiver 47 dígitos.
func LinhaParaCodigoBarras(linha string) string {
	d := Numero(linha)
	if len(d) != 47 {
		return ""
	}
	// banco+moeda | DV geral | fator+valor | campo livre
	return d[0:4] + d[32:33] + d[33:47] + d[4:9] + d[10:20] + d[21:31]
}
