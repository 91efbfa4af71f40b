// Package errcode resolve mensagens de erro em texto livre dos bancos
// para códigos numéricos estáveis.
//
// Os bancos mudam a redação das mensagens sem aviso, então a resolução
// combina três estágios: igualdade exata sobre a forma normalizada,
// semelhança de caracteres acima de um limiar, e por fim um checksum
// CRC32 da mensagem crua como código sintético para mensagens nunca
// vistas.
package errcode

import (
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// LimiarPadrao é o percentual mínimo de semelhança para aceitar uma
// correspondência aproximada.
const LimiarPadrao = 70.0

// Entrada associa um código canônico a uma mensagem conhecida.
type Entrada struct {
	Codigo   int    `yaml:"codigo"`
	Mensagem string `yaml:"mensagem"`
}

// Tabela é o conjunto ordenado de mensagens conhecidas de um banco. A
// ordem de declaração decide o desempate entre semelhanças iguais: a
// primeira entrada na ordem da tabela vence, então a tabela é um slice,
// nunca um map.
type Tabela struct {
	entradas     []Entrada
	normalizadas []string

	// Limiar é o percentual mínimo de semelhança (exclusivo) para uma
	// correspondência aproximada valer.
	Limiar float64

	// Logger, quando presente, registra mensagens não resolvidas porém
	// próximas do limiar, para curadoria manual da tabela.
	Logger *slog.Logger
}

// NovaTabela cria uma tabela preservando a ordem das entradas.
func NovaTabela(entradas []Entrada) *Tabela {
	t := &Tabela{
		entradas: entradas,
		Limiar:   LimiarPadrao,
	}
	t.normalizadas = make([]string, len(entradas))
	for i, e := range entradas {
		t.normalizadas[i] = Normalizar(e.Mensagem)
	}
	return t
}

// Resolver devolve o código da melhor correspondência para a mensagem,
// ou false quando nenhuma entrada ultrapassa o limiar. Nesse caso o
// chamador recorre ao Checksum.
func (t *Tabela) Resolver(mensagem string) (int, bool) {
	alvo := Normalizar(mensagem)

	melhor := -1
	maior := 0.0
	for i, norm := range t.normalizadas {
		if strings.EqualFold(norm, alvo) {
			return t.entradas[i].Codigo, true
		}
		if pct := SimilarText(norm, alvo); pct > maior {
			maior = pct
			melhor = i
		}
	}

	if maior > t.Limiar {
		return t.entradas[melhor].Codigo, true
	}
	if t.Logger != nil && melhor >= 0 && maior > 50 {
		t.Logger.Warn("mensagem de erro não resolvida",
			"mensagem", strings.TrimSpace(mensagem),
			"mais_proxima", t.entradas[melhor].Mensagem,
			"semelhanca", maior)
	}
	return 0, false
}

// ResolverOuChecksum resolve pela tabela e, sem correspondência, cai no
// checksum da mensagem crua.
func (t *Tabela) ResolverOuChecksum(mensagem string) string {
	if codigo, ok := t.Resolver(mensagem); ok {
		return fmt.Sprintf("%d", codigo)
	}
	return Checksum(mensagem)
}

// tabelaYAML é o formato de arquivo para versões curadas da tabela.
type tabelaYAML struct {
	Limiar   float64   `yaml:"limiar"`
	Entradas []Entrada `yaml:"entradas"`
}

// CarregarYAML lê uma tabela versionada de um arquivo YAML, permitindo
// substituir entradas e limiar sem recompilar.
func CarregarYAML(r io.Reader) (*Tabela, error) {
	var doc tabelaYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("erro ao ler tabela de erros: %w", err)
	}
	t := NovaTabela(doc.Entradas)
	if doc.Limiar > 0 {
		t.Limiar = doc.Limiar
	}
	return t, nil
}

// Checksum devolve o CRC32 decimal sem sinal da mensagem aparada.
// Função pura da entrada aparada: a mesma mensagem produz sempre o
// mesmo código sintético.
func Checksum(mensagem string) string {
	soma := crc32.ChecksumIEEE([]byte(strings.TrimSpace(mensagem)))
	return fmt.Sprintf("%d", soma)
}

var trocaAcentos = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Normalizar rebaixa para minúsculas, troca acentuadas pela letra base
// e remove tudo fora de [a-z0-9 ]. Idempotente.
func Normalizar(s string) string {
	s = trocaAcentos.Replace(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SimilarText devolve o percentual de semelhança entre duas strings,
// reproduzindo o algoritmo clássico de maior substring comum aplicado
// recursivamente às sobras de cada lado. O comportamento numérico é
// mantido porque códigos já persistidos dependem dele.
func SimilarText(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	comum := simChars(a, b)
	return float64(comum) * 2.0 * 100.0 / float64(len(a)+len(b))
}

func simChars(a, b string) int {
	max, posA, posB := 0, 0, 0
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > max {
				max, posA, posB = k, i, j
			}
		}
	}
	if max == 0 {
		return 0
	}
	soma := max
	soma += simChars(a[:posA], b[:posB])
	soma += simChars(a[posA+max:], b[posB+max:])
	return soma
}
