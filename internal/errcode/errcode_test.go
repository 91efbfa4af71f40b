package errcode

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestResolverExato(t *testing.T) {
	casos := []struct {
		mensagem string
		quer     int
	}{
		{"CEP Inválido", 19},
		{"cep inválido", 19},
		{"CEP INVALIDO", 19},
		{"Título já cadastrado", 69},
		{"Usuário não Autorizado", 13},
	}
	for _, c := range casos {
		got, ok := TabelaPadrao.Resolver(c.mensagem)
		if !ok || got != c.quer {
			t.Errorf("Resolver(%q) = (%d, %v), quer (%d, true)", c.mensagem, got, ok, c.quer)
		}
	}
}

// As entradas 19 e 36 têm a mesma mensagem; a primeira na ordem da
// tabela decide.
func TestResolverDesempataPelaOrdem(t *testing.T) {
	if got, ok := TabelaPadrao.Resolver("CEP Inválido"); !ok || got != 19 {
		t.Errorf("Resolver = (%d, %v), quer (19, true)", got, ok)
	}

	tabela := NovaTabela([]Entrada{
		{1, "campo valor x"},
		{2, "campo valor y"},
	})
	if got, ok := tabela.Resolver("campo valor z"); !ok || got != 1 {
		t.Errorf("desempate aproximado = (%d, %v), quer (1, true)", got, ok)
	}
}

func TestResolverAproximado(t *testing.T) {
	// Redações levemente diferentes das mensagens da tabela.
	casos := []struct {
		mensagem string
		quer     int
	}{
		{"Solicitação atendida", 0},
		{"Titulo ja cadastrado na base", 69},
		{"Dados inconsistentes.", 6},
	}
	for _, c := range casos {
		got, ok := TabelaPadrao.Resolver(c.mensagem)
		if !ok || got != c.quer {
			t.Errorf("Resolver(%q) = (%d, %v), quer (%d, true)", c.mensagem, got, ok, c.quer)
		}
	}
}

func TestResolverSemCorrespondencia(t *testing.T) {
	mensagem := "xyzw qwerty asdfgh zxcvbn"
	if got, ok := TabelaPadrao.Resolver(mensagem); ok {
		t.Fatalf("Resolver(%q) = (%d, true), quer false", mensagem, got)
	}
	if got := TabelaPadrao.ResolverOuChecksum(mensagem); got != Checksum(mensagem) {
		t.Errorf("ResolverOuChecksum = %q, quer o checksum %q", got, Checksum(mensagem))
	}
}

func TestResolverRegistraQuaseAcerto(t *testing.T) {
	var buf bytes.Buffer
	tabela := NovaTabela([]Entrada{{19, "CEP Inválido"}})
	tabela.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	// Semelhança entre 50 e o limiar: não resolve, mas registra a
	// entrada mais próxima para curadoria.
	if _, ok := tabela.Resolver("cep invalido xxxxxxxxxxxx"); ok {
		t.Fatal("não deveria resolver abaixo do limiar")
	}
	if !strings.Contains(buf.String(), "mensagem de erro não resolvida") {
		t.Errorf("quase-acerto não registrado: %q", buf.String())
	}
}

func TestChecksum(t *testing.T) {
	// CRC32 IEEE de "abc".
	if got := Checksum("abc"); got != "891568578" {
		t.Errorf("Checksum(abc) = %q, quer 891568578", got)
	}
	// Função pura da entrada aparada.
	if Checksum("abc\n") != Checksum("abc") || Checksum("  abc  ") != Checksum("abc") {
		t.Error("Checksum deveria ignorar espaços e quebras nas pontas")
	}
}

func TestNormalizar(t *testing.T) {
	casos := []struct {
		entrada string
		quer    string
	}{
		{"Ação & Café!", "acao  cafe"},
		{"CEP Inválido", "cep invalido"},
		{"já", "ja"},
	}
	for _, c := range casos {
		got := Normalizar(c.entrada)
		if got != c.quer {
			t.Errorf("Normalizar(%q) = %q, quer %q", c.entrada, got, c.quer)
		}
		if Normalizar(got) != got {
			t.Errorf("Normalizar não é idempotente para %q", c.entrada)
		}
	}
}

func TestSimilarText(t *testing.T) {
	casos := []struct {
		a, b string
		quer float64
	}{
		{"World", "Word", 2.0 * 4 * 100 / 9},
		{"abc", "abc", 100},
		{"abc", "xyz", 0},
		{"", "", 0},
	}
	for _, c := range casos {
		if got := SimilarText(c.a, c.b); math.Abs(got-c.quer) > 0.001 {
			t.Errorf("SimilarText(%q, %q) = %f, quer %f", c.a, c.b, got, c.quer)
		}
	}
}

func TestCarregarYAML(t *testing.T) {
	doc := `
limiar: 80
entradas:
  - codigo: 19
    mensagem: "CEP Inválido"
  - codigo: 69
    mensagem: "Título já cadastrado"
`
	tabela, err := CarregarYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("CarregarYAML: %v", err)
	}
	if tabela.Limiar != 80 {
		t.Errorf("Limiar = %f, quer 80", tabela.Limiar)
	}
	if got, ok := tabela.Resolver("CEP Inválido"); !ok || got != 19 {
		t.Errorf("Resolver = (%d, %v), quer (19, true)", got, ok)
	}
}
