package brasil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/tokencache"
)

func novoServicoTeste(srv *httptest.Server) *Service {
	s := NovoService("1234567", "17", "35", "client-1", "secret-1", "app-key-1", tokencache.NovaMemory())
	s.httpClient = srv.Client()
	s.endpoint = srv.URL
	s.endpointToken = srv.URL + "/oauth/token"
	return s
}

func preencherTitulo(s *Service) {
	s.SetNossoNumero("61")
	s.SetValor(100)
	s.SetEmissao(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	s.SetVencimento(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	s.SetPagador(domain.NovoPagador(
		"Fulano de Tal", "930.951.352-70",
		"Rua das Laranjeiras", "1000", "", "Centro",
		"Porto Velho", "RO", "76801-000",
	))
	s.SetBeneficiario(domain.NovoBeneficiario(
		"Empresa Exemplo LTDA", "07.679.404/0001-00",
		"Avenida Sete de Setembro", "2233", "", "Centro",
		"Porto Velho", "RO", "76804-141",
	))
}

func servidorToken(t *testing.T, mux *http.ServeMux, escopoQuer string) {
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		usuario, senha, ok := r.BasicAuth()
		if !ok || usuario != "client-1" || senha != "secret-1" {
			t.Errorf("basic auth = %q/%q", usuario, senha)
		}
		corpo, _ := io.ReadAll(r.Body)
		if escopoQuer != "" && !strings.Contains(string(corpo), "scope="+escopoQuer) {
			t.Errorf("escopo ausente em %q, quer %q", corpo, escopoQuer)
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-bb", "expires_in": 600})
	})
}

func TestNumeroTituloCliente(t *testing.T) {
	s := NovoService("1234567", "17", "35", "c", "s", "k", tokencache.NovaMemory())
	if got := s.numeroTituloCliente("61"); got != "00012345670000000061" {
		t.Errorf("numeroTituloCliente = %q, quer 00012345670000000061", got)
	}
}

func TestSendRegistraTitulo(t *testing.T) {
	var payload map[string]any

	mux := http.NewServeMux()
	servidorToken(t, mux, "cobranca.registro-boletos")
	mux.HandleFunc("/cobrancas/v2/boletos", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("gw-dev-app-key"); got != "app-key-1" {
			t.Errorf("gw-dev-app-key = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-bb" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("payload não é JSON: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"linhaDigitavel":      "linha-61",
			"codigoBarraNumerico": "barras-61",
			"qrCode":              map[string]any{"emv": "emv-61"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)
	s.SetGerarPix(true)
	s.SetPrazoDevolucao(29)
	s.SetJuros(domain.NovoJuros(domain.JurosMensal, 1, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	s.SetMulta(domain.NovaMulta(2, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	s.AddDesconto(domain.NovoDesconto(domain.DescontoValor, 10, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))

	if err := s.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if payload["numeroConvenio"] != "1234567" {
		t.Errorf("numeroConvenio = %v", payload["numeroConvenio"])
	}
	if payload["numeroTituloCliente"] != "00012345670000000061" {
		t.Errorf("numeroTituloCliente = %v", payload["numeroTituloCliente"])
	}
	if payload["dataVencimento"] != "01.09.2026" {
		t.Errorf("dataVencimento = %v", payload["dataVencimento"])
	}
	if payload["valorOriginal"] != float64(100) {
		t.Errorf("valorOriginal = %v", payload["valorOriginal"])
	}
	if payload["indicadorAceiteTituloVencido"] != "S" {
		t.Errorf("indicadorAceiteTituloVencido = %v", payload["indicadorAceiteTituloVencido"])
	}
	if payload["indicadorPix"] != "S" {
		t.Errorf("indicadorPix = %v", payload["indicadorPix"])
	}

	juros := payload["jurosMora"].(map[string]any)
	if juros["tipo"] != float64(2) || juros["porcentagem"] != float64(1) {
		t.Errorf("jurosMora = %v", juros)
	}
	multa := payload["multa"].(map[string]any)
	if multa["tipo"] != float64(2) || multa["porcentagem"] != float64(2) {
		t.Errorf("multa = %v", multa)
	}
	desconto := payload["desconto"].(map[string]any)
	if desconto["tipo"] != float64(1) || desconto["valor"] != float64(10) {
		t.Errorf("desconto = %v", desconto)
	}

	pagador := payload["pagador"].(map[string]any)
	if pagador["tipoInscricao"] != float64(1) || pagador["numeroInscricao"] != float64(93095135270) {
		t.Errorf("pagador = %v", pagador)
	}

	if s.LinhaDigitavel() != "linha-61" || s.CodigoBarras() != "barras-61" || s.PixQrCode() != "emv-61" {
		t.Errorf("saída = %q/%q/%q", s.LinhaDigitavel(), s.CodigoBarras(), s.PixQrCode())
	}
}

func TestSendSubstituiPessoasNoSandbox(t *testing.T) {
	var payload map[string]any

	mux := http.NewServeMux()
	servidorToken(t, mux, "")
	mux.HandleFunc("/cobrancas/v2/boletos", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]any{"linhaDigitavel": "x"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)
	s.SetSandbox(true)

	if err := s.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	pagador := payload["pagador"].(map[string]any)
	if pagador["nome"] != sandboxPagadorNome || pagador["numeroInscricao"] != float64(sandboxPagadorDocumento) {
		t.Errorf("pagador sandbox = %v", pagador)
	}
	beneficiario := payload["beneficiarioFinal"].(map[string]any)
	if beneficiario["nome"] != sandboxBeneficiarioNome {
		t.Errorf("beneficiário sandbox = %v", beneficiario)
	}
}

func TestBaixarExigeModoAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria chamar o banco")
	}))
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)

	err := s.Baixar(context.Background())
	if !domain.IsValidacao(err) {
		t.Fatalf("err = %v, quer validação de modo", err)
	}
}

func TestBaixarNoModoAPI(t *testing.T) {
	chamado := false
	mux := http.NewServeMux()
	servidorToken(t, mux, "cobrancas.boletos-requisicao")
	mux.HandleFunc("/cobrancas/v2/boletos/00012345670000000061/baixar", func(w http.ResponseWriter, r *http.Request) {
		chamado = true
		var corpo map[string]any
		json.NewDecoder(r.Body).Decode(&corpo)
		if corpo["numeroConvenio"] != "1234567" {
			t.Errorf("numeroConvenio = %v", corpo["numeroConvenio"])
		}
		json.NewEncoder(w).Encode(map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)
	s.SetModo(ModoAPI)

	if err := s.Baixar(context.Background()); err != nil {
		t.Fatalf("Baixar: %v", err)
	}
	if !chamado {
		t.Error("endpoint de baixa não foi chamado")
	}
}

func TestSendNormalizaErroEstruturado(t *testing.T) {
	mux := http.NewServeMux()
	servidorToken(t, mux, "")
	mux.HandleFunc("/cobrancas/v2/boletos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"erros": []map[string]any{{"codigo": "4874915", "mensagem": "Nosso número já incluído anteriormente."}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)

	err := s.Send(context.Background())
	if domain.CodigoDoErro(err) != "4874915" {
		t.Fatalf("err = %v, quer código 4874915", err)
	}
}

func TestNormalizarErroDialetos(t *testing.T) {
	casos := []struct {
		corpo  string
		codigo string
	}{
		{`{"errors":[{"code":"E1","message":"m"}]}`, "E1"},
		{`{"error":"invalid_request","message":"m"}`, "400"},
		{`texto solto`, ""},
	}
	for _, c := range casos {
		err := normalizarErro(400, []byte(c.corpo))
		if domain.CodigoDoErro(err) != c.codigo {
			t.Errorf("normalizarErro(%q) = %v, quer código %q", c.corpo, err, c.codigo)
		}
	}
}
