package santander

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/tokencache"
)

func certificadoDeTeste(t *testing.T) *domain.Certificado {
	t.Helper()
	chave, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("erro ao gerar chave: %v", err)
	}
	modelo := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "teste"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, modelo, modelo, &chave.PublicKey, chave)
	if err != nil {
		t.Fatalf("erro ao gerar certificado: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("erro ao decodificar certificado: %v", err)
	}
	return domain.NovoCertificadoDeMaterial(chave, cert)
}

func novoServicoTeste(t *testing.T, srv *httptest.Server) *Service {
	t.Helper()
	s := NovoService("123456", "ws-1", "client-1", "secret-1", certificadoDeTeste(t), tokencache.NovaMemory())
	s.httpClient = srv.Client()
	s.endpoint = srv.URL
	s.agora = func() time.Time {
		return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	}
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

func servidorToken(mux *http.ServeMux) {
	mux.HandleFunc("/auth/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-st", "expires_in": 900})
	})
}

func TestDetectarTipoChavePix(t *testing.T) {
	const doc = "07679404000100"
	casos := []struct {
		chave string
		quer  string
	}{
		{"chave qualquer", ""},
		{doc, "CNPJ"},
		{"financeiro@example.com", "EMAIL"},
		{"(69) 99255-3344", "CELULAR"},
		{"a8f1e9c2-3b4d-4e5f-8a9b-0c1d2e3f4a5b", "EVP"},
	}
	for _, c := range casos {
		got, err := detectarTipoChavePix(c.chave, doc)
		if c.quer == "" {
			if err == nil {
				t.Errorf("detectarTipoChavePix(%q) deveria falhar, veio %q", c.chave, got)
			}
			continue
		}
		if err != nil || got != c.quer {
			t.Errorf("detectarTipoChavePix(%q) = (%q, %v), quer %q", c.chave, got, err, c.quer)
		}
	}

	// CPF só vale quando a chave é o documento do próprio beneficiário.
	if got, err := detectarTipoChavePix("93095135270", "93095135270"); err != nil || got != "CPF" {
		t.Errorf("chave CPF do beneficiário = (%q, %v)", got, err)
	}
}

func TestSendRegistraTitulo(t *testing.T) {
	var payload map[string]any

	mux := http.NewServeMux()
	servidorToken(mux)
	mux.HandleFunc("/collection_bill_management/v2/workspaces/ws-1/bank_slips", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("método = %s", r.Method)
		}
		if got := r.Header.Get("X-Application-Key"); got != "client-1" {
			t.Errorf("X-Application-Key = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"digitableLine": "linha-61",
			"barCode":       "barras-61",
			"qrCodePix":     "qr-61",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)
	s.SetPrazoDevolucao(15)
	s.SetGerarPix(true)
	s.SetChavePix("07679404000100")
	s.SetMulta(domain.NovaMulta(2, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	s.SetJuros(domain.NovoJuros(domain.JurosMensal, 1, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	s.AddDesconto(domain.NovoDesconto(domain.DescontoValor, 10, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))

	if err := s.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if payload["environment"] != "PRODUCAO" || payload["paymentType"] != "REGISTRO" {
		t.Errorf("campos fixos = %v/%v", payload["environment"], payload["paymentType"])
	}
	if payload["covenantCode"] != "123456" || payload["bankNumber"] != "61" {
		t.Errorf("identificação = %v/%v", payload["covenantCode"], payload["bankNumber"])
	}
	if payload["nominalValue"] != "100.00" {
		t.Errorf("nominalValue = %v", payload["nominalValue"])
	}
	if payload["dueDate"] != "2026-09-01" || payload["nsuDate"] != "2026-08-01" {
		t.Errorf("datas = %v/%v", payload["dueDate"], payload["nsuDate"])
	}
	if payload["writeOffQuantityDays"] != float64(15) {
		t.Errorf("writeOffQuantityDays = %v", payload["writeOffQuantityDays"])
	}

	chave := payload["key"].(map[string]any)
	if chave["type"] != "CNPJ" || chave["dictKey"] != "07679404000100" {
		t.Errorf("key = %v", chave)
	}

	// Multa com data igual ao vencimento: carência zero, mas presente.
	if payload["finePercentage"] != "2.00" || payload["fineQuantityDays"] != float64(0) {
		t.Errorf("multa = %v/%v", payload["finePercentage"], payload["fineQuantityDays"])
	}
	if payload["interestPercentage"] != "1.00" {
		t.Errorf("interestPercentage = %v", payload["interestPercentage"])
	}

	desconto := payload["discount"].(map[string]any)
	if desconto["type"] != "VALOR_DATA_FIXA" {
		t.Errorf("discount.type = %v", desconto["type"])
	}
	parcela := desconto["discountOne"].(map[string]any)
	if parcela["value"] != "10.00" || parcela["limitDate"] != "2026-08-20" {
		t.Errorf("discountOne = %v", parcela)
	}

	pagador := payload["payer"].(map[string]any)
	if pagador["documentType"] != "CPF" || pagador["zipCode"] != "76801-000" {
		t.Errorf("payer = %v", pagador)
	}
	if pagador["address"] != "Rua das Laranjeiras 1000" {
		t.Errorf("payer.address = %v", pagador["address"])
	}

	if s.LinhaDigitavel() != "linha-61" || s.CodigoBarras() != "barras-61" || s.PixQrCode() != "qr-61" {
		t.Errorf("saída = %q/%q/%q", s.LinhaDigitavel(), s.CodigoBarras(), s.PixQrCode())
	}
}

func TestSendRejeitaPagadorIgualBeneficiario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria chamar o banco")
	}))
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)
	s.SetPagador(domain.NovoPagador("Empresa", "07.679.404/0001-00", "Rua A", "1", "", "Centro", "Porto Velho", "RO", "76801000"))

	err := s.Send(context.Background())
	if domain.CodigoDoErro(err) != "490" {
		t.Fatalf("err = %v, quer código 490", err)
	}
}

func TestSendRejeitaDescontoPercentual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria chamar o banco")
	}))
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)
	s.AddDesconto(domain.NovoDesconto(domain.DescontoPercentual, 2, time.Now()))

	err := s.Send(context.Background())
	if !domain.IsValidacao(err) {
		t.Fatalf("err = %v, quer validação", err)
	}
}

func TestSendRejeitaJurosDiario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria chamar o banco")
	}))
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)
	s.SetJuros(domain.NovoJuros(domain.JurosDiario, 1, time.Now()))

	err := s.Send(context.Background())
	if !domain.IsValidacao(err) {
		t.Fatalf("err = %v, quer validação", err)
	}
}

func TestBaixarTitulo(t *testing.T) {
	chamado := false
	mux := http.NewServeMux()
	servidorToken(mux)
	mux.HandleFunc("/collection_bill_management/v2/workspaces/ws-1/bank_slips", func(w http.ResponseWriter, r *http.Request) {
		chamado = true
		if r.Method != http.MethodPatch {
			t.Errorf("método = %s, quer PATCH", r.Method)
		}
		var corpo map[string]any
		json.NewDecoder(r.Body).Decode(&corpo)
		if corpo["operation"] != "BAIXAR" || corpo["bankNumber"] != "61" {
			t.Errorf("corpo = %v", corpo)
		}
		json.NewEncoder(w).Encode(map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)

	if err := s.Baixar(context.Background()); err != nil {
		t.Fatalf("Baixar: %v", err)
	}
	if !chamado {
		t.Error("endpoint de baixa não foi chamado")
	}
}

func TestConsultaTitulo(t *testing.T) {
	mux := http.NewServeMux()
	servidorToken(mux)
	mux.HandleFunc("/collection_bill_management/v2/bills/123456.61", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tipoConsulta"); got != "bankslip" {
			t.Errorf("tipoConsulta = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"bankSlipData": map[string]any{"barCode": "barras-61", "digitableLine": "linha-61"},
			"qrCodeData":   map[string]any{"qrCode": "qr-61"},
			"payerData": map[string]any{
				"payerName":           "Fulano de Tal",
				"payerDocumentNumber": "93095135270",
				"payerCounty":         "Porto Velho",
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := novoServicoTeste(t, srv)
	preencherTitulo(s)

	if err := s.Consulta(context.Background()); err != nil {
		t.Fatalf("Consulta: %v", err)
	}
	if s.LinhaDigitavel() != "linha-61" || s.CodigoBarras() != "barras-61" || s.PixQrCode() != "qr-61" {
		t.Errorf("saída = %q/%q/%q", s.LinhaDigitavel(), s.CodigoBarras(), s.PixQrCode())
	}
	pagador, err := s.Pagador()
	if err != nil {
		t.Fatalf("Pagador: %v", err)
	}
	if pagador.Nome() != "Fulano de Tal" || pagador.Cidade() != "Porto Velho" {
		t.Errorf("pagador repopulado = %q/%q", pagador.Nome(), pagador.Cidade())
	}
}

func TestSendNormalizaErros(t *testing.T) {
	casos := []struct {
		status int
		corpo  string
		codigo string
	}{
		{400, `{"_errors":[{"_code":"006","_message":"Data de vencimento inválida"}]}`, "006"},
		{400, `{"statusHttp":400,"errorMessage":"CEP Inválido"}`, "19"},
	}
	for _, c := range casos {
		mux := http.NewServeMux()
		servidorToken(mux)
		mux.HandleFunc("/collection_bill_management/v2/workspaces/ws-1/bank_slips", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			w.Write([]byte(c.corpo))
		})
		srv := httptest.NewServer(mux)

		s := novoServicoTeste(t, srv)
		preencherTitulo(s)

		err := s.Send(context.Background())
		if domain.CodigoDoErro(err) != c.codigo {
			t.Errorf("corpo %q: err = %v, quer código %q", c.corpo, err, c.codigo)
		}
		srv.Close()
	}
}
