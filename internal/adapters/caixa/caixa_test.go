package caixa

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/errcode"
)

func novoServicoTeste(srv *httptest.Server) *Service {
	s := NovoService("123456")
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

func respostaSucesso(operacao string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <SERVICO_SAIDA>
      <COD_RETORNO>0</COD_RETORNO>
      <DADOS>
        <CONTROLE_NEGOCIAL><COD_RETORNO>0</COD_RETORNO></CONTROLE_NEGOCIAL>
        <` + operacao + `>
          <CODIGO_BARRAS>barras-61</CODIGO_BARRAS>
          <LINHA_DIGITAVEL>linha-61</LINHA_DIGITAVEL>
          <QRCODE>qr-61</QRCODE>
        </` + operacao + `>
      </DADOS>
    </SERVICO_SAIDA>
  </soapenv:Body>
</soapenv:Envelope>`
}

func TestNossoNumeroCompleto(t *testing.T) {
	s := NovoService("123456")
	if got := s.nossoNumeroCompleto("61"); got != "14000000000000061" {
		t.Errorf("nossoNumeroCompleto = %q, quer 14000000000000061", got)
	}
}

func TestHashAutenticacao(t *testing.T) {
	s := NovoService("123456")
	preencherTitulo(s)

	// Concatenação de largura fixa do manual: convênio(7), nosso
	// número(17), vencimento(8), valor(15) e documento(14).
	base := "0123456" + "14000000000000061" + "01092026" + "000000000010000" + "07679404000100"
	soma := sha256.Sum256([]byte(base))
	quer := base64.StdEncoding.EncodeToString(soma[:])

	got, err := s.hashAutenticacao(opInclui)
	if err != nil {
		t.Fatalf("hashAutenticacao: %v", err)
	}
	if got != quer {
		t.Errorf("hash = %q, quer %q", got, quer)
	}

	// Na baixa, vencimento e valor entram zerados.
	baseBaixa := "0123456" + "14000000000000061" + "00000000" + "000000000000000" + "07679404000100"
	somaBaixa := sha256.Sum256([]byte(baseBaixa))
	gotBaixa, err := s.hashAutenticacao(opBaixa)
	if err != nil {
		t.Fatalf("hashAutenticacao baixa: %v", err)
	}
	if gotBaixa != base64.StdEncoding.EncodeToString(somaBaixa[:]) {
		t.Errorf("hash de baixa = %q", gotBaixa)
	}
}

func TestSendRegistraTitulo(t *testing.T) {
	var corpo []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corpo, _ = io.ReadAll(r.Body)
		if got := r.Header.Get("SOAPAction"); got != opInclui {
			t.Errorf("SOAPAction = %q", got)
		}
		io.WriteString(w, respostaSucesso("INCLUI_BOLETO"))
	}))
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)
	s.SetGerarPix(true)
	s.SetJuros(domain.NovoJuros(domain.JurosMensal, 1, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	s.SetMulta(domain.NovaMulta(2, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	s.AddDesconto(domain.NovoDesconto(domain.DescontoValor, 10, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))

	if err := s.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// O decoder ignora prefixo de namespace; basta a forma local.
	var envelope struct {
		Body struct {
			Servico struct {
				Header cabecalho    `xml:"HEADER"`
				Dados  dadosEntrada `xml:"DADOS"`
			} `xml:"SERVICO_ENTRADA"`
		} `xml:"Body"`
	}
	if err := xml.Unmarshal(corpo, &envelope); err != nil {
		t.Fatalf("envelope inválido: %v", err)
	}
	cab := envelope.Body.Servico.Header
	if cab.Operacao != opInclui || cab.Versao != versaoSIBAR || cab.UsuarioServico != usuarioServico {
		t.Errorf("cabeçalho = %+v", cab)
	}
	if cab.DataHora != "20260801100000" {
		t.Errorf("DATA_HORA = %q", cab.DataHora)
	}

	titulo := envelope.Body.Servico.Dados.Inclui.Titulo
	if titulo.NossoNumero != "14000000000000061" {
		t.Errorf("NOSSO_NUMERO = %q", titulo.NossoNumero)
	}
	if titulo.Tipo != "HIBRIDO" {
		t.Errorf("TIPO = %q, quer HIBRIDO", titulo.Tipo)
	}
	if titulo.TipoEspecie != 99 || titulo.FlagAceite != "N" || titulo.CodigoMoeda != "09" {
		t.Errorf("campos fixos = %+v", titulo)
	}
	if titulo.JurosMora.Tipo != "TAXA_MENSAL" || titulo.JurosMora.Percentual != "1.00" {
		t.Errorf("JUROS_MORA = %+v", titulo.JurosMora)
	}
	if titulo.Multa == nil || titulo.Multa.Percentual != "2.00" {
		t.Errorf("MULTA = %+v", titulo.Multa)
	}
	if len(titulo.Descontos) != 1 || titulo.Descontos[0].Valor != "10.00" {
		t.Errorf("DESCONTOS = %+v", titulo.Descontos)
	}
	if titulo.PosVencimento.Acao != "DEVOLVER" || titulo.PosVencimento.NumeroDias != 29 {
		t.Errorf("POS_VENCIMENTO = %+v", titulo.PosVencimento)
	}

	if s.LinhaDigitavel() != "linha-61" || s.CodigoBarras() != "barras-61" || s.PixQrCode() != "qr-61" {
		t.Errorf("saída = %q/%q/%q", s.LinhaDigitavel(), s.CodigoBarras(), s.PixQrCode())
	}
}

func TestSendValidaEnderecoDoPagador(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("não deveria chamar o banco")
	}))
	defer srv.Close()

	casos := []struct {
		pagador *domain.Pagador
		codigo  string
	}{
		{domain.NovoPagador("Fulano", "93095135270", "", "1", "", "Centro", "Porto Velho", "RO", "76801000"), "X997"},
		{domain.NovoPagador("Fulano", "93095135270", "Rua A", "1", "", "", "Porto Velho", "RO", "76801000"), "X999"},
		{domain.NovoPagador("Fulano", "93095135270", "Rua A", "1", "", "Centro", "", "RO", "76801000"), "X998"},
		{domain.NovoPagador("Fulano", "93095135270", "Rua A", "1", "", "Centro", "Porto Velho", "", "76801000"), "X996"},
		{domain.NovoPagador("Fulano", "93095135270", "Rua A", "1", "", "Centro", "Porto Velho", "RO", ""), "X995"},
	}
	for _, c := range casos {
		s := novoServicoTeste(srv)
		preencherTitulo(s)
		s.SetPagador(c.pagador)

		err := s.Send(context.Background())
		if domain.CodigoDoErro(err) != c.codigo {
			t.Errorf("err = %v, quer código %s", err, c.codigo)
		}
	}
}

func TestAlterarTitulo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corpo, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(corpo), "<ALTERA_BOLETO>") {
			t.Error("envelope sem ALTERA_BOLETO")
		}
		io.WriteString(w, respostaSucesso("ALTERA_BOLETO"))
	}))
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)

	if err := s.Alterar(context.Background()); err != nil {
		t.Fatalf("Alterar: %v", err)
	}
	if s.LinhaDigitavel() != "linha-61" {
		t.Errorf("linha digitável = %q", s.LinhaDigitavel())
	}
}

func TestBaixarTitulo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corpo, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(corpo), "<BAIXA_BOLETO>") {
			t.Error("envelope sem BAIXA_BOLETO")
		}
		io.WriteString(w, respostaSucesso("INCLUI_BOLETO"))
	}))
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)

	if err := s.Baixar(context.Background()); err != nil {
		t.Fatalf("Baixar: %v", err)
	}
}

func TestSendRejeicaoNegocial(t *testing.T) {
	resposta := `<?xml version="1.0" encoding="UTF-8"?>
<Envelope><Body><SERVICO_SAIDA>
  <COD_RETORNO>1</COD_RETORNO>
  <DADOS>
    <CONTROLE_NEGOCIAL>
      <COD_RETORNO>1</COD_RETORNO>
      <MENSAGENS><RETORNO>(53) TITULO JA EXISTE PARA O BENEFICIARIO</RETORNO></MENSAGENS>
    </CONTROLE_NEGOCIAL>
  </DADOS>
</SERVICO_SAIDA></Body></Envelope>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, resposta)
	}))
	defer srv.Close()

	s := novoServicoTeste(srv)
	preencherTitulo(s)

	err := s.Send(context.Background())
	if domain.CodigoDoErro(err) != "53" {
		t.Fatalf("err = %v, quer código 53", err)
	}
}

func TestExtrairCodigo(t *testing.T) {
	if got := extrairCodigo("(53) TITULO JA EXISTE"); got != "53" {
		t.Errorf("extrairCodigo = %q, quer 53", got)
	}
	if got := extrairCodigo("( 99 ) ESPACOS"); got != "99" {
		t.Errorf("extrairCodigo = %q, quer 99", got)
	}
	mensagem := "ERRO SEM CODIGO"
	if got := extrairCodigo(mensagem); got != errcode.Checksum(mensagem) {
		t.Errorf("extrairCodigo = %q, quer checksum", got)
	}
}
