// Package santander registra boletos na API de cobrança do Santander:
// OAuth client-credentials sobre mTLS, operações por workspace e
// detecção local do tipo da chave PIX antes do envio.
package santander

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/errcode"
	"github.com/pagfacil/boleto/internal/helper"
	"github.com/pagfacil/boleto/internal/ports"
	"github.com/pagfacil/boleto/internal/tokencache"
)

const (
	endpointProducao = "https://trust-open.api.santander.com.br"
	endpointSandbox  = "https://trust-open-h.api.santander.com.br"

	caminhoToken = "/auth/oauth/v2/token"
)

// Service registra, baixa e consulta boletos no Santander.
type Service struct {
	domain.Boleto

	convenio     string
	workspaceID  string
	clientID     string
	clientSecret string
	certificado  *domain.Certificado
	chavePix     string

	tokens ports.TokenStore
	tabela *errcode.Tabela

	httpClient *http.Client
	endpoint   string
	agora      func() time.Time
}

// NovoService cria o serviço com o certificado de cliente anexado ao
// transporte; toda chamada ao banco sai com mTLS.
func NovoService(convenio, workspaceID, clientID, clientSecret string, certificado *domain.Certificado, tokens ports.TokenStore) *Service {
	transporte := &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates: []tls.Certificate{certificado.TLSCertificate()},
		},
	}
	return &Service{
		convenio:     convenio,
		workspaceID:  workspaceID,
		clientID:     clientID,
		clientSecret: clientSecret,
		certificado:  certificado,
		tokens:       tokens,
		tabela:       errcode.TabelaPadrao,
		httpClient:   &http.Client{Timeout: 30 * time.Second, Transport: transporte},
		agora:        time.Now,
	}
}

// SetChavePix define a chave PIX do beneficiário para títulos híbridos.
func (s *Service) SetChavePix(chave string) { s.chavePix = chave }

func (s *Service) baseURL() string {
	if s.endpoint != "" {
		return s.endpoint
	}
	if s.Sandbox() {
		return endpointSandbox
	}
	return endpointProducao
}

func (s *Service) caminhoBankSlips() string {
	return "/collection_bill_management/v2/workspaces/" + s.workspaceID + "/bank_slips"
}

var reCelular = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)

// detectarTipoChavePix classifica a chave do dicionário PIX. CPF e CNPJ
// só valem quando a chave é o próprio documento do beneficiário; chave
// aleatória (EVP) tem 36 caracteres.
func detectarTipoChavePix(chave, documentoBeneficiario string) (string, error) {
	switch {
	case len(chave) == 11 && chave == documentoBeneficiario:
		return "CPF", nil
	case len(chave) == 14 && chave == documentoBeneficiario:
		return "CNPJ", nil
	}
	if _, err := mail.ParseAddress(chave); err == nil && strings.Contains(chave, "@") {
		return "EMAIL", nil
	}
	if reCelular.MatchString(chave) {
		return "CELULAR", nil
	}
	if len(chave) == 36 {
		return "EVP", nil
	}
	return "", &domain.ErroValidacao{Campo: "Chave PIX", Mensagem: "Chave PIX inválida."}
}

// Send registra o título no workspace e preenche linha digitável,
// código de barras e PIX.
func (s *Service) Send(ctx context.Context) error {
	payload, err := s.montarRegistro()
	if err != nil {
		return err
	}
	corpo, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar registro: %w", err)
	}

	dados, status, err := s.chamar(ctx, http.MethodPost, s.caminhoBankSlips(), corpo)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return s.normalizarErro(status, dados)
	}

	var resposta registroResponse
	if err := json.Unmarshal(dados, &resposta); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}
	s.SetLinhaDigitavel(resposta.DigitableLine)
	s.SetCodigoBarras(resposta.BarCode)
	if s.GerarPix() {
		s.SetPixQrCode(resposta.QrCodePix)
	}
	return nil
}

// Baixar cancela o título via PATCH com a operação BAIXAR.
func (s *Service) Baixar(ctx context.Context) error {
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}
	corpo, err := json.Marshal(baixaRequest{
		CovenantCode: s.convenio,
		BankNumber:   nossoNumero,
		Operation:    "BAIXAR",
	})
	if err != nil {
		return fmt.Errorf("erro ao serializar baixa: %w", err)
	}

	dados, status, err := s.chamar(ctx, http.MethodPatch, s.caminhoBankSlips(), corpo)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return s.normalizarErro(status, dados)
	}
	return nil
}

// Consulta busca o título registrado e repopula linha digitável,
// código de barras, PIX e o retrato do pagador mantido pelo banco.
func (s *Service) Consulta(ctx context.Context) error {
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}
	if s.convenio == "" {
		return domain.NovoErroValidacao("Convênio")
	}

	caminho := "/collection_bill_management/v2/bills/" + s.convenio + "." + nossoNumero + "?tipoConsulta=bankslip"
	dados, status, err := s.chamar(ctx, http.MethodGet, caminho, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return s.normalizarErro(status, dados)
	}

	var resposta consultaResponse
	if err := json.Unmarshal(dados, &resposta); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}
	s.SetCodigoBarras(resposta.BankSlipData.BarCode)
	s.SetLinhaDigitavel(resposta.BankSlipData.DigitableLine)
	s.SetPixQrCode("")
	if resposta.QrCodeData != nil {
		s.SetPixQrCode(resposta.QrCodeData.QrCode)
	}

	p := resposta.PayerData
	s.SetPagador(domain.NovoPagador(p.PayerName, p.PayerDocumentNumber, p.PayerAddress, "", "",
		p.PayerNeighborhood, p.PayerCounty, p.PayerStateAbbreviation, p.PayerZipCode))
	return nil
}

func (s *Service) montarRegistro() (*registroRequest, error) {
	if s.convenio == "" {
		return nil, domain.NovoErroValidacao("Convênio")
	}
	if s.workspaceID == "" {
		return nil, domain.NovoErroValidacao("Workspace")
	}
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return nil, err
	}
	emissao, err := s.Emissao()
	if err != nil {
		return nil, err
	}
	vencimento, err := s.Vencimento()
	if err != nil {
		return nil, err
	}
	valor, err := s.Valor()
	if err != nil {
		return nil, err
	}
	pagador, err := s.Pagador()
	if err != nil {
		return nil, err
	}
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return nil, err
	}

	// Pagador igual ao beneficiário caracteriza boleto de depósito de
	// aporte (BDA), outro produto com outras normativas; rejeitado aqui.
	if beneficiario.Documento() == pagador.Documento() {
		return nil, domain.NovoErroRegistro("490",
			"Cnpj raiz do pagador nao pode ser igual ao do beneficiario final - usar bda", http.StatusBadRequest)
	}

	endereco := pagador.Logradouro()
	if pagador.Numero() != "" {
		endereco += ", " + pagador.Numero()
	}

	r := &registroRequest{
		Environment:  "PRODUCAO",
		NsuCode:      nossoNumero,
		NsuDate:      s.agora().Format("2006-01-02"),
		CovenantCode: s.convenio,
		ClientNumber: nossoNumero,
		DueDate:      vencimento.Format("2006-01-02"),
		IssueDate:    emissao.Format("2006-01-02"),
		NominalValue: helper.FormatValor(valor),
		BankNumber:   nossoNumero,

		PaymentType:          "REGISTRO",
		WriteOffQuantityDays: s.PrazoDevolucao(),

		Payer: pagadorJSON{
			Name:           helper.Truncar(helper.AlfaNumerico(pagador.Nome()), 40),
			DocumentType:   pagador.TipoDocumento(),
			DocumentNumber: pagador.Documento(),
			Address:        helper.Truncar(helper.AlfaNumerico(endereco), 40),
			Neighborhood:   helper.AlfaNumerico(pagador.Bairro()),
			City:           helper.Truncar(helper.AlfaNumerico(pagador.Cidade()), 20),
			State:          helper.AlfaNumerico(pagador.UF()),
			ZipCode:        helper.Mask(pagador.Cep(), "#####-###"),
		},
		Beneficiary: beneficiarioJSON{
			Name:           helper.Truncar(helper.AlfaNumerico(beneficiario.Nome()), 40),
			DocumentType:   beneficiario.TipoDocumento(),
			DocumentNumber: beneficiario.Documento(),
		},

		DocumentKind: "DUPLICATA_MERCANTIL",
	}

	if s.GerarPix() {
		if s.chavePix == "" {
			return nil, domain.NovoErroValidacao("Chave PIX")
		}
		tipo, err := detectarTipoChavePix(s.chavePix, beneficiario.Documento())
		if err != nil {
			return nil, err
		}
		r.Key = &chavePix{Type: tipo, DictKey: s.chavePix}
	}

	descontos, err := s.Descontos()
	if err != nil {
		return nil, err
	}
	if len(descontos) > 0 {
		d := &desconto{Type: "VALOR_DATA_FIXA"}
		for i, parcela := range descontos {
			// A API só aceita desconto de valor fixo com data-limite.
			if parcela.Tipo() != domain.DescontoValor {
				return nil, &domain.ErroValidacao{Campo: "Desconto", Mensagem: "Tipo de desconto inválido."}
			}
			p := &parcelaDesconto{
				Value:     helper.FormatValor(parcela.Valor()),
				LimitDate: parcela.Data().Format("2006-01-02"),
			}
			switch i {
			case 0:
				d.DiscountOne = p
			case 1:
				d.DiscountTwo = p
			case 2:
				d.DiscountThree = p
			}
		}
		r.Discount = d
	}

	if m := s.Multa(); m != nil {
		dias := m.DiasCarencia(vencimento, 0)
		r.FinePercentage = helper.FormatPercentual(m.Percentual(), 2)
		r.FineQuantityDays = &dias
	}

	if j := s.Juros(); j != nil {
		switch j.Tipo() {
		case domain.JurosIsento:
		case domain.JurosMensal:
			r.InterestPercentage = helper.FormatPercentual(j.Valor(), 2)
		default:
			// O contrato vigente só aceita percentual mensal.
			return nil, &domain.ErroValidacao{Campo: "Juros", Mensagem: "Código do tipo de juros inválido."}
		}
	}

	return r, nil
}

// chamar executa uma chamada autenticada e devolve corpo e status; a
// tradução de erro fica com o chamador, que conhece o status esperado.
func (s *Service) chamar(ctx context.Context, metodo, caminho string, corpo []byte) ([]byte, int, error) {
	token, err := s.obterToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	var leitor io.Reader
	if corpo != nil {
		leitor = bytes.NewReader(corpo)
	}
	req, err := http.NewRequestWithContext(ctx, metodo, s.baseURL()+caminho, leitor)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao montar requisição: %w", err)
	}
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Application-Key", s.clientID)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	dados, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}
	return dados, res.StatusCode, nil
}

func (s *Service) obterToken(ctx context.Context) (string, error) {
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return "", err
	}
	chave := tokencache.Chave("santander", s.convenio, beneficiario.Documento())
	if token, err := s.tokens.Get(ctx, chave); err == nil && token != "" {
		return token, nil
	}

	form := url.Values{}
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL()+caminhoToken, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na chamada de token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrTokenInvalido, res.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("erro ao decodificar token: %w", err)
	}
	if token.AccessToken == "" {
		return "", domain.ErrTokenInvalido
	}

	_ = s.tokens.Set(ctx, chave, token.AccessToken, time.Duration(token.ExpiresIn)*time.Second)
	return token.AccessToken, nil
}

// normalizarErro traduz os envelopes de erro da API. Mensagens em texto
// livre passam pela tabela de ocorrências antes do checksum.
func (s *Service) normalizarErro(status int, corpo []byte) error {
	var rejeicao erroResponse
	if err := json.Unmarshal(corpo, &rejeicao); err == nil {
		if len(rejeicao.Errors) > 0 {
			e := rejeicao.Errors[0]
			return domain.NovoErroRegistro(e.Code, e.Message, status)
		}
		if rejeicao.ErrorMessage != "" {
			codigo := s.tabela.ResolverOuChecksum(rejeicao.ErrorMessage)
			return domain.NovoErroRegistro(codigo, rejeicao.ErrorMessage, status)
		}
		if rejeicao.Message != "" {
			return domain.NovoErroRegistro(rejeicao.Code, rejeicao.Message, status)
		}
	}
	return domain.NovoErroRegistro("", strings.TrimSpace(string(corpo)), status)
}
