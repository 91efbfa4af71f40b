// Package brasil registra boletos na API de cobrança do Banco do
// Brasil: OAuth client-credentials e REST. O modo do cliente (API ou
// WEBSERVICE legado) muda apenas o escopo do token e o alcance das
// operações; a baixa só existe no modo API.
package brasil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/helper"
	"github.com/pagfacil/boleto/internal/ports"
	"github.com/pagfacil/boleto/internal/tokencache"
)

// Modos do cliente junto ao banco. O contrato WEBSERVICE legado segue
// atendido pela mesma API REST, porém com escopo restrito ao registro.
const (
	ModoAPI        = "API"
	ModoWebservice = "WEBSERVICE"
)

const (
	endpointProducao = "https://api.bb.com.br"
	endpointSandbox  = "https://api.hm.bb.com.br"

	tokenProducao = "https://oauth.bb.com.br/oauth/token"
	tokenSandbox  = "https://oauth.hm.bb.com.br/oauth/token"
)

// Pagador e beneficiário fixos do ambiente de homologação; o banco
// rejeita qualquer outro documento no sandbox.
const (
	sandboxPagadorDocumento      = 74910037000193
	sandboxPagadorNome           = "TECIDOS FARIA DUARTE"
	sandboxBeneficiarioDocumento = 66779051870
	sandboxBeneficiarioNome      = "Dirceu Borboleta"
)

// Service registra, baixa (modo API) e monta títulos no Banco do
// Brasil.
type Service struct {
	domain.Boleto

	convenio         string
	carteira         string
	variacaoCarteira string
	clientID         string
	clientSecret     string
	appKey           string
	modo             string

	tokens ports.TokenStore

	httpClient    *http.Client
	endpoint      string
	endpointToken string
}

// NovoService cria o serviço no modo WEBSERVICE; use SetModo(ModoAPI)
// para habilitar baixa.
func NovoService(convenio, carteira, variacaoCarteira, clientID, clientSecret, appKey string, tokens ports.TokenStore) *Service {
	return &Service{
		convenio:         convenio,
		carteira:         carteira,
		variacaoCarteira: variacaoCarteira,
		clientID:         clientID,
		clientSecret:     clientSecret,
		appKey:           appKey,
		modo:             ModoWebservice,
		tokens:           tokens,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
	}
}

// SetModo define o modo do cliente (ModoAPI ou ModoWebservice).
func (s *Service) SetModo(modo string) { s.modo = modo }

func (s *Service) baseURL() string {
	if s.endpoint != "" {
		return s.endpoint
	}
	if s.Sandbox() {
		return endpointSandbox
	}
	return endpointProducao
}

func (s *Service) tokenURL() string {
	if s.endpointToken != "" {
		return s.endpointToken
	}
	if s.Sandbox() {
		return tokenSandbox
	}
	return tokenProducao
}

func (s *Service) escopo() string {
	if s.modo == ModoAPI {
		return "cobrancas.boletos-requisicao cobrancas.boletos-info"
	}
	return "cobranca.registro-boletos"
}

// numeroTituloCliente é o identificador completo do título: prefixo
// "000", convênio em 7 dígitos e nosso número em 10, zeros à esquerda.
func (s *Service) numeroTituloCliente(nossoNumero string) string {
	return "000" + helper.PadLeft(s.convenio, 7) + helper.PadLeft(nossoNumero, 10)
}

// Send registra o título e preenche linha digitável, código de barras e
// PIX.
func (s *Service) Send(ctx context.Context) error {
	payload, err := s.montarRegistro()
	if err != nil {
		return err
	}
	corpo, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar registro: %w", err)
	}

	token, err := s.obterToken(ctx)
	if err != nil {
		return err
	}

	destino := s.baseURL() + "/cobrancas/v2/boletos?gw-dev-app-key=" + s.appKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destino, bytes.NewReader(corpo))
	if err != nil {
		return fmt.Errorf("erro ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	dados, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return normalizarErro(res.StatusCode, dados)
	}

	var resposta registroResponse
	if err := json.Unmarshal(dados, &resposta); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}
	s.SetLinhaDigitavel(resposta.LinhaDigitavel)
	s.SetCodigoBarras(resposta.CodigoBarraNumerico)
	if s.GerarPix() {
		s.SetPixQrCode(resposta.QrCode.Emv)
	}
	return nil
}

// Baixar cancela um título registrado. Disponível apenas no modo API.
func (s *Service) Baixar(ctx context.Context) error {
	if s.modo != ModoAPI {
		return &domain.ErroValidacao{Campo: "Modo", Mensagem: "O método de cancelamento está disponível apenas para o API do Banco do Brasil."}
	}
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}

	token, err := s.obterToken(ctx)
	if err != nil {
		return err
	}

	corpo, err := json.Marshal(baixaRequest{NumeroConvenio: s.convenio})
	if err != nil {
		return fmt.Errorf("erro ao serializar baixa: %w", err)
	}

	destino := fmt.Sprintf("%s/cobrancas/v2/boletos/%s/baixar?gw-dev-app-key=%s",
		s.baseURL(), s.numeroTituloCliente(nossoNumero), s.appKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destino, bytes.NewReader(corpo))
	if err != nil {
		return fmt.Errorf("erro ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	dados, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return normalizarErro(res.StatusCode, dados)
	}
	return nil
}

func (s *Service) montarRegistro() (*registroRequest, error) {
	if s.convenio == "" {
		return nil, domain.NovoErroValidacao("Convênio")
	}
	if s.carteira == "" {
		return nil, domain.NovoErroValidacao("Carteira")
	}
	if s.variacaoCarteira == "" {
		return nil, domain.NovoErroValidacao("Variação Carteira")
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

	aceiteVencido := "N"
	if s.PrazoDevolucao() > 0 {
		aceiteVencido = "S"
	}
	indicadorPix := "N"
	if s.GerarPix() {
		indicadorPix = "S"
	}

	r := &registroRequest{
		NumeroConvenio:         s.convenio,
		NumeroCarteira:         s.carteira,
		NumeroVariacaoCarteira: s.variacaoCarteira,
		CodigoModalidade:       0,

		DataEmissao:    emissao.Format("02.01.2006"),
		DataVencimento: vencimento.Format("02.01.2006"),
		ValorOriginal:  valor,

		IndicadorAceiteTituloVencido: aceiteVencido,
		NumeroDiasLimiteRecebimento:  s.PrazoDevolucao(),
		CodigoAceite:                 "N",

		IndicadorPermissaoRecebimentoParcial: "N",

		NumeroTituloBeneficiario: nossoNumero,
		NumeroTituloCliente:      s.numeroTituloCliente(nossoNumero),

		JurosMora: jurosMora{Tipo: 0},
		Multa:     multa{Tipo: 0},

		Pagador:           montarPessoa(pagador, true),
		BeneficiarioFinal: montarPessoa(&beneficiario.Pagador, false),

		IndicadorPix: indicadorPix,
	}

	descontos, err := s.Descontos()
	if err != nil {
		return nil, err
	}
	for i, d := range descontos {
		pos := desconto{DataExpiracao: d.Data().Format("02.01.2006")}
		switch d.Tipo() {
		case domain.DescontoValor:
			pos.Tipo = 1
			pos.Valor = d.Valor()
		case domain.DescontoPercentual:
			pos.Tipo = 2
			pos.Porcentagem = d.Valor()
		default:
			return nil, &domain.ErroValidacao{Campo: "Desconto", Mensagem: "Código do tipo de desconto inválido."}
		}
		switch i {
		case 0:
			r.Desconto = pos
		case 1:
			r.SegundoDesconto = pos
		case 2:
			r.TerceiroDesconto = pos
		}
	}

	if j := s.Juros(); j != nil {
		switch j.Tipo() {
		case domain.JurosIsento:
			r.JurosMora = jurosMora{Tipo: 0}
		case domain.JurosDiario:
			r.JurosMora = jurosMora{Tipo: 1, Data: j.Data().Format("02.01.2006"), Valor: j.Valor()}
		case domain.JurosMensal:
			r.JurosMora = jurosMora{Tipo: 2, Data: j.Data().Format("02.01.2006"), Porcentagem: j.Valor()}
		default:
			return nil, &domain.ErroValidacao{Campo: "Juros", Mensagem: "Código do tipo de juros inválido."}
		}
	}

	if m := s.Multa(); m != nil {
		r.Multa = multa{Tipo: 2, Data: m.Data().Format("02.01.2006"), Porcentagem: m.Percentual()}
	}

	if s.Sandbox() {
		r.Pagador = pessoa{TipoInscricao: 2, NumeroInscricao: sandboxPagadorDocumento, Nome: sandboxPagadorNome}
		r.BeneficiarioFinal = pessoa{TipoInscricao: 1, NumeroInscricao: sandboxBeneficiarioDocumento, Nome: sandboxBeneficiarioNome}
	}

	return r, nil
}

func montarPessoa(p *domain.Pagador, endereco bool) pessoa {
	tipoInscricao := 2
	if p.TipoDocumento() == "CPF" {
		tipoInscricao = 1
	}
	numeroInscricao, _ := strconv.ParseInt(p.Documento(), 10, 64)
	out := pessoa{
		TipoInscricao:   tipoInscricao,
		NumeroInscricao: numeroInscricao,
		Nome:            p.Nome(),
	}
	if endereco {
		out.Endereco = strings.TrimSpace(p.Logradouro() + " " + p.Numero())
		out.Cep = p.Cep()
		out.Cidade = p.Cidade()
		out.Bairro = p.Bairro()
		out.UF = p.UF()
		out.Telefone = p.Telefone()
	}
	return out
}

func (s *Service) obterToken(ctx context.Context) (string, error) {
	chave := tokencache.Chave("bb", s.convenio, "")
	if token, err := s.tokens.Get(ctx, chave); err == nil && token != "" {
		return token, nil
	}

	corpo := "grant_type=client_credentials&scope=" + s.escopo()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL(), strings.NewReader(corpo))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição de token: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na chamada de token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
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

// normalizarErro traduz os dialetos de envelope de erro da API para o
// erro tipado, preservando o código estruturado do banco.
func normalizarErro(status int, corpo []byte) error {
	var rejeicao erroResponse
	if err := json.Unmarshal(corpo, &rejeicao); err == nil {
		if len(rejeicao.Erros) > 0 {
			e := rejeicao.Erros[0]
			return domain.NovoErroRegistro(e.Codigo, e.Mensagem, status)
		}
		if len(rejeicao.Errors) > 0 {
			e := rejeicao.Errors[0]
			return domain.NovoErroRegistro(e.Code, e.Message, status)
		}
		if rejeicao.Error != "" {
			return domain.NovoErroRegistro(strconv.Itoa(status), rejeicao.Message, status)
		}
	}
	return domain.NovoErroRegistro("", strings.TrimSpace(string(corpo)), status)
}
