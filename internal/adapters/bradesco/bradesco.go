// Package bradesco registra boletos híbridos na API de cobrança do
// Bradesco: REST com grant JWT-bearer (assinatura RS256 do próprio
// certificado) e cabeçalhos de assinatura por requisição.
package bradesco

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/errcode"
	"github.com/pagfacil/boleto/internal/helper"
	"github.com/pagfacil/boleto/internal/ports"
	"github.com/pagfacil/boleto/internal/tokencache"
)

const (
	endpointProducao = "https://openapi.bradesco.com.br"
	endpointSandbox  = "https://proxy.api.prebanco.com.br"

	caminhoRegistro      = "/v1/boleto-hibrido/registrar-boleto"
	caminhoTokenProducao = "/auth/server/v1.1/token"
	caminhoTokenSandbox  = "/auth/server/v1.2/token"
)

// Service registra boletos no Bradesco. Monte o título pelos setters do
// Boleto embutido e chame Send; o banco não expõe baixa nem consulta
// nesta API.
type Service struct {
	domain.Boleto

	agencia     string
	conta       string
	clientID    string
	certificado *domain.Certificado

	tokens ports.TokenStore
	tabela *errcode.Tabela

	httpClient *http.Client
	endpoint   string
	agora      func() time.Time
}

// NovoService cria o serviço com as credenciais do beneficiário.
func NovoService(agencia, conta, clientID string, certificado *domain.Certificado, tokens ports.TokenStore) *Service {
	return &Service{
		agencia:     agencia,
		conta:       conta,
		clientID:    clientID,
		certificado: certificado,
		tokens:      tokens,
		tabela:      errcode.TabelaPadrao,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		agora:       time.Now,
	}
}

// numeroNegociacao é o contrato do beneficiário: agência em 4 dígitos
// seguida da conta em 14, sem separador.
func (s *Service) numeroNegociacao() string {
	return helper.PadLeft(s.agencia, 4) + helper.PadLeft(s.conta, 14)
}

func (s *Service) baseURL() string {
	if s.endpoint != "" {
		return s.endpoint
	}
	if s.Sandbox() {
		return endpointSandbox
	}
	return endpointProducao
}

func (s *Service) caminhoToken() string {
	if s.Sandbox() {
		return caminhoTokenSandbox
	}
	return caminhoTokenProducao
}

// Send registra o título e preenche linha digitável, código de barras e
// PIX. O código de barras é derivado localmente da linha digitável.
func (s *Service) Send(ctx context.Context) error {
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}
	// O banco aceita "0" e registra um título órfão; rejeitar local.
	if nossoNumero == "0" {
		return domain.NovoErroRegistro("99999", "Nosso Numero Invalido", http.StatusBadRequest)
	}

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

	agora := s.agora()
	nonce := strconv.FormatInt(agora.Unix(), 10) + "000"
	timestamp := agora.Format("2006-01-02T15:04:05-07:00")

	assinatura, err := s.assinarRequisicao(corpo, token, nonce, timestamp)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL()+caminhoRegistro, bytes.NewReader(corpo))
	if err != nil {
		return fmt.Errorf("erro ao montar requisição: %w", err)
	}
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Brad-Signature", assinatura)
	req.Header.Set("X-Brad-Nonce", nonce)
	req.Header.Set("X-Brad-Timestamp", timestamp)
	req.Header.Set("X-Brad-Algorithm", "SHA256")
	req.Header.Set("cpf-cnpj", beneficiario.Documento())
	req.Header.Set("access-token", s.clientID)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	dados, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return s.normalizarErro(res.StatusCode, dados)
	}

	var resposta registroResponse
	if err := json.Unmarshal(dados, &resposta); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}
	s.SetLinhaDigitavel(resposta.LinhaDigitavel)
	s.SetCodigoBarras(helper.LinhaParaCodigoBarras(resposta.LinhaDigitavel))
	if s.GerarPix() {
		s.SetPixQrCode(resposta.PixQrCode)
	}
	return nil
}

// assinarRequisicao monta a string canônica do manual (verbo, caminho,
// corpo, token, nonce, timestamp e algoritmo separados por \n) e assina
// com a chave do certificado. Base64url sem padding.
func (s *Service) assinarRequisicao(corpo []byte, token, nonce, timestamp string) (string, error) {
	var canonica strings.Builder
	canonica.WriteString("POST\n")
	canonica.WriteString(caminhoRegistro + "\n\n")
	canonica.Write(corpo)
	canonica.WriteString("\n" + token + "\n")
	canonica.WriteString(nonce + "\n")
	canonica.WriteString(timestamp + "\n")
	canonica.WriteString("SHA256")

	assinatura, err := s.certificado.AssinarSHA256([]byte(canonica.String()))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(assinatura), nil
}

func (s *Service) montarRegistro() (*registroRequest, error) {
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

	dataLimite := vencimento.AddDate(0, 0, s.PrazoDevolucao())

	cobrancaMista := "N"
	if s.GerarPix() {
		cobrancaMista = "S"
	}
	tipoDocSacado := 2
	if pagador.TipoDocumento() == "CPF" {
		tipoDocSacado = 1
	}
	numeroSacado, _ := strconv.Atoi(helper.Numero(pagador.Numero()))

	r := &registroRequest{
		NossoNumero: nossoNumero,
		SeuNumero:   nossoNumero,

		BenefRaiz:    beneficiario.DocumentoRaiz(),
		BenefFilial:  beneficiario.DocumentoFilial(),
		BenefDigitos: beneficiario.DocumentoControle(),

		Emissao:    emissao.Format("02.01.2006"),
		Vencimento: vencimento.Format("02.01.2006"),

		Negociacao: s.numeroNegociacao(),
		Valor:      helper.FormatValorSemSeparador(valor),

		ValidadeAposVencimento: s.PrazoDevolucao(),
		DataLimitePagamento:    dataLimite.Format("02.01.2006"),
		DataPermanencia:        dataLimite.Format("02.01.2006"),

		RegistrarTitulo:  1,
		CodUsuario:       "APISERVIC",
		TipoAcesso:       2,
		ProdutoCobranca:  9,
		CodigoBanco:      237,
		TipoRegistro:     1,
		TipoVencimento:   0,
		EspecieTitulo:    99,
		AceiteSacado:     "N",
		Fase:             1,
		CobrancaMista:    cobrancaMista,
		FormaEmissao:     2,
		PagamentoParcial: "N",
		QtdePgtoParcial:  0,

		SacadoNome:        helper.Truncar(helper.Ascii(pagador.Nome()), 70),
		SacadoLogradouro:  helper.Truncar(helper.Ascii(pagador.Logradouro()), 40),
		SacadoNumero:      numeroSacado,
		SacadoComplemento: helper.Truncar(helper.Ascii(pagador.Complemento()), 15),
		SacadoCepPrefixo:  pagador.CepPrefixo(),
		SacadoCepSufixo:   pagador.CepSufixo(),
		SacadoBairro:      helper.Truncar(helper.Ascii(pagador.Bairro()), 40),
		SacadoCidade:      helper.Truncar(helper.Ascii(pagador.Cidade()), 30),
		SacadoUF:          helper.Truncar(helper.Ascii(pagador.UF()), 2),
		SacadoTipoDoc:     tipoDocSacado,
		SacadoDocumento:   pagador.Documento(),
		SacadoEmail:       helper.Truncar(helper.Ascii(pagador.Email()), 70),
	}

	if juros := s.Juros(); juros != nil {
		dias := juros.DiasCarencia(vencimento, 1)
		switch juros.Tipo() {
		case domain.JurosIsento:
		case domain.JurosDiario:
			r.ValorDiaJuros = helper.FormatValorSemSeparador(juros.Valor())
			r.DiasInicioJuro = dias
		case domain.JurosMensal:
			r.TaxaJuros = helper.FormatPercentual(juros.Valor(), 5)
			r.DiasInicioJuro = dias
		default:
			return nil, &domain.ErroValidacao{Campo: "Juros", Mensagem: "Código do tipo de juros inválido."}
		}
	}

	if multa := s.Multa(); multa != nil {
		r.PercentualMulta = padZeros(helper.FormatPercentual(multa.Percentual(), 5), 8)
		r.DiasInicioMulta = multa.DiasCarencia(vencimento, 1)
	}

	descontos, err := s.Descontos()
	if err != nil {
		return nil, err
	}
	for i, desconto := range descontos {
		data := desconto.Data().Format("02.01.2006")
		switch desconto.Tipo() {
		case domain.DescontoValor:
			valor := helper.FormatValorSemSeparador(desconto.Valor())
			switch i {
			case 0:
				r.DataDesconto1, r.ValorDesconto1 = data, valor
			case 1:
				r.DataDesconto2, r.ValorDesconto2 = data, valor
			case 2:
				r.DataDesconto3, r.ValorDesconto3 = data, valor
			}
		case domain.DescontoPercentual:
			pct := padZeros(strings.ReplaceAll(helper.FormatPercentual(desconto.Valor(), 5), ".", ""), 8)
			switch i {
			case 0:
				r.DataDesconto1, r.PercentualDesconto1 = data, pct
			case 1:
				r.DataDesconto2, r.PercentualDesconto2 = data, pct
			case 2:
				r.DataDesconto3, r.PercentualDesconto3 = data, pct
			}
		default:
			return nil, &domain.ErroValidacao{Campo: "Desconto", Mensagem: "Código do tipo de desconto inválido."}
		}
	}

	return r, nil
}

// obterToken busca o token no cache e, em falta, executa o grant
// JWT-bearer com uma assertion RS256 assinada pelo certificado.
func (s *Service) obterToken(ctx context.Context) (string, error) {
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return "", err
	}
	chave := tokencache.Chave("bradesco", s.agencia, beneficiario.Documento())
	if token, err := s.tokens.Get(ctx, chave); err == nil && token != "" {
		return token, nil
	}

	agora := s.agora().Unix()
	claims := jwt.MapClaims{
		"aud": s.baseURL() + s.caminhoToken(),
		"sub": s.clientID,
		"iat": agora,
		"exp": agora + 3600,
		"jti": strconv.FormatInt(agora, 10) + "000",
		"ver": "1.1",
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.certificado.ChavePrivada())
	if err != nil {
		return "", fmt.Errorf("erro ao assinar assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL()+s.caminhoToken(), strings.NewReader(form.Encode()))
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

	var corpo tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&corpo); err != nil {
		return "", fmt.Errorf("erro ao decodificar token: %w", err)
	}
	if corpo.AccessToken == "" {
		return "", domain.ErrTokenInvalido
	}

	ttl := time.Duration(corpo.ExpiresIn) * time.Second
	_ = s.tokens.Set(ctx, chave, corpo.AccessToken, ttl)
	return corpo.AccessToken, nil
}

// normalizarErro traduz a resposta de rejeição para o erro tipado. O
// código vem da tabela de ocorrências; sem correspondência, o checksum
// da mensagem vira código sintético.
func (s *Service) normalizarErro(status int, corpo []byte) error {
	var rejeicao erroResponse
	if err := json.Unmarshal(corpo, &rejeicao); err == nil && rejeicao.ErrorMessage != "" {
		codigo := s.tabela.ResolverOuChecksum(rejeicao.ErrorMessage)
		return domain.NovoErroRegistro(codigo, rejeicao.ErrorMessage, status)
	}
	if status == http.StatusUnauthorized {
		return domain.NovoErroRegistro("-100", "Token inválido", status)
	}
	return domain.NovoErroRegistro("", strings.TrimSpace(string(corpo)), status)
}

// padZeros completa com zeros à esquerda preservando o separador
// decimal ("2.00000" vira "02.00000").
func padZeros(s string, tamanho int) string {
	if len(s) >= tamanho {
		return s
	}
	return strings.Repeat("0", tamanho-len(s)) + s
}
