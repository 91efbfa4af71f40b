// Package primacredi registra boletos na PrimaCredi (CrediSIS): SOAP
// com a credencial Chave{token,convênio} no cabeçalho de toda operação.
// O nosso número segue a forma fechada da cooperativa e é recalculado
// localmente antes do envio.
package primacredi

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/errcode"
	"github.com/pagfacil/boleto/internal/helper"
)

const (
	endpointCredisis = "https://credisiscobranca.com.br/v2/ws"

	nsSoap     = "http://schemas.xmlsoap.org/soap/envelope/"
	nsCredisis = "urn:CredisisBoletoInterface"

	layoutPadrao  = "default"
	codigoEspecie = "03"
	prefixoBanco  = "097"

	operacaoCancelamento = "CANCELAMENTO"

	contatoTelefone = 1
	contatoEmail    = 4
)

// Service registra, consulta e baixa boletos na PrimaCredi. A baixa é
// em dois passos: buscarBoleto resolve o idWeb do título e baixarBoleto
// efetiva o cancelamento.
type Service struct {
	domain.Boleto

	agencia  string
	convenio string
	token    string

	documento string

	httpClient *http.Client
	endpoint   string
	agora      func() time.Time
}

// NovoService cria o serviço para a agência e o convênio da conta
// beneficiária. O token é a chave estática emitida pela cooperativa.
func NovoService(agencia, convenio, token string) *Service {
	return &Service{
		agencia:    agencia,
		convenio:   convenio,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		agora:      time.Now,
	}
}

// SetDocumento define o número do documento impresso no boleto; quando
// ausente, o nosso número é usado no lugar.
func (s *Service) SetDocumento(documento string) { s.documento = documento }

// modulo11 calcula o dígito verificador módulo 11 dos dígitos
// informados: pesos 2 a 9 da direita para a esquerda, dígito 11 menos o
// resto, com 10 e 11 reduzidos a 0.
func modulo11(digitos string) int {
	digitos = helper.Numero(digitos)
	soma := 0
	peso := 2
	for i := len(digitos) - 1; i >= 0; i-- {
		soma += int(digitos[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	digito := 11 - soma%11
	if digito > 9 {
		return 0
	}
	return digito
}

// nossoNumeroCalculado monta a forma fechada do nosso número: o código
// do banco, o dígito do documento do beneficiário, agência, convênio e
// o sequencial em seis dígitos.
func (s *Service) nossoNumeroCalculado(sequencial string) (string, error) {
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return "", err
	}
	if len(sequencial) > 6 {
		sequencial = sequencial[len(sequencial)-6:]
	}
	return prefixoBanco +
		fmt.Sprintf("%d", modulo11(beneficiario.Documento())) +
		helper.PadLeft(s.agencia, 4) +
		helper.PadLeft(s.convenio, 6) +
		helper.PadLeft(sequencial, 6), nil
}

// nossoNumeroCompleto devolve o nosso número na forma fechada. Um
// sequencial de até seis dígitos é expandido; um número já completo
// precisa bater com o recálculo local.
func (s *Service) nossoNumeroCompleto() (string, error) {
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return "", err
	}
	calculado, err := s.nossoNumeroCalculado(nossoNumero)
	if err != nil {
		return "", err
	}
	if len(nossoNumero) <= 6 {
		return calculado, nil
	}
	if nossoNumero != calculado {
		return "", &domain.ErroValidacao{Campo: "Nosso Número", Mensagem: "Nosso Número inválido."}
	}
	return nossoNumero, nil
}

// Send registra o título (gerarBoletos) e preenche linha digitável e
// código de barras.
func (s *Service) Send(ctx context.Context) error {
	boleto, err := s.montarBoleto()
	if err != nil {
		return err
	}

	resultado, err := s.chamar(ctx, soapBody{
		Gerar: &gerarBoletos{
			Layout:  layoutPadrao,
			Boletos: boletos{Itens: []boletoXML{*boleto}},
		},
	})
	if err != nil {
		return err
	}

	if resultado.Titulos == nil || len(resultado.Titulos.Itens) == 0 {
		return domain.NovoErroRegistro("", "resposta sem título registrado", http.StatusOK)
	}
	titulo := resultado.Titulos.Itens[0]
	s.SetCodigoBarras(titulo.CodigoBarras)
	s.SetLinhaDigitavel(titulo.LinhaDigitavel)
	return nil
}

// Baixar cancela um título registrado: buscarBoleto resolve idWeb e
// valor correntes e baixarBoleto aplica a operação de cancelamento.
func (s *Service) Baixar(ctx context.Context) error {
	nossoNumero, err := s.nossoNumeroCompleto()
	if err != nil {
		return err
	}

	resultado, err := s.chamar(ctx, soapBody{
		Buscar: &buscarBoleto{Boleto: buscaXML{NossoNumero: nossoNumero}},
	})
	if err != nil {
		return err
	}
	if resultado.Titulos == nil || len(resultado.Titulos.Itens) == 0 {
		return domain.NovoErroRegistro("", "título não encontrado para baixa", http.StatusNotFound)
	}
	titulo := resultado.Titulos.Itens[0]

	_, err = s.chamar(ctx, soapBody{
		Baixar: &baixarBoleto{Boleto: baixaXML{
			IDWeb:    titulo.IDWeb,
			Valor:    titulo.Valor,
			Operacao: operacaoCancelamento,
		}},
	})
	return err
}

func (s *Service) montarBoleto() (*boletoXML, error) {
	nossoNumero, err := s.nossoNumeroCompleto()
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
	pagador, err := s.montarPagador()
	if err != nil {
		return nil, err
	}

	documento := s.documento
	if documento == "" {
		documento = nossoNumero
	}

	b := &boletoXML{
		Pagador:             *pagador,
		Documento:           documento,
		NossoNumero:         nossoNumero,
		DataEmissao:         emissao.Format("2006-01-02"),
		DataVencimento:      vencimento.Format("2006-01-02"),
		DataLimitePagamento: vencimento.AddDate(0, 0, s.PrazoDevolucao()).Format("2006-01-02"),
		Valor:               helper.FormatValor(valor),
		QuantidadeParcelas:  1,
		IntervaloParcela:    0,
		CodigoEspecie:       codigoEspecie,
		Protesto:            protestoXML{Dias: 0, Tipo: 3},
	}

	descontos, err := s.Descontos()
	if err != nil {
		return nil, err
	}
	posicoes := []**descontoXML{&b.Desconto1, &b.Desconto2, &b.Desconto3}
	for i, d := range descontos {
		desc := &descontoXML{Data: d.Data().Format("2006-01-02")}
		switch d.Tipo() {
		case domain.DescontoValor:
			desc.Tipo = 1
			desc.Valor = helper.FormatValor(d.Valor())
		case domain.DescontoPercentual:
			desc.Tipo = 2
			desc.Valor = helper.FormatPercentual(d.Valor(), 2)
		default:
			return nil, &domain.ErroValidacao{Campo: "Desconto", Mensagem: "Código do tipo de desconto inválido."}
		}
		*posicoes[i] = desc
	}

	if m := s.Multa(); m != nil {
		b.Multa = &multaXML{
			Tipo:     2,
			Valor:    helper.FormatPercentual(m.Percentual(), 2),
			Carencia: carenciaXML{Tipo: 2, Dias: m.DiasCarencia(vencimento, 0)},
		}
	}

	if j := s.Juros(); j != nil {
		switch j.Tipo() {
		case domain.JurosIsento:
			b.Juros = &jurosXML{Valor: "0", Tipo: 3}
		case domain.JurosDiario:
			b.Juros = &jurosXML{
				Valor:    helper.FormatValor(j.Valor()),
				Tipo:     1,
				Carencia: &carenciaXML{Tipo: 2, Dias: j.DiasCarencia(vencimento, 0)},
			}
		case domain.JurosMensal:
			b.Juros = &jurosXML{
				Valor:    helper.FormatPercentual(j.Valor(), 2),
				Tipo:     2,
				Carencia: &carenciaXML{Tipo: 2, Dias: j.DiasCarencia(vencimento, 0)},
			}
		default:
			return nil, &domain.ErroValidacao{Campo: "Juros", Mensagem: "Código do tipo de juros inválido."}
		}
	}

	return b, nil
}

func (s *Service) montarPagador() (*pagadorXML, error) {
	pagador, err := s.Pagador()
	if err != nil {
		return nil, err
	}

	p := &pagadorXML{
		Nome:    helper.Ascii(pagador.Nome()),
		CpfCnpj: pagador.Documento(),
		Endereco: enderecoXML{
			Endereco:    helper.Ascii(pagador.Logradouro()),
			Numero:      pagador.Numero(),
			Complemento: helper.Ascii(pagador.Complemento()),
			Bairro:      helper.Ascii(pagador.Bairro()),
			Cep:         pagador.Cep(),
			Cidade:      helper.Ascii(pagador.Cidade()),
			UF:          pagador.UF(),
		},
	}

	if tel := helper.SplitPhone(pagador.Telefone()); tel != nil {
		p.Contatos.Itens = append(p.Contatos.Itens, contatoXML{
			Contato:     tel.DDD + tel.Numero,
			TipoContato: contatoTelefone,
		})
	}
	if email := pagador.Email(); email != "" {
		p.Contatos.Itens = append(p.Contatos.Itens, contatoXML{
			Contato:     email,
			TipoContato: contatoEmail,
		})
	}
	return p, nil
}

// chamar monta o envelope com a credencial no cabeçalho, executa a
// chamada SOAP e devolve o result já checado contra a lista de erros.
func (s *Service) chamar(ctx context.Context, body soapBody) (*resultadoXML, error) {
	if s.token == "" {
		return nil, domain.NovoErroValidacao("Token")
	}
	if s.convenio == "" {
		return nil, domain.NovoErroValidacao("Convênio")
	}

	envelope := soapEnvelope{
		NSSoap: nsSoap,
		NSUrn:  nsCredisis,
		Header: soapHeader{Chave: chave{Token: s.token, Convenio: s.convenio}},
		Body:   body,
	}

	corpo, err := xml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar envelope: %w", err)
	}
	corpo = append([]byte(xml.Header), corpo...)

	destino := s.endpoint
	if destino == "" {
		destino = endpointCredisis
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destino, bytes.NewReader(corpo))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", nsCredisis)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	resposta, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}

	var saida envelopeResposta
	if err := xml.Unmarshal(resposta, &saida); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}

	resultado := saida.Body.Resposta.Result
	if resultado.Erros != nil && len(resultado.Erros.Itens) > 0 {
		return nil, normalizarErro(resultado.Erros.Itens[0], res.StatusCode)
	}
	return &resultado, nil
}

// normalizarErro traduz o item de erro para o formato comum: o par
// code/message quando presente, senão o texto puro com o checksum da
// mensagem como código sintético.
func normalizarErro(item erroItem, status int) error {
	if item.Code != "" || item.Message != "" {
		return domain.NovoErroRegistro(item.Code, item.Message, status)
	}
	mensagem := strings.TrimSpace(item.Texto)
	return domain.NovoErroRegistro(errcode.Checksum(mensagem), mensagem, status)
}
