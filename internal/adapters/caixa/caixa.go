// Package caixa registra boletos no barramento SIBAR da Caixa: SOAP
// com um hash de autenticação por operação no cabeçalho, calculado
// sobre os campos de largura fixa do título.
package caixa

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/errcode"
	"github.com/pagfacil/boleto/internal/helper"
)

const (
	endpointSIBAR = "https://barramento.caixa.gov.br/sibar/ManutencaoCobrancaBancaria/Boleto/Externo"

	nsSoap  = "http://schemas.xmlsoap.org/soap/envelope/"
	nsSibar = "http://caixa.gov.br/sibar"

	versaoSIBAR    = "3.2"
	usuarioServico = "SGCBS02P"
	sistemaOrigem  = "SIGCB"

	opInclui = "INCLUI_BOLETO"
	opAltera = "ALTERA_BOLETO"
	opBaixa  = "BAIXA_BOLETO"
)

// Service registra, altera e baixa boletos na Caixa. Não há sandbox no
// barramento; o ambiente é único.
type Service struct {
	domain.Boleto

	convenio string

	httpClient *http.Client
	endpoint   string
	agora      func() time.Time
}

// NovoService cria o serviço para o código de beneficiário (convênio).
// O prazo de devolução nasce em 29 dias, o padrão da ação DEVOLVER.
func NovoService(convenio string) *Service {
	s := &Service{
		convenio:   convenio,
		httpClient: &http.Client{Timeout: 45 * time.Second},
		agora:      time.Now,
	}
	s.SetPrazoDevolucao(29)
	return s
}

// nossoNumeroCompleto é o identificador na carteira 14: prefixo "14" e
// o número em 15 dígitos.
func (s *Service) nossoNumeroCompleto(nossoNumero string) string {
	return "14" + helper.PadLeft(nossoNumero, 15)
}

// numeroDocumento são os 11 últimos dígitos do nosso número.
func numeroDocumento(nossoNumero string) string {
	if len(nossoNumero) <= 11 {
		return nossoNumero
	}
	return nossoNumero[len(nossoNumero)-11:]
}

// hashAutenticacao concatena convênio, nosso número, vencimento, valor
// e documento do beneficiário em larguras fixas e devolve o SHA-256 em
// base64. Na baixa, vencimento e valor entram zerados.
func (s *Service) hashAutenticacao(operacao string) (string, error) {
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return "", err
	}
	beneficiario, err := s.Beneficiario()
	if err != nil {
		return "", err
	}

	strVencimento := "0"
	strValor := "0"
	if operacao != opBaixa {
		vencimento, err := s.Vencimento()
		if err != nil {
			return "", err
		}
		valor, err := s.Valor()
		if err != nil {
			return "", err
		}
		strVencimento = vencimento.Format("02012006")
		strValor = helper.FormatValorSemSeparador(valor)
	}

	str := helper.PadLeft(s.convenio, 7) +
		s.nossoNumeroCompleto(nossoNumero) +
		helper.PadLeft(strVencimento, 8) +
		helper.PadLeft(strValor, 15) +
		helper.PadLeft(beneficiario.Documento(), 14)

	soma := sha256.Sum256([]byte(str))
	return base64.StdEncoding.EncodeToString(soma[:]), nil
}

// Send registra o título (INCLUI_BOLETO) e preenche linha digitável,
// código de barras e, para título híbrido, o PIX.
func (s *Service) Send(ctx context.Context) error {
	if s.convenio == "" {
		return domain.NovoErroValidacao("Convênio")
	}
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}
	emissao, err := s.Emissao()
	if err != nil {
		return err
	}
	vencimento, err := s.Vencimento()
	if err != nil {
		return err
	}
	valor, err := s.Valor()
	if err != nil {
		return err
	}

	pagador, err := s.montarPagador()
	if err != nil {
		return err
	}

	t := titulo{
		NossoNumero:     s.nossoNumeroCompleto(nossoNumero),
		NumeroDocumento: numeroDocumento(nossoNumero),
		DataVencimento:  vencimento.Format("2006-01-02"),
		Valor:           helper.FormatValor(valor),
		TipoEspecie:     99,
		FlagAceite:      "N",
		DataEmissao:     emissao.Format("2006-01-02"),
		JurosMora:       jurosXML{Tipo: "ISENTO", Valor: "0", Percentual: "0"},
		ValorAbatimento: "0",
		PosVencimento:   posVencimento{Acao: "DEVOLVER", NumeroDias: s.PrazoDevolucao()},
		CodigoMoeda:     "09",
		Pagador:         *pagador,
	}
	if s.GerarPix() {
		t.Tipo = "HIBRIDO"
	}

	if m := s.Multa(); m != nil {
		t.Multa = &multaXML{
			Data:       m.Data().Format("2006-01-02"),
			Percentual: helper.FormatPercentual(m.Percentual(), 2),
		}
	}

	descontos, err := s.Descontos()
	if err != nil {
		return err
	}
	for _, d := range descontos {
		desc := descontoXML{Data: d.Data().Format("2006-01-02")}
		switch d.Tipo() {
		case domain.DescontoValor:
			desc.Valor = helper.FormatValor(d.Valor())
		case domain.DescontoPercentual:
			desc.Percentual = helper.FormatPercentual(d.Valor(), 2)
		default:
			return &domain.ErroValidacao{Campo: "Desconto", Mensagem: "Código do tipo de desconto inválido."}
		}
		t.Descontos = append(t.Descontos, desc)
	}

	if j := s.Juros(); j != nil {
		switch j.Tipo() {
		case domain.JurosIsento:
			t.JurosMora = jurosXML{Tipo: "ISENTO", Valor: "0", Percentual: "0"}
		case domain.JurosDiario:
			t.JurosMora = jurosXML{Tipo: "VALOR_POR_DIA", Data: j.Data().Format("2006-01-02"), Valor: helper.FormatValor(j.Valor())}
		case domain.JurosMensal:
			t.JurosMora = jurosXML{Tipo: "TAXA_MENSAL", Data: j.Data().Format("2006-01-02"), Percentual: helper.FormatPercentual(j.Valor(), 2)}
		default:
			return &domain.ErroValidacao{Campo: "Juros", Mensagem: "Código do tipo de juros inválido."}
		}
	}

	saida, err := s.chamar(ctx, opInclui, dadosEntrada{
		Inclui: &incluiBoleto{CodigoBeneficiario: s.convenio, Titulo: t},
	})
	if err != nil {
		return err
	}

	if saida.Dados.Inclui != nil {
		s.SetCodigoBarras(saida.Dados.Inclui.CodigoBarras)
		s.SetLinhaDigitavel(saida.Dados.Inclui.LinhaDigitavel)
		s.SetPixQrCode(saida.Dados.Inclui.QRCode)
	}
	return nil
}

// Alterar atualiza vencimento e valor de um título registrado
// (ALTERA_BOLETO) e repopula os dados de saída.
func (s *Service) Alterar(ctx context.Context) error {
	if s.convenio == "" {
		return domain.NovoErroValidacao("Convênio")
	}
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}
	vencimento, err := s.Vencimento()
	if err != nil {
		return err
	}
	valor, err := s.Valor()
	if err != nil {
		return err
	}

	saida, err := s.chamar(ctx, opAltera, dadosEntrada{
		Altera: &alteraBoleto{
			CodigoBeneficiario: s.convenio,
			Titulo: tituloAltera{
				NossoNumero:     s.nossoNumeroCompleto(nossoNumero),
				NumeroDocumento: numeroDocumento(nossoNumero),
				DataVencimento:  vencimento.Format("2006-01-02"),
				Valor:           helper.FormatValor(valor),
			},
		},
	})
	if err != nil {
		return err
	}

	if saida.Dados.Altera != nil {
		s.SetCodigoBarras(saida.Dados.Altera.CodigoBarras)
		s.SetLinhaDigitavel(saida.Dados.Altera.LinhaDigitavel)
		s.SetPixQrCode(saida.Dados.Altera.QRCode)
	}
	return nil
}

// Baixar cancela um título registrado (BAIXA_BOLETO).
func (s *Service) Baixar(ctx context.Context) error {
	if s.convenio == "" {
		return domain.NovoErroValidacao("Convênio")
	}
	nossoNumero, err := s.NossoNumero()
	if err != nil {
		return err
	}

	_, err = s.chamar(ctx, opBaixa, dadosEntrada{
		Baixa: &baixaBoleto{
			CodigoBeneficiario: s.convenio,
			NossoNumero:        s.nossoNumeroCompleto(nossoNumero),
		},
	})
	return err
}

// montarPagador valida os campos de endereço, que o barramento exige
// preenchidos, e os normaliza para o alfabeto aceito.
func (s *Service) montarPagador() (*pagadorXML, error) {
	pagador, err := s.Pagador()
	if err != nil {
		return nil, err
	}

	nome := helper.Truncar(limpar(pagador.Nome()), 40)
	p := &pagadorXML{}
	if pagador.TipoDocumento() == "CPF" {
		p.CPF = pagador.Documento()
		p.Nome = nome
	} else {
		p.CNPJ = pagador.Documento()
		p.RazaoSocial = nome
	}

	if pagador.Logradouro() == "" {
		return nil, domain.NovoErroRegistro("X997", "(X997) LOGRADOURO DO PAGADOR INVALIDO", http.StatusBadRequest)
	}
	if pagador.Bairro() == "" {
		return nil, domain.NovoErroRegistro("X999", "(X999) BAIRRO DO PAGADOR INVALIDO", http.StatusBadRequest)
	}
	if pagador.Cidade() == "" {
		return nil, domain.NovoErroRegistro("X998", "(X998) CIDADE DO PAGADOR INVALIDO", http.StatusBadRequest)
	}
	if pagador.UF() == "" {
		return nil, domain.NovoErroRegistro("X996", "(X996) UF DO PAGADOR INVALIDO", http.StatusBadRequest)
	}
	if pagador.Cep() == "" {
		return nil, domain.NovoErroRegistro("X995", "(X995) CEP DO PAGADOR INVALIDO", http.StatusBadRequest)
	}

	p.Endereco = enderecoXML{
		Logradouro: helper.Truncar(limpar(pagador.Logradouro())+" "+pagador.Numero(), 40),
		Bairro:     helper.Truncar(limpar(pagador.Bairro()), 15),
		Cidade:     helper.Truncar(limpar(pagador.Cidade()), 15),
		UF:         helper.Ascii(pagador.UF()),
		CEP:        pagador.Cep(),
	}
	return p, nil
}

func limpar(s string) string {
	return strings.ReplaceAll(helper.Ascii(s), "&", "")
}

// chamar monta o envelope da operação, executa a chamada SOAP e
// devolve o SERVICO_SAIDA já checado contra o controle negocial.
func (s *Service) chamar(ctx context.Context, operacao string, dados dadosEntrada) (*servicoSaida, error) {
	hash, err := s.hashAutenticacao(operacao)
	if err != nil {
		return nil, err
	}

	envelope := soapEnvelope{
		NSSoap:  nsSoap,
		NSSibar: nsSibar,
		Body: soapBody{
			Servico: servicoEntrada{
				Header: cabecalho{
					Versao:         versaoSIBAR,
					Autenticacao:   hash,
					UsuarioServico: usuarioServico,
					Operacao:       operacao,
					SistemaOrigem:  sistemaOrigem,
					DataHora:       s.agora().Format("20060102150405"),
				},
				Dados: dados,
			},
		},
	}

	corpo, err := xml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar envelope: %w", err)
	}
	corpo = append([]byte(xml.Header), corpo...)

	destino := s.endpoint
	if destino == "" {
		destino = endpointSIBAR
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destino, bytes.NewReader(corpo))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", operacao)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na chamada ao banco: %w", err)
	}
	defer res.Body.Close()

	resposta, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do banco: %w", err)
	}

	var saida soapEnvelopeResposta
	if err := xml.Unmarshal(resposta, &saida); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do banco: %w", err)
	}

	servico := saida.Body.Servico
	if servico.Dados.ControleNegocial == nil {
		return nil, domain.NovoErroRegistro(servico.CodRetorno, strings.TrimSpace(servico.Retorno), res.StatusCode)
	}
	if servico.Dados.ControleNegocial.CodRetorno != "0" {
		mensagem := servico.Dados.ControleNegocial.Mensagens.Retorno
		return nil, domain.NovoErroRegistro(extrairCodigo(mensagem), mensagem, res.StatusCode)
	}
	return &servico, nil
}

var reCodigoParenteses = regexp.MustCompile(`\((.*?)\)`)

// extrairCodigo busca o código entre parênteses na mensagem de retorno
// ("(53) TITULO JA EXISTE"); sem parênteses, o checksum da mensagem
// vira código sintético.
func extrairCodigo(mensagem string) string {
	if m := reCodigoParenteses.FindStringSubmatch(mensagem); m != nil {
		return strings.TrimSpace(m[1])
	}
	return errcode.Checksum(mensagem)
}
