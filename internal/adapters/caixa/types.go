package caixa

import "encoding/xml"

// A ordem dos campos reproduz a ordem dos elementos exigida pelo
// barramento SIBAR; o serviço rejeita envelope fora de sequência.

type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	NSSoap  string   `xml:"xmlns:soapenv,attr"`
	NSSibar string   `xml:"xmlns:sibar,attr"`
	Body    soapBody
}

type soapBody struct {
	XMLName xml.Name `xml:"soapenv:Body"`
	Servico servicoEntrada
}

type servicoEntrada struct {
	XMLName xml.Name `xml:"sibar:SERVICO_ENTRADA"`
	Header  cabecalho
	Dados   dadosEntrada
}

type cabecalho struct {
	XMLName        xml.Name `xml:"HEADER"`
	Versao         string   `xml:"VERSAO"`
	Autenticacao   string   `xml:"AUTENTICACAO"`
	UsuarioServico string   `xml:"USUARIO_SERVICO"`
	Operacao       string   `xml:"OPERACAO"`
	SistemaOrigem  string   `xml:"SISTEMA_ORIGEM"`
	DataHora       string   `xml:"DATA_HORA"`
}

type dadosEntrada struct {
	XMLName xml.Name      `xml:"DADOS"`
	Inclui  *incluiBoleto `xml:"INCLUI_BOLETO,omitempty"`
	Altera  *alteraBoleto `xml:"ALTERA_BOLETO,omitempty"`
	Baixa   *baixaBoleto  `xml:"BAIXA_BOLETO,omitempty"`
}

type incluiBoleto struct {
	CodigoBeneficiario string `xml:"CODIGO_BENEFICIARIO"`
	Titulo             titulo `xml:"TITULO"`
}

type alteraBoleto struct {
	CodigoBeneficiario string       `xml:"CODIGO_BENEFICIARIO"`
	Titulo             tituloAltera `xml:"TITULO"`
}

type baixaBoleto struct {
	CodigoBeneficiario string `xml:"CODIGO_BENEFICIARIO"`
	NossoNumero        string `xml:"NOSSO_NUMERO"`
}

type titulo struct {
	Tipo            string        `xml:"TIPO,omitempty"`
	NossoNumero     string        `xml:"NOSSO_NUMERO"`
	NumeroDocumento string        `xml:"NUMERO_DOCUMENTO"`
	DataVencimento  string        `xml:"DATA_VENCIMENTO"`
	Valor           string        `xml:"VALOR"`
	TipoEspecie     int           `xml:"TIPO_ESPECIE"`
	FlagAceite      string        `xml:"FLAG_ACEITE"`
	DataEmissao     string        `xml:"DATA_EMISSAO"`
	Multa           *multaXML     `xml:"MULTA,omitempty"`
	Descontos       []descontoXML `xml:"DESCONTOS,omitempty"`
	JurosMora       jurosXML      `xml:"JUROS_MORA"`
	ValorAbatimento string        `xml:"VALOR_ABATIMENTO"`
	PosVencimento   posVencimento `xml:"POS_VENCIMENTO"`
	CodigoMoeda     string        `xml:"CODIGO_MOEDA"`
	Pagador         pagadorXML    `xml:"PAGADOR"`
}

type tituloAltera struct {
	NossoNumero     string `xml:"NOSSO_NUMERO"`
	NumeroDocumento string `xml:"NUMERO_DOCUMENTO"`
	DataVencimento  string `xml:"DATA_VENCIMENTO"`
	Valor           string `xml:"VALOR"`
}

type multaXML struct {
	Data       string `xml:"DATA"`
	Percentual string `xml:"PERCENTUAL"`
}

type descontoXML struct {
	Data       string `xml:"DATA"`
	Valor      string `xml:"VALOR,omitempty"`
	Percentual string `xml:"PERCENTUAL,omitempty"`
}

type jurosXML struct {
	Tipo       string `xml:"TIPO"`
	Data       string `xml:"DATA,omitempty"`
	Valor      string `xml:"VALOR,omitempty"`
	Percentual string `xml:"PERCENTUAL,omitempty"`
}

type posVencimento struct {
	Acao       string `xml:"ACAO"`
	NumeroDias int    `xml:"NUMERO_DIAS"`
}

type pagadorXML struct {
	CPF         string      `xml:"CPF,omitempty"`
	Nome        string      `xml:"NOME,omitempty"`
	CNPJ        string      `xml:"CNPJ,omitempty"`
	RazaoSocial string      `xml:"RAZAO_SOCIAL,omitempty"`
	Endereco    enderecoXML `xml:"ENDERECO"`
}

type enderecoXML struct {
	Logradouro string `xml:"LOGRADOURO"`
	Bairro     string `xml:"BAIRRO"`
	Cidade     string `xml:"CIDADE"`
	UF         string `xml:"UF"`
	CEP        string `xml:"CEP"`
}

// Resposta. O decoder ignora namespaces, então os nomes locais bastam.

type soapEnvelopeResposta struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Servico servicoSaida `xml:"SERVICO_SAIDA"`
	} `xml:"Body"`
}

type servicoSaida struct {
	CodRetorno string     `xml:"COD_RETORNO"`
	Retorno    string     `xml:"RETORNO"`
	Dados      dadosSaida `xml:"DADOS"`
}

type dadosSaida struct {
	ControleNegocial *controleNegocial `xml:"CONTROLE_NEGOCIAL"`
	Inclui           *boletoSaida      `xml:"INCLUI_BOLETO"`
	Altera           *boletoSaida      `xml:"ALTERA_BOLETO"`
}

type controleNegocial struct {
	CodRetorno string `xml:"COD_RETORNO"`
	Mensagens  struct {
		Retorno string `xml:"RETORNO"`
	} `xml:"MENSAGENS"`
}

type boletoSaida struct {
	CodigoBarras   string `xml:"CODIGO_BARRAS"`
	LinhaDigitavel string `xml:"LINHA_DIGITAVEL"`
	QRCode         string `xml:"QRCODE"`
}
