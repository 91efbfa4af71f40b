package primacredi

import "encoding/xml"

type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	NSSoap  string   `xml:"xmlns:soapenv,attr"`
	NSUrn   string   `xml:"xmlns:urn,attr"`
	Header  soapHeader
	Body    soapBody
}

// soapHeader carrega a credencial estática Chave{token,convenio} que o
// serviço espera em toda operação.
type soapHeader struct {
	XMLName xml.Name `xml:"soapenv:Header"`
	Chave   chave
}

type chave struct {
	XMLName  xml.Name `xml:"urn:Chave"`
	Token    string   `xml:"token"`
	Convenio string   `xml:"convenio"`
}

type soapBody struct {
	XMLName xml.Name      `xml:"soapenv:Body"`
	Gerar   *gerarBoletos `xml:",omitempty"`
	Buscar  *buscarBoleto `xml:",omitempty"`
	Baixar  *baixarBoleto `xml:",omitempty"`
}

type gerarBoletos struct {
	XMLName xml.Name `xml:"urn:gerarBoletos"`
	Layout  string   `xml:"layout"`
	Boletos boletos  `xml:"boletos"`
}

type boletos struct {
	Itens []boletoXML `xml:"item"`
}

type buscarBoleto struct {
	XMLName xml.Name `xml:"urn:buscarBoleto"`
	Boleto  buscaXML `xml:"boleto"`
}

type buscaXML struct {
	NossoNumero string `xml:"nossonumero"`
}

type baixarBoleto struct {
	XMLName xml.Name `xml:"urn:baixarBoleto"`
	Boleto  baixaXML `xml:"boleto"`
}

type baixaXML struct {
	IDWeb    string `xml:"idWeb"`
	Valor    string `xml:"valor"`
	Operacao string `xml:"operacao"`
}

type boletoXML struct {
	Pagador             pagadorXML   `xml:"pagador"`
	Documento           string       `xml:"documento"`
	NossoNumero         string       `xml:"nossonumero"`
	DataEmissao         string       `xml:"dataEmissao"`
	DataVencimento      string       `xml:"dataVencimento"`
	DataLimitePagamento string       `xml:"dataLimitePagamento"`
	Valor               string       `xml:"valor"`
	QuantidadeParcelas  int          `xml:"quantidadeParcelas"`
	IntervaloParcela    int          `xml:"intervaloParcela"`
	CodigoEspecie       string       `xml:"codigoEspecie"`
	Protesto            protestoXML  `xml:"protesto"`
	Desconto1           *descontoXML `xml:"desconto1,omitempty"`
	Desconto2           *descontoXML `xml:"desconto2,omitempty"`
	Desconto3           *descontoXML `xml:"desconto3,omitempty"`
	Multa               *multaXML    `xml:"multa,omitempty"`
	Juros               *jurosXML    `xml:"juros,omitempty"`
}

type pagadorXML struct {
	Nome         string      `xml:"nome"`
	NomeFantasia string      `xml:"nomeFantasia"`
	CpfCnpj      string      `xml:"cpfCnpj"`
	Endereco     enderecoXML `xml:"endereco"`
	Contatos     contatosXML `xml:"contatos"`
}

type enderecoXML struct {
	Endereco    string `xml:"endereco"`
	Numero      string `xml:"numero"`
	Complemento string `xml:"complemento"`
	Bairro      string `xml:"bairro"`
	Cep         string `xml:"cep"`
	Cidade      string `xml:"cidade"`
	UF          string `xml:"uf"`
}

type contatosXML struct {
	Itens []contatoXML `xml:"item,omitempty"`
}

type contatoXML struct {
	Contato     string `xml:"contato"`
	TipoContato int    `xml:"tipoContato"`
}

type protestoXML struct {
	Dias int `xml:"dias"`
	Tipo int `xml:"tipo"`
}

type descontoXML struct {
	Tipo  int    `xml:"tipo"`
	Data  string `xml:"data"`
	Valor string `xml:"valor"`
}

type multaXML struct {
	Tipo     int         `xml:"tipo"`
	Valor    string      `xml:"valor"`
	Carencia carenciaXML `xml:"carencia"`
}

type jurosXML struct {
	Valor    string       `xml:"valor"`
	Tipo     int          `xml:"tipo"`
	Carencia *carenciaXML `xml:"carencia,omitempty"`
}

type carenciaXML struct {
	Tipo int `xml:"tipo"`
	Dias int `xml:"dias"`
}

// Resposta. O decoder ignora namespaces; o elemento de resposta varia
// por operação, então o corpo casa com ",any" e desce até result.

type envelopeResposta struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Resposta respostaOperacao `xml:",any"`
	} `xml:"Body"`
}

type respostaOperacao struct {
	Result resultadoXML `xml:"result"`
}

type resultadoXML struct {
	Erros   *errosXML   `xml:"erros"`
	Titulos *titulosXML `xml:"titulos"`
}

type errosXML struct {
	Itens []erroItem `xml:"item"`
}

// erroItem aceita as duas formas que o serviço devolve: o par
// code/message ou o item de texto puro.
type erroItem struct {
	Code    string `xml:"code"`
	Message string `xml:"message"`
	Texto   string `xml:",chardata"`
}

type titulosXML struct {
	Itens []tituloItem `xml:"item"`
}

type tituloItem struct {
	IDWeb          string `xml:"idWeb"`
	Valor          string `xml:"valor"`
	CodigoBarras   string `xml:"codigoBarras"`
	LinhaDigitavel string `xml:"linhaDigitavel"`
}
