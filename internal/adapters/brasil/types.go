package brasil

// desconto preenche as três posições do payload; tipo 0 marca posição
// sem desconto.
type desconto struct {
	Tipo          int     `json:"tipo"`
	Valor         float64 `json:"valor,omitempty"`
	Porcentagem   float64 `json:"porcentagem,omitempty"`
	DataExpiracao string  `json:"dataExpiracao,omitempty"`
}

type jurosMora struct {
	Tipo        int     `json:"tipo"`
	Data        string  `json:"data,omitempty"`
	Valor       float64 `json:"valor,omitempty"`
	Porcentagem float64 `json:"porcentagem,omitempty"`
}

type multa struct {
	Tipo        int     `json:"tipo"`
	Data        string  `json:"data,omitempty"`
	Porcentagem float64 `json:"porcentagem,omitempty"`
}

type pessoa struct {
	TipoInscricao   int    `json:"tipoInscricao"`
	NumeroInscricao int64  `json:"numeroInscricao"`
	Nome            string `json:"nome"`
	Endereco        string `json:"endereco,omitempty"`
	Cep             string `json:"cep,omitempty"`
	Cidade          string `json:"cidade,omitempty"`
	Bairro          string `json:"bairro,omitempty"`
	UF              string `json:"uf,omitempty"`
	Telefone        string `json:"telefone,omitempty"`
}

type registroRequest struct {
	NumeroConvenio         string `json:"numeroConvenio"`
	NumeroCarteira         string `json:"numeroCarteira"`
	NumeroVariacaoCarteira string `json:"numeroVariacaoCarteira"`
	CodigoModalidade       int    `json:"codigoModalidade"`

	DataEmissao    string  `json:"dataEmissao"`
	DataVencimento string  `json:"dataVencimento"`
	ValorOriginal  float64 `json:"valorOriginal"`

	ValorAbatimento           float64 `json:"valorAbatimento"`
	QuantidadeDiasProtesto    int     `json:"quantidadeDiasProtesto"`
	QuantidadeDiasNegativacao int     `json:"quantidadeDiasNegativacao"`
	OrgaoNegativador          int     `json:"orgaoNegativador"`

	IndicadorAceiteTituloVencido string `json:"indicadorAceiteTituloVencido"`
	NumeroDiasLimiteRecebimento  int    `json:"numeroDiasLimiteRecebimento"`
	CodigoAceite                 string `json:"codigoAceite"`
	CodigoTipoTitulo             int    `json:"codigoTipoTitulo"`
	DescricaoTipoTitulo          string `json:"descricaoTipoTitulo"`

	IndicadorPermissaoRecebimentoParcial string `json:"indicadorPermissaoRecebimentoParcial"`

	NumeroTituloBeneficiario    string `json:"numeroTituloBeneficiario"`
	CampoUtilizacaoBeneficiario string `json:"campoUtilizacaoBeneficiario"`
	NumeroTituloCliente         string `json:"numeroTituloCliente"`
	MensagemBloquetoOcorrencia  string `json:"mensagemBloquetoOcorrencia"`

	Desconto         desconto  `json:"desconto"`
	SegundoDesconto  desconto  `json:"segundoDesconto"`
	TerceiroDesconto desconto  `json:"terceiroDesconto"`
	JurosMora        jurosMora `json:"jurosMora"`
	Multa            multa     `json:"multa"`

	Pagador           pessoa `json:"pagador"`
	BeneficiarioFinal pessoa `json:"beneficiarioFinal"`

	IndicadorPix string `json:"indicadorPix"`
}

type registroResponse struct {
	CodigoBarraNumerico string `json:"codigoBarraNumerico"`
	LinhaDigitavel      string `json:"linhaDigitavel"`
	QrCode              struct {
		Emv string `json:"emv"`
	} `json:"qrCode"`
}

type baixaRequest struct {
	NumeroConvenio string `json:"numeroConvenio"`
}

// erroResponse cobre os dois dialetos de envelope de erro da API.
type erroResponse struct {
	Erros []struct {
		Codigo   string `json:"codigo"`
		Mensagem string `json:"mensagem"`
	} `json:"erros"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
