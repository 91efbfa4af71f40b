package bradesco

// registroRequest é o payload de registro do boleto híbrido. Os nomes
// dos campos seguem o dicionário da API de cobrança do banco; os campos
// fixos carregam os valores exigidos pelo manual.
type registroRequest struct {
	NossoNumero string `json:"ctitloCobrCdent"`
	SeuNumero   string `json:"ctitloCliCdent"`

	BenefRaiz    string `json:"nroCpfCnpjBenef"`
	BenefFilial  string `json:"filCpfCnpjBenef"`
	BenefDigitos string `json:"digCpfCnpjBenef"`

	Emissao    string `json:"demisTitloCobr"`
	Vencimento string `json:"dvctoTitloCobr"`

	Negociacao string `json:"cnegocCobr"`
	Valor      string `json:"vnmnalTitloCobr"`

	ValidadeAposVencimento int    `json:"validadeAposVencimento"`
	DataLimitePagamento    string `json:"dataLimitePgt10"`
	DataPermanencia        string `json:"dataPerm10"`

	RegistrarTitulo  int    `json:"registrarTitulo"`
	CodUsuario       string `json:"codUsuario"`
	TipoAcesso       int    `json:"tipoAcesso"`
	ProdutoCobranca  int    `json:"cidtfdProdCobr"`
	CodigoBanco      int    `json:"codigoBanco"`
	TipoRegistro     int    `json:"tipoRegistro"`
	TipoVencimento   int    `json:"cidtfdTpoVcto"`
	EspecieTitulo    int    `json:"cespceTitloCobr"`
	AceiteSacado     string `json:"cindcdAceitSacdo"`
	Fase             int    `json:"fase"`
	CobrancaMista    string `json:"cindcdCobrMisto"`
	FormaEmissao     int    `json:"cformaEmisPplta"`
	PagamentoParcial string `json:"cindcdPgtoParcial"`
	QtdePgtoParcial  int    `json:"qtdePgtoParcial"`

	ValorDiaJuros  string `json:"vdiaJuroMora,omitempty"`
	TaxaJuros      string `json:"ptxJuroVcto,omitempty"`
	DiasInicioJuro int    `json:"qdiaInicJuro,omitempty"`

	PercentualMulta string `json:"pmultaAplicVcto,omitempty"`
	DiasInicioMulta int    `json:"qdiaInicMulta,omitempty"`

	DataDesconto1       string `json:"dlimDescBonif1,omitempty"`
	DataDesconto2       string `json:"dlimDescBonif2,omitempty"`
	DataDesconto3       string `json:"dlimDescBonif3,omitempty"`
	ValorDesconto1      string `json:"vdescBonifPgto01,omitempty"`
	ValorDesconto2      string `json:"vdescBonifPgto02,omitempty"`
	ValorDesconto3      string `json:"vdescBonifPgto03,omitempty"`
	PercentualDesconto1 string `json:"pdescBonifPgto01,omitempty"`
	PercentualDesconto2 string `json:"pdescBonifPgto02,omitempty"`
	PercentualDesconto3 string `json:"pdescBonifPgto03,omitempty"`

	SacadoNome        string `json:"isacdoTitloCobr"`
	SacadoLogradouro  string `json:"elogdrSacdoTitlo"`
	SacadoNumero      int    `json:"enroLogdrSacdo"`
	SacadoComplemento string `json:"ecomplLogdrSacdo"`
	SacadoCepPrefixo  string `json:"ccepSacdoTitlo"`
	SacadoCepSufixo   string `json:"ccomplCepSacdo"`
	SacadoBairro      string `json:"ebairoLogdrSacdo"`
	SacadoCidade      string `json:"imunSacdoTitlo"`
	SacadoUF          string `json:"csglUfSacdo"`
	SacadoTipoDoc     int    `json:"indCpfCnpjSacdo"`
	SacadoDocumento   string `json:"nroCpfCnpjSacdo"`
	SacadoEmail       string `json:"renderEletrSacdo"`
}

// registroResponse é o corpo de sucesso do registro.
type registroResponse struct {
	LinhaDigitavel string `json:"linhaDig10"`
	PixQrCode      string `json:"wqrcdPdraoMercd"`
}

// erroResponse é o envelope de rejeição de negócio.
type erroResponse struct {
	StatusHTTP   int    `json:"statusHttp"`
	ErrorMessage string `json:"errorMessage"`
}

// tokenResponse é o corpo do grant JWT-bearer.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
