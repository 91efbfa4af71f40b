package santander

type pagadorJSON struct {
	Name           string `json:"name"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	Address        string `json:"address"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
}

type beneficiarioJSON struct {
	Name           string `json:"name"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
}

type chavePix struct {
	Type    string `json:"type"`
	DictKey string `json:"dictKey"`
}

type parcelaDesconto struct {
	Value     string `json:"value"`
	LimitDate string `json:"limitDate"`
}

type desconto struct {
	Type          string           `json:"type"`
	DiscountOne   *parcelaDesconto `json:"discountOne,omitempty"`
	DiscountTwo   *parcelaDesconto `json:"discountTwo,omitempty"`
	DiscountThree *parcelaDesconto `json:"discountThree,omitempty"`
}

type registroRequest struct {
	Environment  string `json:"environment"`
	NsuCode      string `json:"nsuCode"`
	NsuDate      string `json:"nsuDate"`
	CovenantCode string `json:"covenantCode"`
	ClientNumber string `json:"clientNumber"`
	DueDate      string `json:"dueDate"`
	IssueDate    string `json:"issueDate"`
	NominalValue string `json:"nominalValue"`
	BankNumber   string `json:"bankNumber"`

	PaymentType          string `json:"paymentType"`
	WriteOffQuantityDays int    `json:"writeOffQuantityDays"`

	Payer       pagadorJSON      `json:"payer"`
	Beneficiary beneficiarioJSON `json:"beneficiary"`
	Key         *chavePix        `json:"key,omitempty"`
	Discount    *desconto        `json:"discount,omitempty"`

	FinePercentage     string `json:"finePercentage,omitempty"`
	FineQuantityDays   *int   `json:"fineQuantityDays,omitempty"`
	InterestPercentage string `json:"interestPercentage,omitempty"`

	DocumentKind string `json:"documentKind"`
}

type registroResponse struct {
	DigitableLine string `json:"digitableLine"`
	BarCode       string `json:"barCode"`
	QrCodePix     string `json:"qrCodePix"`
}

type baixaRequest struct {
	CovenantCode string `json:"covenantCode"`
	BankNumber   string `json:"bankNumber"`
	Operation    string `json:"operation"`
}

type consultaResponse struct {
	BankSlipData struct {
		BarCode       string `json:"barCode"`
		DigitableLine string `json:"digitableLine"`
	} `json:"bankSlipData"`
	QrCodeData *struct {
		QrCode string `json:"qrCode"`
	} `json:"qrCodeData"`
	PayerData struct {
		PayerName              string `json:"payerName"`
		PayerDocumentNumber    string `json:"payerDocumentNumber"`
		PayerAddress           string `json:"payerAddress"`
		PayerNeighborhood      string `json:"payerNeighborhood"`
		PayerCounty            string `json:"payerCounty"`
		PayerStateAbbreviation string `json:"payerStateAbbreviation"`
		PayerZipCode           string `json:"payerZipCode"`
	} `json:"payerData"`
}

// erroResponse cobre os dois envelopes de erro da API: a lista
// estruturada e o par statusHttp/errorMessage.
type erroResponse struct {
	Errors []struct {
		Code    string `json:"_code"`
		Message string `json:"_message"`
	} `json:"_errors"`
	StatusHTTP   int    `json:"statusHttp"`
	ErrorMessage string `json:"errorMessage"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
