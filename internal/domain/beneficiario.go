package domain

// Beneficiario é o emissor do boleto. Tem a mesma forma do Pagador e,
// adicionalmente, a representação desmembrada do documento
// (raiz/filial/dígito) que alguns bancos exigem para CNPJ com filial.
type Beneficiario struct {
	Pagador
}

// NovoBeneficiario cria um beneficiário com os dados de endereço.
func NovoBeneficiario(nome, documento, logradouro, numero, complemento, bairro, cidade, uf, cep string) *Beneficiario {
	return &Beneficiario{Pagador: *NovoPagador(nome, documento, logradouro, numero, complemento, bairro, cidade, uf, cep)}
}

// DocumentoRaiz devolve a raiz do documento: os oito primeiros dígitos
// do CNPJ ou os nove primeiros do CPF.
func (b *Beneficiario) DocumentoRaiz() string {
	doc := b.Documento()
	if len(doc) == 14 {
		return doc[:8]
	}
	if len(doc) == 11 {
		return doc[:9]
	}
	return doc
}

// DocumentoFilial devolve o número da filial do CNPJ; CPF não tem
// filial e retorna "0".
func (b *Beneficiario) DocumentoFilial() string {
	doc := b.Documento()
	if len(doc) == 14 {
		return doc[8:12]
	}
	return "0"
}

// DocumentoControle devolve os dois dígitos verificadores do documento.
func (b *Beneficiario) DocumentoControle() string {
	doc := b.Documento()
	if len(doc) < 2 {
		return doc
	}
	return doc[len(doc)-2:]
}
