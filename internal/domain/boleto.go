package domain

import "time"

// MaxDescontos é o limite de descontos aceito pelos bancos. Informar
// mais que isso é falha de validação, nunca truncamento.
const MaxDescontos = 3

// Boleto é o agregado que cada serviço bancário embute: os dados comuns
// de um título (datas, valor, identificadores, pagador, beneficiário e
// acessórios financeiros). Um Boleto é montado via setters, submetido uma
// única vez e descartado; não há reuso entre títulos.
//
// Os getters validam na leitura: campo ausente retorna ErroValidacao no
// momento em que a montagem do payload o exige.
type Boleto struct {
	vencimento     time.Time
	emissao        time.Time
	valor          float64
	nossoNumero    string
	pagador        *Pagador
	beneficiario   *Beneficiario
	juros          *Juros
	multa          *Multa
	descontos      []*Desconto
	prazoDevolucao int
	gerarPix       bool
	sandbox        bool

	linhaDigitavel string
	codigoBarras   string
	pixQrCode      string
}

func (b *Boleto) SetVencimento(data time.Time) { b.vencimento = data }
func (b *Boleto) SetEmissao(data time.Time)    { b.emissao = data }
func (b *Boleto) SetValor(valor float64)       { b.valor = valor }
func (b *Boleto) SetNossoNumero(nn string)     { b.nossoNumero = nn }

func (b *Boleto) SetPagador(p *Pagador)            { b.pagador = p }
func (b *Boleto) SetBeneficiario(bf *Beneficiario) { b.beneficiario = bf }
func (b *Boleto) SetJuros(j *Juros)                { b.juros = j }
func (b *Boleto) SetMulta(m *Multa)                { b.multa = m }

// AddDesconto acrescenta um desconto; a ordem de inserção define o
// campo posicional no payload do banco.
func (b *Boleto) AddDesconto(d *Desconto) { b.descontos = append(b.descontos, d) }

func (b *Boleto) SetPrazoDevolucao(dias int) { b.prazoDevolucao = dias }
func (b *Boleto) SetGerarPix(pix bool)       { b.gerarPix = pix }
func (b *Boleto) SetSandbox(sandbox bool)    { b.sandbox = sandbox }

// Vencimento retorna a data de vencimento, obrigatória.
func (b *Boleto) Vencimento() (time.Time, error) {
	if b.vencimento.IsZero() {
		return time.Time{}, NovoErroValidacao("Data Vencimento")
	}
	return b.vencimento, nil
}

// Emissao retorna a data de emissão, obrigatória.
func (b *Boleto) Emissao() (time.Time, error) {
	if b.emissao.IsZero() {
		return time.Time{}, NovoErroValidacao("Data Emissão")
	}
	return b.emissao, nil
}

// Valor retorna o valor nominal, obrigatório e positivo.
func (b *Boleto) Valor() (float64, error) {
	if b.valor <= 0 {
		return 0, NovoErroValidacao("Valor")
	}
	return b.valor, nil
}

// NossoNumero retorna o identificador do título, obrigatório.
func (b *Boleto) NossoNumero() (string, error) {
	if b.nossoNumero == "" {
		return "", NovoErroValidacao("Nosso Número")
	}
	return b.nossoNumero, nil
}

// Pagador retorna o pagador, obrigatório.
func (b *Boleto) Pagador() (*Pagador, error) {
	if b.pagador == nil {
		return nil, NovoErroValidacao("Pagador")
	}
	return b.pagador, nil
}

// Beneficiario retorna o beneficiário, obrigatório.
func (b *Boleto) Beneficiario() (*Beneficiario, error) {
	if b.beneficiario == nil {
		return nil, NovoErroValidacao("Beneficiário")
	}
	return b.beneficiario, nil
}

// Juros retorna os juros de mora; nil significa sem juros.
func (b *Boleto) Juros() *Juros { return b.juros }

// Multa retorna a multa; nil significa sem multa.
func (b *Boleto) Multa() *Multa { return b.multa }

// Descontos retorna a sequência de descontos, validando o limite.
func (b *Boleto) Descontos() ([]*Desconto, error) {
	if len(b.descontos) > MaxDescontos {
		return nil, &ErroValidacao{Campo: "Desconto", Mensagem: "Quantidade desconto informado maior que 3."}
	}
	return b.descontos, nil
}

func (b *Boleto) PrazoDevolucao() int { return b.prazoDevolucao }
func (b *Boleto) GerarPix() bool      { return b.gerarPix }
func (b *Boleto) Sandbox() bool       { return b.sandbox }

// SetLinhaDigitavel grava a linha digitável devolvida pelo banco.
func (b *Boleto) SetLinhaDigitavel(linha string) { b.linhaDigitavel = linha }

// SetCodigoBarras grava o código de barras devolvido pelo banco.
func (b *Boleto) SetCodigoBarras(codigo string) { b.codigoBarras = codigo }

// SetPixQrCode grava o payload PIX copia-e-cola devolvido pelo banco.
func (b *Boleto) SetPixQrCode(pix string) { b.pixQrCode = pix }

// LinhaDigitavel é preenchida após o registro com sucesso.
func (b *Boleto) LinhaDigitavel() string { return b.linhaDigitavel }

// CodigoBarras é preenchido após o registro com sucesso.
func (b *Boleto) CodigoBarras() string { return b.codigoBarras }

// PixQrCode é preenchido após o registro quando o PIX foi solicitado.
func (b *Boleto) PixQrCode() string { return b.pixQrCode }
