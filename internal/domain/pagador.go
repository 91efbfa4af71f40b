// Package domain define as entidades compartilhadas entre os bancos:
// pagador, beneficiário, juros, multa, desconto, certificado e o
// agregado Boleto que cada serviço bancário embute.
//
// As entidades são porta-valores simples. A validação acontece na
// leitura, durante a montagem do payload, nunca na construção: um
// campo ausente só vira erro quando algum banco precisa dele.
package domain

import (
	"strings"

	"github.com/pagfacil/boleto/internal/helper"
)

// Pagador é o devedor do boleto.
type Pagador struct {
	nome        string
	documento   string
	logradouro  string
	numero      string
	complemento string
	bairro      string
	cidade      string
	uf          string
	cep         string
	telefone    string
	email       string
}

// NovoPagador cria um pagador com os dados de endereço. Telefone e
// e-mail entram pelos setters, como campos opcionais.
func NovoPagador(nome, documento, logradouro, numero, complemento, bairro, cidade, uf, cep string) *Pagador {
	return &Pagador{
		nome:        nome,
		documento:   documento,
		logradouro:  logradouro,
		numero:      numero,
		complemento: complemento,
		bairro:      bairro,
		cidade:      cidade,
		uf:          uf,
		cep:         cep,
	}
}

func (p *Pagador) SetTelefone(telefone string) *Pagador {
	p.telefone = telefone
	return p
}

func (p *Pagador) SetEmail(email string) *Pagador {
	p.email = email
	return p
}

func (p *Pagador) Nome() string { return p.nome }

// Documento retorna apenas os dígitos do CPF/CNPJ.
func (p *Pagador) Documento() string { return helper.Numero(p.documento) }

// TipoDocumento infere CPF ou CNPJ pelo comprimento do documento.
func (p *Pagador) TipoDocumento() string {
	if len(p.Documento()) == 11 {
		return "CPF"
	}
	return "CNPJ"
}

func (p *Pagador) Logradouro() string  { return p.logradouro }
func (p *Pagador) Numero() string      { return p.numero }
func (p *Pagador) Complemento() string { return p.complemento }
func (p *Pagador) Bairro() string      { return p.bairro }
func (p *Pagador) Cidade() string      { return p.cidade }
func (p *Pagador) UF() string          { return strings.ToUpper(p.uf) }
func (p *Pagador) Cep() string         { return helper.Numero(p.cep) }
func (p *Pagador) Telefone() string    { return p.telefone }
func (p *Pagador) Email() string       { return p.email }

// CepPrefixo retorna os cinco primeiros dígitos do CEP.
func (p *Pagador) CepPrefixo() string {
	cep := p.Cep()
	if len(cep) < 5 {
		return cep
	}
	return cep[:5]
}

// CepSufixo retorna os três últimos dígitos do CEP.
func (p *Pagador) CepSufixo() string {
	cep := p.Cep()
	if len(cep) <= 5 {
		return ""
	}
	return cep[5:]
}
