package domain

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/pkcs12"
)

// Certificado embrulha o par de chaves extraído de um arquivo PKCS12
// (.pfx/.p12): chave privada, certificado X.509 e o bundle PEM completo
// com os intermediários. É usado tanto para mTLS quanto para a
// assinatura de mensagens exigida por alguns bancos.
type Certificado struct {
	chave  *rsa.PrivateKey
	cert   *x509.Certificate
	bundle []byte
}

// NovoCertificado lê e decodifica um arquivo PKCS12.
func NovoCertificado(arquivo, senha string) (*Certificado, error) {
	dados, err := os.ReadFile(arquivo)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler certificado: %w", err)
	}

	chave, cert, err := pkcs12.Decode(dados, senha)
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar certificado PKCS12: %w", err)
	}
	rsaKey, ok := chave.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("certificado PKCS12 sem chave RSA")
	}

	// Bundle PEM com chave, certificado e intermediários, na ordem do
	// arquivo original.
	blocos, err := pkcs12.ToPEM(dados, senha)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter certificado para PEM: %w", err)
	}
	var bundle []byte
	for _, bloco := range blocos {
		bundle = append(bundle, pem.EncodeToMemory(bloco)...)
	}

	return &Certificado{chave: rsaKey, cert: cert, bundle: bundle}, nil
}

// NovoCertificadoDeMaterial cria um Certificado a partir de material já
// carregado, para cenários em que a chave não vem de um arquivo PKCS12.
func NovoCertificadoDeMaterial(chave *rsa.PrivateKey, cert *x509.Certificate) *Certificado {
	var bundle []byte
	bundle = append(bundle, pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(chave),
	})...)
	if cert != nil {
		bundle = append(bundle, pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: cert.Raw,
		})...)
	}
	return &Certificado{chave: chave, cert: cert, bundle: bundle}
}

// ChavePrivada retorna a chave privada RSA.
func (c *Certificado) ChavePrivada() *rsa.PrivateKey { return c.chave }

// CertificadoX509 retorna o certificado público.
func (c *Certificado) CertificadoX509() *x509.Certificate { return c.cert }

// PEM retorna o bundle PEM (chave + certificado + intermediários).
func (c *Certificado) PEM() []byte { return c.bundle }

// AssinarSHA256 assina o texto com RSA PKCS#1 v1.5 sobre SHA-256 e
// retorna a assinatura bruta. A codificação (base64 padrão ou URL) fica
// a cargo do banco que a exige.
func (c *Certificado) AssinarSHA256(texto []byte) ([]byte, error) {
	digest := sha256.Sum256(texto)
	assinatura, err := rsa.SignPKCS1v15(rand.Reader, c.chave, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar a assinatura: %w", err)
	}
	return assinatura, nil
}

// AssinarSHA256Base64 assina e devolve em base64 padrão.
func (c *Certificado) AssinarSHA256Base64(texto []byte) (string, error) {
	assinatura, err := c.AssinarSHA256(texto)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(assinatura), nil
}

// TLSCertificate monta o certificado de cliente para transporte mTLS.
func (c *Certificado) TLSCertificate() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{c.cert.Raw},
		PrivateKey:  c.chave,
	}
}

// ArquivoPEM materializa o bundle num arquivo temporário e retorna o
// caminho junto com a função de limpeza. O chamador é responsável por
// invocar a limpeza em todo caminho de saída (defer), inclusive em
// erro; nada fica pendurado em hooks de fim de processo.
func (c *Certificado) ArquivoPEM() (string, func(), error) {
	caminho := filepath.Join(os.TempDir(), uuid.NewString()+".pem")
	if err := os.WriteFile(caminho, c.bundle, 0o600); err != nil {
		return "", nil, fmt.Errorf("erro ao materializar PEM: %w", err)
	}
	return caminho, func() { _ = os.Remove(caminho) }, nil
}
