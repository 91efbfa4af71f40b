// Package tokencache implementa os armazéns de token OAuth usados
// pelos adaptadores bancários: um em memória para processo único e um
// sobre Redis para compartilhar tokens entre instâncias.
package tokencache

import (
	"crypto/sha1"
	"encoding/hex"
)

// Chave deriva a chave de cache de um token a partir do banco e das
// credenciais do beneficiário. Beneficiários distintos no mesmo banco
// nunca compartilham token.
func Chave(banco, convenio, documento string) string {
	soma := sha1.Sum([]byte("boleto-" + banco + convenio + documento))
	return hex.EncodeToString(soma[:])
}
