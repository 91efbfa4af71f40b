// Package config gerencia as configurações da biblioteca carregando
// variáveis de ambiente do arquivo .env
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config armazena as credenciais de todos os bancos suportados. Cada
// bloco só é validado quando o banco correspondente é usado.
type Config struct {
	Env     string
	Sandbox bool

	Bradesco   BradescoConfig
	Brasil     BrasilConfig
	Caixa      CaixaConfig
	Santander  SantanderConfig
	PrimaCredi PrimaCrediConfig

	Redis RedisConfig
}

// BradescoConfig armazena as credenciais do Bradesco.
type BradescoConfig struct {
	Agencia             string
	Conta               string
	ClientID            string
	CertificatePath     string
	CertificatePassword string
}

// BrasilConfig armazena as credenciais do Banco do Brasil.
type BrasilConfig struct {
	Convenio         string
	Carteira         string
	VariacaoCarteira string
	ClientID         string
	ClientSecret     string
	AppKey           string
	Modo             string
}

// CaixaConfig armazena o código de beneficiário da Caixa.
type CaixaConfig struct {
	Convenio string
}

// SantanderConfig armazena as credenciais do Santander.
type SantanderConfig struct {
	Convenio            string
	WorkspaceID         string
	ClientID            string
	ClientSecret        string
	CertificatePath     string
	CertificatePassword string
}

// PrimaCrediConfig armazena as credenciais da PrimaCredi.
type PrimaCrediConfig struct {
	Agencia  string
	Convenio string
	Token    string
}

// RedisConfig armazena a conexão do cache de tokens. Addr vazio
// seleciona o cache em memória.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load carrega as configurações do arquivo .env e variáveis de ambiente
// O arquivo .env é opcional - variáveis de ambiente têm prioridade
func Load() (*Config, error) {
	// Tenta carregar .env (ignora erro se não existir)
	_ = godotenv.Load()

	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		Sandbox: getEnvBool("BOLETO_SANDBOX", true),
		Bradesco: BradescoConfig{
			Agencia:             getEnv("BRADESCO_AGENCIA", ""),
			Conta:               getEnv("BRADESCO_CONTA", ""),
			ClientID:            getEnv("BRADESCO_CLIENT_ID", ""),
			CertificatePath:     getEnv("BRADESCO_CERTIFICATE_PATH", ""),
			CertificatePassword: getEnv("BRADESCO_CERTIFICATE_PASSWORD", ""),
		},
		Brasil: BrasilConfig{
			Convenio:         getEnv("BB_CONVENIO", ""),
			Carteira:         getEnv("BB_CARTEIRA", "17"),
			VariacaoCarteira: getEnv("BB_VARIACAO_CARTEIRA", "35"),
			ClientID:         getEnv("BB_CLIENT_ID", ""),
			ClientSecret:     getEnv("BB_CLIENT_SECRET", ""),
			AppKey:           getEnv("BB_APP_KEY", ""),
			Modo:             getEnv("BB_MODO", "WEBSERVICE"),
		},
		Caixa: CaixaConfig{
			Convenio: getEnv("CAIXA_CONVENIO", ""),
		},
		Santander: SantanderConfig{
			Convenio:            getEnv("SANTANDER_CONVENIO", ""),
			WorkspaceID:         getEnv("SANTANDER_WORKSPACE_ID", ""),
			ClientID:            getEnv("SANTANDER_CLIENT_ID", ""),
			ClientSecret:        getEnv("SANTANDER_CLIENT_SECRET", ""),
			CertificatePath:     getEnv("SANTANDER_CERTIFICATE_PATH", ""),
			CertificatePassword: getEnv("SANTANDER_CERTIFICATE_PASSWORD", ""),
		},
		PrimaCredi: PrimaCrediConfig{
			Agencia:  getEnv("PRIMACREDI_AGENCIA", ""),
			Convenio: getEnv("PRIMACREDI_CONVENIO", ""),
			Token:    getEnv("PRIMACREDI_TOKEN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	return cfg, nil
}

// Validar verifica as credenciais obrigatórias do Bradesco.
func (c *BradescoConfig) Validar() error {
	if c.Agencia == "" {
		return fmt.Errorf("BRADESCO_AGENCIA é obrigatório")
	}
	if c.Conta == "" {
		return fmt.Errorf("BRADESCO_CONTA é obrigatório")
	}
	if c.ClientID == "" {
		return fmt.Errorf("BRADESCO_CLIENT_ID é obrigatório")
	}
	if c.CertificatePath == "" {
		return fmt.Errorf("BRADESCO_CERTIFICATE_PATH é obrigatório")
	}
	return nil
}

// Validar verifica as credenciais obrigatórias do Banco do Brasil.
func (c *BrasilConfig) Validar() error {
	if c.Convenio == "" {
		return fmt.Errorf("BB_CONVENIO é obrigatório")
	}
	if c.ClientID == "" {
		return fmt.Errorf("BB_CLIENT_ID é obrigatório")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("BB_CLIENT_SECRET é obrigatório")
	}
	if c.AppKey == "" {
		return fmt.Errorf("BB_APP_KEY é obrigatório")
	}
	return nil
}

// Validar verifica o código de beneficiário da Caixa.
func (c *CaixaConfig) Validar() error {
	if c.Convenio == "" {
		return fmt.Errorf("CAIXA_CONVENIO é obrigatório")
	}
	return nil
}

// Validar verifica as credenciais obrigatórias do Santander.
func (c *SantanderConfig) Validar() error {
	if c.Convenio == "" {
		return fmt.Errorf("SANTANDER_CONVENIO é obrigatório")
	}
	if c.WorkspaceID == "" {
		return fmt.Errorf("SANTANDER_WORKSPACE_ID é obrigatório")
	}
	if c.ClientID == "" {
		return fmt.Errorf("SANTANDER_CLIENT_ID é obrigatório")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("SANTANDER_CLIENT_SECRET é obrigatório")
	}
	if c.CertificatePath == "" {
		return fmt.Errorf("SANTANDER_CERTIFICATE_PATH é obrigatório")
	}
	return nil
}

// Validar verifica as credenciais obrigatórias da PrimaCredi.
func (c *PrimaCrediConfig) Validar() error {
	if c.Agencia == "" {
		return fmt.Errorf("PRIMACREDI_AGENCIA é obrigatório")
	}
	if c.Convenio == "" {
		return fmt.Errorf("PRIMACREDI_CONVENIO é obrigatório")
	}
	if c.Token == "" {
		return fmt.Errorf("PRIMACREDI_TOKEN é obrigatório")
	}
	return nil
}

// IsDevelopment retorna true se estiver em ambiente de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction retorna true se estiver em ambiente de produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv obtém uma variável de ambiente ou retorna o valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool obtém uma variável de ambiente como bool
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvInt obtém uma variável de ambiente como inteiro
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
