// Package main é um utilitário de linha de comando para exercitar o
// registro de boletos contra cada banco suportado, com os dados de
// título vindos de flags e as credenciais do .env
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pagfacil/boleto/internal/adapters/bradesco"
	"github.com/pagfacil/boleto/internal/adapters/brasil"
	"github.com/pagfacil/boleto/internal/adapters/caixa"
	"github.com/pagfacil/boleto/internal/adapters/primacredi"
	"github.com/pagfacil/boleto/internal/adapters/santander"
	"github.com/pagfacil/boleto/internal/config"
	"github.com/pagfacil/boleto/internal/domain"
	"github.com/pagfacil/boleto/internal/ports"
	"github.com/pagfacil/boleto/internal/tokencache"
)

func main() {
	var (
		banco       = flag.String("banco", "", "banco alvo: bradesco, brasil, caixa, santander ou primacredi")
		acao        = flag.String("acao", "registrar", "operação: registrar, baixar, alterar ou consultar")
		nossoNumero = flag.String("nosso-numero", "", "identificador do título na carteira")
		valor       = flag.Float64("valor", 100.00, "valor nominal do título")
		dias        = flag.Int("dias", 30, "dias até o vencimento")
		pix         = flag.Bool("pix", false, "solicita o QR Code PIX junto ao registro")
	)
	flag.Parse()

	if *banco == "" || *nossoNumero == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("erro ao carregar configurações: %v", err)
	}

	tokens := novoTokenStore(cfg)

	servico, err := novoServico(cfg, *banco, tokens)
	if err != nil {
		log.Fatalf("erro ao montar o serviço: %v", err)
	}

	boleto := titulo(servico)
	boleto.SetNossoNumero(*nossoNumero)
	boleto.SetValor(*valor)
	boleto.SetEmissao(time.Now())
	boleto.SetVencimento(time.Now().AddDate(0, 0, *dias))
	boleto.SetGerarPix(*pix)
	boleto.SetSandbox(cfg.Sandbox)
	boleto.SetPagador(domain.NovoPagador(
		"Fulano de Tal", "93095135270",
		"Rua das Laranjeiras", "1000", "", "Centro",
		"Porto Velho", "RO", "76801-000",
	).SetTelefone("(69) 99255-3344").SetEmail("fulano@example.com"))
	boleto.SetBeneficiario(domain.NovoBeneficiario(
		"Pag Facil Meios de Pagamento LTDA", "07679404000100",
		"Avenida Sete de Setembro", "2233", "sala 4", "Nossa Senhora das Gracas",
		"Porto Velho", "RO", "76804-141",
	))

	ctx := context.Background()
	if err := executar(ctx, servico, *acao); err != nil {
		codigo := domain.CodigoDoErro(err)
		if codigo != "" {
			log.Fatalf("banco recusou a operação (código %s): %v", codigo, err)
		}
		log.Fatalf("erro na operação: %v", err)
	}

	fmt.Printf("linha digitável: %s\n", boleto.LinhaDigitavel())
	fmt.Printf("código de barras: %s\n", boleto.CodigoBarras())
	if qr := boleto.PixQrCode(); qr != "" {
		fmt.Printf("pix copia e cola: %s\n", qr)
	}
}

// titulo devolve o agregado embutido do serviço para a montagem dos
// dados do boleto.
func titulo(servico ports.BancoService) *domain.Boleto {
	switch s := servico.(type) {
	case *bradesco.Service:
		return &s.Boleto
	case *brasil.Service:
		return &s.Boleto
	case *caixa.Service:
		return &s.Boleto
	case *santander.Service:
		return &s.Boleto
	case *primacredi.Service:
		return &s.Boleto
	}
	panic("serviço sem agregado de boleto")
}

func executar(ctx context.Context, servico ports.BancoService, acao string) error {
	switch acao {
	case "registrar":
		return servico.Send(ctx)
	case "baixar":
		baixavel, ok := servico.(ports.Baixavel)
		if !ok {
			return fmt.Errorf("o banco não suporta baixa")
		}
		return baixavel.Baixar(ctx)
	case "alterar":
		alteravel, ok := servico.(ports.Alteravel)
		if !ok {
			return fmt.Errorf("o banco não suporta alteração")
		}
		return alteravel.Alterar(ctx)
	case "consultar":
		consultavel, ok := servico.(ports.Consultavel)
		if !ok {
			return fmt.Errorf("o banco não suporta consulta")
		}
		return consultavel.Consulta(ctx)
	default:
		return fmt.Errorf("operação desconhecida: %s", acao)
	}
}

func novoServico(cfg *config.Config, banco string, tokens ports.TokenStore) (ports.BancoService, error) {
	switch banco {
	case "bradesco":
		if err := cfg.Bradesco.Validar(); err != nil {
			return nil, err
		}
		certificado, err := domain.NovoCertificado(cfg.Bradesco.CertificatePath, cfg.Bradesco.CertificatePassword)
		if err != nil {
			return nil, err
		}
		return bradesco.NovoService(cfg.Bradesco.Agencia, cfg.Bradesco.Conta, cfg.Bradesco.ClientID, certificado, tokens), nil
	case "brasil":
		if err := cfg.Brasil.Validar(); err != nil {
			return nil, err
		}
		s := brasil.NovoService(cfg.Brasil.Convenio, cfg.Brasil.Carteira, cfg.Brasil.VariacaoCarteira,
			cfg.Brasil.ClientID, cfg.Brasil.ClientSecret, cfg.Brasil.AppKey, tokens)
		s.SetModo(cfg.Brasil.Modo)
		return s, nil
	case "caixa":
		if err := cfg.Caixa.Validar(); err != nil {
			return nil, err
		}
		return caixa.NovoService(cfg.Caixa.Convenio), nil
	case "santander":
		if err := cfg.Santander.Validar(); err != nil {
			return nil, err
		}
		certificado, err := domain.NovoCertificado(cfg.Santander.CertificatePath, cfg.Santander.CertificatePassword)
		if err != nil {
			return nil, err
		}
		return santander.NovoService(cfg.Santander.Convenio, cfg.Santander.WorkspaceID,
			cfg.Santander.ClientID, cfg.Santander.ClientSecret, certificado, tokens), nil
	case "primacredi":
		if err := cfg.PrimaCredi.Validar(); err != nil {
			return nil, err
		}
		return primacredi.NovoService(cfg.PrimaCredi.Agencia, cfg.PrimaCredi.Convenio, cfg.PrimaCredi.Token), nil
	}
	return nil, fmt.Errorf("banco desconhecido: %s", banco)
}

// novoTokenStore usa Redis quando configurado, senão o cache em
// memória que só vive durante o processo.
func novoTokenStore(cfg *config.Config) ports.TokenStore {
	if cfg.Redis.Addr == "" {
		return tokencache.NovaMemory()
	}
	cliente := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return tokencache.NovoRedis(cliente, "")
}
