package errcode

// TabelaPadrao é a tabela de ocorrências do registro de cobrança,
// herdada da CNAB e devolvida pelos bancos em texto livre. A ordem das
// entradas é significativa: mensagens repetidas (19 e 36) resolvem para
// a primeira declarada.
var TabelaPadrao = NovaTabela([]Entrada{
	{-99, "Serviço indisponível no momento. Tente novamente mais tarde."},
	{-4, "Tamanho do campo inválido "},
	{-3, "Tipo do campo inválido"},
	{-2, "Contrato não encontrado "},
	{-1, "Contrato não aprovado"},
	{0, "Solicitação atendida "},
	{1, "Solicitação não encontrada"},
	{2, "Erro Genérico - sistema indisponível"},
	{5, "Inclusão efetuada"},
	{6, "Dados inconsistentes"},
	{10, "Erro Acesso Sub-rotina"},
	{12, "Cliente/Negociação Bloqueado"},
	{13, "Usuário não Autorizado"},
	{14, "Espécie Título Inválida"},
	{15, "Tipo/Número Inscrição Inválido"},
	{16, "Informe todos os campos para decurso de Prazo"},
	{17, "Nome do Pagador Especial não Informado"},
	{18, "Endereço Inválido"},
	{19, "CEP Inválido"},
	{20, "Agência Depositária Inválida"},
	{21, "Informe todos os campos para Instrução de Protesto"},
	{22, "Banco Inválido"},
	{23, "Seu Número Inválido"},
	{24, "Informe todos os campos para Abatimento"},
	{25, "Valor dos Juros maior que o Valor do Título"},
	{26, "Data de Emissão maior que a Data de Vencimento"},
	{27, "Documento do Sacador Avalista Inválido"},
	{28, "Informe todos os campos para Desconto"},
	{29, "Informe todos os campos para Sacador Avalista"},
	{30, "Data Vencimento menor ou igual Data Emissão"},
	{31, "Data Desconto menor ou igual Data Emissão"},
	{32, "Data Desconto maior que Data Vencimento"},
	{33, "Valor Desconto/Bonificação maior ou igual Valor Título"},
	{34, "Tipo informado deve ser 1, 2 ou 3"},
	{35, "Valor Abatimento maior que o Valor do Título"},
	{36, "CEP Inválido"},
	{37, "Data Emissão Inválida"},
	{38, "Data Vencimento Inválida"},
	{39, "Percentual informado maior ou igual 100,00"},
	{40, "Número CGC/CPF inválido"},
	{41, "Protesto Automático x Decurso de Prazo Incompatível"},
	{42, "Banco/Agência Depositária Inválido"},
	{43, "Espécie de Documento inválido"},
	{44, "Informe 1-Contra-apresentação ou 2-À vista"},
	{45, "Código da instrução de protesto inválido"},
	{46, "Dias para instrução de protesto inválido"},
	{47, "Código para desconto inválido"},
	{48, "Código para multa inválido"},
	{49, "Código para comissão permanência dia inválido"},
	{50, "Espécie Documento exige CGC para Sacador Avalista"},
	{51, "CEP e/ou Banco/Agência Depositária Inválido"},
	{52, "Data Emissão maior ou igual Data Vencimento"},
	{53, "Data Desconto Inválida"},
	{54, "Data emissão maior Data Registro"},
	{55, "Percentual multa informado maior que o permitido"},
	{56, "Percentual comissão permanência informado maior que o permitido"},
	{57, "Percentual Bonificação informado maior que o permitido"},
	{58, "Prazo para Protesto inválido 59 Informe a data ou tipo do vencimento"},
	{60, "Valor do IOF não permitido para produtos 05,15,43 ou 44"},
	{61, "Abatimento já cadastrado para o título"},
	{62, "Abatimento não"},
	{65, "Negociação inexistente"},
	{66, "Cliente inexistente "},
	{67, "CNPJ/CPF inválido"},
	{68, "N. Número não pode ser informado quando status 4"},
	{69, "Título já cadastrado"},
	{70, "Data e tipo de vencimento incompatíveis"},
	{71, "Data de vencimento não pode ser posterior a 10 anos"},
	{72, "Dias para instrução inferior ao padrão"},
	{73, "Dias para instrução antecipa data de protesto"},
	{74, "Valor IOF obrigatório"},
	{75, "Valor IOF incompatível com Id produto"},
	{76, "Tipo de abatimento inválido"},
	{77, "Status Inválido"},
	{78, "Registro on-line não permite Banco diferente de 237"},
	{79, "Carta para protesto não recebida"},
	{80, "Tipo de vencimento inválido"},
	{81, "Valor acumulado desconto/bonificação maior ou igual valor título"},
	{82, "Datas desconto/bonificação fora de sequência"},
	{83, "Informe todos os campos para multa"},
	{84, "Código comissão permanência inválido"},
	{85, "Informe todos os campos para comissão permanência"},
	{86, "Registro duplicado na tabela de ocorrências"},
	{87, "Solicitação de protesto já existente"},
	{88, "Registro duplicado na base de atualização sequencial"},
	{89, "Sacador avalista já cadastrado"},
	{90, "Indicador CIP inexistente"},
	{91, "Moeda negociada inexistente"},
	{92, "Banco/Agência operadora inexistente"},
	{93, "Acessório escritural negociado inexistente"},
	{94, "Polo de serviço inexistente para Banco/Agência"},
	{95, "Banco/Agência centralizadora não cadastrada para Banco/Agência depositária"},
	{96, "Título não encontrado pelo módulo CBON8230"},
	{97, "Valor IOF maior ou igual valor título"},
	{98, "Data Inválida"},
	{99, "Id Prod/Cta não cadastrados"},
})
