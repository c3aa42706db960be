package vision

import (
	"strings"

	"github.com/auditpack/auditpack/constants"
)

// BuildSystemInstruction composes the system message: role, the exact field
// set, and the sentinel rule.
func BuildSystemInstruction() string {
	parts := []string{
		"Você é um especialista em auditoria de embalagens plásticas.",
		"Gere um JSON puro com os campos: razaoSocial, cnpj (array), marca, descricaoProduto, conteudo, endereco, cep, telefone, site, fabricanteEmbalagem, moldagem, formatoEmbalagem, tipoEmbalagem, modeloEmbalagem.",
		"Use '" + constants.NotIdentified + "' para campos não identificados.",
		"Retorne SOMENTE JSON que atenda ao schema fornecido, sem texto adicional.",
	}
	return strings.Join(parts, " ")
}

// BuildInstruction enumerates the extraction business rules sent alongside
// the images: molding and shape vocabularies, manufacturer-logo hints, and
// the multi-CNPJ capture rule.
func BuildInstruction() string {
	var b strings.Builder
	b.WriteString("Analise as imagens desta embalagem industrial e extraia os dados técnicos.\n\n")
	b.WriteString("REGRAS DE NEGÓCIO:\n")
	b.WriteString("1. MOLDAGEM: Identifique se é '")
	b.WriteString(strings.Join(constants.MoldingValues(), "' ou '"))
	b.WriteString("'.\n")
	b.WriteString("2. FORMATO: '")
	b.WriteString(strings.Join(constants.ShapeValues(), "', '"))
	b.WriteString("'.\n")
	b.WriteString("3. FABRICANTE DA PEÇA: Procure por logotipos no fundo da peça plástica. Exemplos comuns: ")
	b.WriteString(strings.Join(constants.KnownManufacturers, ", "))
	b.WriteString(".\n")
	b.WriteString("4. CNPJ: Extraia todos os CNPJs visíveis e coloque no array.")
	return b.String()
}
