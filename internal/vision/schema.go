package vision

import "github.com/auditpack/auditpack/constants"

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. It is passed to the oracle as a structured-output
// constraint and also used locally to check the response before coercion.
// Only the legal name and the tax-ID array are mandatory; everything else
// is backfilled by CoerceExtraction.
func BuildExtractionJSONSchema() map[string]any {
	props := map[string]any{
		"razaoSocial":         strProp(),
		"cnpj":                map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"marca":               strProp(),
		"descricaoProduto":    strProp(),
		"conteudo":            strProp(),
		"endereco":            strProp(),
		"cep":                 strProp(),
		"telefone":            strProp(),
		"site":                strProp(),
		"fabricanteEmbalagem": strProp(),
		"moldagem":            enumProp(constants.MoldingValues()),
		"formatoEmbalagem":    enumProp(constants.ShapeValues()),
		"tipoEmbalagem":       strProp(),
		"modeloEmbalagem":     strProp(),
	}
	required := []string{"razaoSocial", "cnpj"}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func strProp() map[string]any {
	return map[string]any{"type": "string"}
}

func enumProp(values []string) map[string]any {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return map[string]any{"type": "string", "enum": items}
}
