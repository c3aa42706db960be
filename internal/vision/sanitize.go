package vision

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
)

// TrimToJSON strips explanatory wrapping around the oracle's JSON payload:
// markdown code fences and any prose before the first brace or after the
// last one. Returns "" when no object is present.
func TrimToJSON(text string) string {
	s := strings.TrimSpace(text)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

// CoerceExtraction turns a well-formed but possibly partial oracle document
// into the canonical ExtractedData:
//   - missing, null, or blank string fields become the sentinel;
//   - a scalar cnpj is coerced into a one-element sequence, null entries drop;
//   - enum-valued fields are uppercased and mapped onto their vocabulary,
//     degrading to the documented defaults;
//   - the capture timestamp is stamped from readAt.
//
// The only failure mode is an undecodable document.
func CoerceExtraction(doc []byte, readAt time.Time) (entity.ExtractedData, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return entity.ExtractedData{}, common.NewAppError("EXTRACTION_PARSE", "decode oracle response", common.ErrExtractionParse)
	}

	str := func(key string) string {
		v, ok := m[key].(string)
		if !ok {
			return constants.NotIdentified
		}
		s := strings.TrimSpace(v)
		if s == "" {
			return constants.NotIdentified
		}
		return s
	}

	molding, _ := constants.CanonicalMolding(str("moldagem"))
	shape, _ := constants.CanonicalShape(str("formatoEmbalagem"))

	packageType := strings.ToUpper(str("tipoEmbalagem"))
	if packageType == constants.NotIdentified {
		packageType = constants.DefaultPackageType
	}

	return entity.ExtractedData{
		RazaoSocial:         str("razaoSocial"),
		CNPJ:                coerceCNPJ(m["cnpj"]),
		Marca:               str("marca"),
		DescricaoProduto:    str("descricaoProduto"),
		Conteudo:            str("conteudo"),
		Endereco:            str("endereco"),
		CEP:                 str("cep"),
		Telefone:            str("telefone"),
		Site:                str("site"),
		FabricanteEmbalagem: str("fabricanteEmbalagem"),
		Moldagem:            molding,
		FormatoEmbalagem:    shape,
		TipoEmbalagem:       packageType,
		ModeloEmbalagem:     str("modeloEmbalagem"),
		DataLeitura:         readAt,
	}, nil
}

// coerceCNPJ accepts an array of strings, a scalar string, or nothing, and
// always yields a (possibly empty) string sequence.
func coerceCNPJ(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return []string{}
}
