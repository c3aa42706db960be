package vision

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/common"
)

func TestTrimToJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare_object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose_wrapped", "Here is the data:\n{\"a\":1}\nHope that helps!", `{"a":1}`},
		{"whitespace", "  \n {\"a\":1} \n", `{"a":1}`},
		{"no_object", "sorry, I could not read the images", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimToJSON(tt.in))
		})
	}
}

func TestCoerceExtraction_FullDocument(t *testing.T) {
	doc := []byte(`{
		"razaoSocial": "Laticínios Boa Vista LTDA",
		"cnpj": ["12.345.678/0009-10", "11.111.111/0001-11"],
		"marca": "Boa Vista",
		"descricaoProduto": "Pote para requeijão 200g",
		"conteudo": "200g",
		"endereco": "Rod. BR-040, km 688, Conselheiro Lafaiete - MG",
		"cep": "36400-000",
		"telefone": "(31) 3761-1234",
		"site": "www.boavista.com.br",
		"fabricanteEmbalagem": "BOMIX",
		"moldagem": "injetado",
		"formatoEmbalagem": "redondo",
		"tipoEmbalagem": "pote",
		"modeloEmbalagem": "BV-200"
	}`)
	readAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	x, err := CoerceExtraction(doc, readAt)
	require.NoError(t, err)

	assert.Equal(t, "Laticínios Boa Vista LTDA", x.RazaoSocial)
	assert.Equal(t, []string{"12.345.678/0009-10", "11.111.111/0001-11"}, x.CNPJ)
	assert.Equal(t, constants.MoldingInjected, x.Moldagem, "enum values are uppercased")
	assert.Equal(t, constants.ShapeRound, x.FormatoEmbalagem)
	assert.Equal(t, "POTE", x.TipoEmbalagem)
	assert.Equal(t, "BOMIX", x.FabricanteEmbalagem)
	assert.Equal(t, readAt, x.DataLeitura)
}

func TestCoerceExtraction_PartialDocumentBackfillsSentinels(t *testing.T) {
	// Only the mandatory fields, one of them null: every non-mandatory
	// string becomes the sentinel and enums take their documented defaults.
	doc := []byte(`{"razaoSocial": null, "cnpj": ["12.345.678/0009-10"]}`)

	x, err := CoerceExtraction(doc, time.Now())
	require.NoError(t, err)

	assert.Equal(t, constants.NotIdentified, x.RazaoSocial)
	assert.Equal(t, []string{"12.345.678/0009-10"}, x.CNPJ)
	assert.Equal(t, constants.NotIdentified, x.Marca)
	assert.Equal(t, constants.NotIdentified, x.DescricaoProduto)
	assert.Equal(t, constants.NotIdentified, x.Conteudo)
	assert.Equal(t, constants.NotIdentified, x.Endereco)
	assert.Equal(t, constants.NotIdentified, x.CEP)
	assert.Equal(t, constants.NotIdentified, x.Telefone)
	assert.Equal(t, constants.NotIdentified, x.Site)
	assert.Equal(t, constants.NotIdentified, x.FabricanteEmbalagem)
	assert.Equal(t, constants.NotIdentified, x.ModeloEmbalagem)
	assert.Equal(t, constants.DefaultMolding, x.Moldagem)
	assert.Equal(t, constants.DefaultShape, x.FormatoEmbalagem)
	assert.Equal(t, constants.DefaultPackageType, x.TipoEmbalagem)
}

func TestCoerceExtraction_ScalarCNPJBecomesSequence(t *testing.T) {
	doc := []byte(`{"razaoSocial": "X", "cnpj": "12.345.678/0009-10"}`)

	x, err := CoerceExtraction(doc, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"12.345.678/0009-10"}, x.CNPJ)
}

func TestCoerceExtraction_MissingCNPJYieldsEmptySequence(t *testing.T) {
	doc := []byte(`{"razaoSocial": "X"}`)

	x, err := CoerceExtraction(doc, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, x.CNPJ)
	assert.Empty(t, x.CNPJ)
}

func TestCoerceExtraction_NullAndBlankCNPJEntriesDrop(t *testing.T) {
	doc := []byte(`{"razaoSocial": "X", "cnpj": [null, "  ", "11.111.111/0001-11", 42]}`)

	x, err := CoerceExtraction(doc, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"11.111.111/0001-11"}, x.CNPJ)
}

func TestCoerceExtraction_UnknownEnumDegradesToDefault(t *testing.T) {
	doc := []byte(`{"razaoSocial": "X", "cnpj": [], "moldagem": "SOPRADO", "formatoEmbalagem": "TRIANGULAR"}`)

	x, err := CoerceExtraction(doc, time.Now())
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultMolding, x.Moldagem)
	assert.Equal(t, constants.DefaultShape, x.FormatoEmbalagem)
}

func TestCoerceExtraction_UndecodableDocument(t *testing.T) {
	_, err := CoerceExtraction([]byte(`{"razaoSocial": `), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtractionParse))
}

func TestImagePart(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMIME string
		wantData string
	}{
		{"png_header", "data:image/png;base64,AAAA", "image/png", "AAAA"},
		{"jpeg_header", "data:image/jpeg;base64,BBBB", "image/jpeg", "BBBB"},
		{"unparseable_header", "data:application/pdf;base64,CCCC", "image/jpeg", "CCCC"},
		{"bare_base64", "DDDD", "image/jpeg", "DDDD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, data := ImagePart(tt.in)
			assert.Equal(t, tt.wantMIME, mt)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestValidateAgainstSchema(t *testing.T) {
	schema := BuildExtractionJSONSchema()

	ok := []byte(`{"razaoSocial": "X", "cnpj": ["11.111.111/0001-11"], "moldagem": "INJETADO"}`)
	assert.NoError(t, ValidateAgainstSchema(schema, ok))

	missingMandatory := []byte(`{"marca": "Y"}`)
	assert.Error(t, ValidateAgainstSchema(schema, missingMandatory))

	badEnum := []byte(`{"razaoSocial": "X", "cnpj": [], "moldagem": "SOPRADO"}`)
	assert.Error(t, ValidateAgainstSchema(schema, badEnum))
}
