package entity

import (
	"time"

	"github.com/auditpack/auditpack/constants"
)

// ExtractedData is one vision-oracle response, coerced into canonical form.
// String fields hold constants.NotIdentified when the model could not read
// them; enum fields hold their documented defaults. Immutable once built.
type ExtractedData struct {
	RazaoSocial         string            `json:"razaoSocial"`
	CNPJ                []string          `json:"cnpj"`
	Marca               string            `json:"marca"`
	DescricaoProduto    string            `json:"descricaoProduto"`
	Conteudo            string            `json:"conteudo"`
	Endereco            string            `json:"endereco"`
	CEP                 string            `json:"cep"`
	Telefone            string            `json:"telefone"`
	Site                string            `json:"site"`
	FabricanteEmbalagem string            `json:"fabricanteEmbalagem"`
	Moldagem            constants.Molding `json:"moldagem"`
	FormatoEmbalagem    constants.Shape   `json:"formatoEmbalagem"`
	TipoEmbalagem       string            `json:"tipoEmbalagem"`
	ModeloEmbalagem     string            `json:"modeloEmbalagem"`
	DataLeitura         time.Time         `json:"dataLeitura"`
}
