package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/auditpack/auditpack/internal/entity"
)

// Service produces XLSX bytes for a list's entries, one row per entry,
// with a fixed column set drawn from the extracted data.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

var headers = []string{
	"Data Leitura",
	"Razão Social",
	"CNPJ",
	"Raiz CNPJ",
	"Marca",
	"Descrição do Produto",
	"Conteúdo",
	"Endereço",
	"CEP",
	"Telefone",
	"Site",
	"Fabricante Embalagem",
	"Moldagem",
	"Formato",
	"Tipo",
	"Modelo",
	"Novo Prospecto",
	"Status Revisão",
}

// ExportListXLSX returns an XLSX workbook (as bytes) for the given list.
// Entries are written in their canonical order, newest first.
func (s *Service) ExportListXLSX(list *entity.InspectionList) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Entradas"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range list.Entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		x := e.Extracted
		if !x.DataLeitura.IsZero() {
			write(1, x.DataLeitura.Format("02/01/2006 15:04"))
		} else {
			write(1, "")
		}
		write(2, x.RazaoSocial)
		write(3, strings.Join(x.CNPJ, "; "))
		write(4, e.CNPJRaiz)
		write(5, x.Marca)
		write(6, x.DescricaoProduto)
		write(7, x.Conteudo)
		write(8, x.Endereco)
		write(9, x.CEP)
		write(10, x.Telefone)
		write(11, x.Site)
		write(12, x.FabricanteEmbalagem)
		write(13, string(x.Moldagem))
		write(14, string(x.FormatoEmbalagem))
		write(15, x.TipoEmbalagem)
		write(16, x.ModeloEmbalagem)
		if e.IsNewProspect {
			write(17, "SIM")
		} else {
			write(17, "NÃO")
		}
		write(18, string(e.ReviewStatus))

		row++
	}

	// Widen the columns that carry free text
	_ = f.SetColWidth(sheet, "A", "A", 18) // capture timestamp
	_ = f.SetColWidth(sheet, "B", "B", 36) // legal name
	_ = f.SetColWidth(sheet, "C", "C", 28) // tax IDs
	_ = f.SetColWidth(sheet, "F", "F", 40) // product description
	_ = f.SetColWidth(sheet, "H", "H", 40) // address

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"list_id", list.ID.String(),
		"rows", len(list.Entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
