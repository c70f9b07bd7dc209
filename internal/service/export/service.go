package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/internal/repository/csvfile"
)

const (
	sheetRecords = "Componentes"
	sheetSummary = "Resumo"
	colDuration  = "Duração"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type service struct {
	ctrl *lifecycle.Controller
}

func NewExportService(ctrl *lifecycle.Controller) *service {
	return &service{ctrl: ctrl}
}

func (s *service) Export(format model.ExportFormat, records []model.Record) (*model.ExportFile, error) {
	const op = "export.service.Export"

	var (
		content     []byte
		contentType string
		err         error
	)
	switch format {
	case model.ExportCSV:
		content, err = s.csv(records)
		contentType = contentTypeCSV
	case model.ExportXLSX:
		content, err = s.xlsx(records)
		contentType = contentTypeXLSX
	default:
		return nil, fmt.Errorf("%s: %w: unknown format %q", op, model.ErrValidation, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.ExportFile{
		Name:        fmt.Sprintf("componentes_%s.%s", s.ctrl.Today(), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *service) csv(records []model.Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := csvfile.Encode(buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) xlsx(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetRecords)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := append(append([]string{}, csvfile.Header...), colDuration)
	if err := writeRow(f, sheetRecords, 1, lo.ToAnySlice(header)); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheetRecords, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetRecords, "A", lastCol, 18); err != nil {
		return nil, err
	}

	for i, rec := range records {
		if err := writeRow(f, sheetRecords, i+2, s.recordCells(rec)); err != nil {
			return nil, err
		}
	}

	if err := s.summary(f, records, headerStyle); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// recordCells keeps numeric columns numeric so spreadsheets can sum them.
func (s *service) recordCells(rec model.Record) []any {
	cells := lo.ToAnySlice(csvfile.EncodeRow(rec))
	cells[lo.IndexOf(csvfile.Header, "Horímetro")] = rec.HourMeter
	cells[lo.IndexOf(csvfile.Header, "Versao")] = rec.Version

	if d := s.ctrl.Duration(rec); d.Known {
		return append(cells, d.Days)
	}
	return append(cells, model.UnknownDuration)
}

func (s *service) summary(f *excelize.File, records []model.Record, headerStyle int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	if err := writeRow(f, sheetSummary, 1, []any{"Status", "Quantidade"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 26); err != nil {
		return err
	}

	counts := lo.CountValuesBy(records, func(r model.Record) model.Status { return r.Status })
	for i, st := range model.AllStatuses() {
		if err := writeRow(f, sheetSummary, i+2, []any{st.Label(), counts[st]}); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values)
}
