package model

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}
