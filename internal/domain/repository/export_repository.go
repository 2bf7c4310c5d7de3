package repository

import (
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
)

// ExportRepository serializa o Report para armazenamento persistente.
type ExportRepository interface {
	ExportReportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
