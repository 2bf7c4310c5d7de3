package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// DefaultReportName é a base do nome do arquivo de relatório persistido.
const DefaultReportName = "s3_test_report"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportReportToJSON persiste o relatório como JSON indentado. O nome final é
// <base>_<YYYYMMDD_HHMMSS>.json — granularidade de segundo, então dois runs no
// mesmo segundo colidem; janela conhecida e aceita, não uma garantia.
func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON report: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Step", "Result", "Error"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	errorsByStep := make(map[string]string, len(report.Errors))
	for _, stepErr := range report.Errors {
		errorsByStep[stepErr.Step] = stepErr.Message
	}

	for _, outcome := range report.Results {
		status := "PASS"
		if !outcome.Passed {
			status = "FAIL"
		}
		record := []string{outcome.Name, status, errorsByStep[outcome.Name]}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	summary := []string{
		"summary",
		fmt.Sprintf("%d/%d passed", report.Summary.Passed, report.Summary.Total),
		fmt.Sprintf("success rate %s", report.Summary.SuccessRate),
	}
	if err := writer.Write(summary); err != nil {
		return "", fmt.Errorf("error writing CSV summary: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	passColor := [3]int{0, 128, 0}
	failColor := [3]int{192, 0, 0}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  S3 Connectivity Test Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Region: %s", report.Region)), "", 1, "L", true, 0, "")
	if report.Account != "" {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account: %s", report.Account)), "", 1, "L", true, 0, "")
	}
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Generated: %s", report.Timestamp)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	// Resultados por step
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 8, "Results")
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, outcome := range report.Results {
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(120, 6, tr(outcome.Name), "", 0, "L", false, 0, "")
		if outcome.Passed {
			pdf.SetTextColor(passColor[0], passColor[1], passColor[2])
			pdf.CellFormat(70, 6, "PASS", "", 1, "L", false, 0, "")
		} else {
			pdf.SetTextColor(failColor[0], failColor[1], failColor[2])
			pdf.CellFormat(70, 6, "FAIL", "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)

	// Sumário
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(7)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	summaryText := fmt.Sprintf("Total: %d\nPassed: %d\nFailed: %d\nSuccess Rate: %s",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed, report.Summary.SuccessRate)
	pdf.MultiCell(190, 5, tr(summaryText), "", "L", false)
	pdf.Ln(6)

	// Erros capturados, na ordem de execução
	if len(report.Errors) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, "Errors")
		pdf.Ln(7)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(failColor[0], failColor[1], failColor[2])
		for _, stepErr := range report.Errors {
			pdf.MultiCell(190, 5, tr(fmt.Sprintf("%s: %s", stepErr.Step, stepErr.Message)), "", "L", false)
			pdf.Ln(1)
		}
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by S3 Connectivity Tester | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF report: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que
// o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if base == "" {
		base = DefaultReportName
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
