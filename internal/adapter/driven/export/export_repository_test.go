package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() entity.Report {
	return entity.Report{
		Timestamp: "2025-06-15T10:30:45Z",
		Region:    "us-east-1",
		Account:   "123456789012",
		Results: entity.OrderedResults{
			{Name: "validate_credentials", Passed: true},
			{Name: "create_bucket", Passed: false},
		},
		Summary: entity.Summary{Total: 2, Passed: 1, Failed: 1, SuccessRate: "50%"},
		Errors:  []entity.StepError{{Step: "create_bucket", Message: "access denied"}},
	}
}

func TestExportReportToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportReportToJSON(sampleReport(), "s3_test_report", dir)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`s3_test_report_\d{8}_\d{6}\.json$`), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleReport(), decoded)
}

func TestExportReportToJSONDefaultName(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportReportToJSON(sampleReport(), "", dir)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), DefaultReportName)
}

func TestExportReportToCSV(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportReportToCSV(sampleReport(), "s3_test_report", dir)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`s3_test_report_\d{8}_\d{6}\.csv$`), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// Header + 2 steps + summary row.
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Step", "Result", "Error"}, records[0])
	assert.Equal(t, []string{"validate_credentials", "PASS", ""}, records[1])
	assert.Equal(t, []string{"create_bucket", "FAIL", "access denied"}, records[2])
	assert.Equal(t, "summary", records[3][0])
}

func TestExportReportToPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportReportToPDF(sampleReport(), "s3_test_report", dir)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`s3_test_report_\d{8}_\d{6}\.pdf$`), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateFilenameCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := generateFilename("report", dir, "json")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
