package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
)

// BuildReport agrega os resultados ordenados de um run em um Report. É uma
// função pura dos seus argumentos: com os mesmos resultados e o mesmo
// timestamp, o relatório é idêntico.
func BuildReport(runCtx *entity.RunContext, results []entity.StepResult, now time.Time) entity.Report {
	outcomes := make(entity.OrderedResults, 0, len(results))
	// Inicializado vazio para que o JSON persista "errors": [] e não null.
	errs := make([]entity.StepError, 0)
	passed := 0

	for _, res := range results {
		outcomes = append(outcomes, entity.StepOutcome{Name: res.Name, Passed: res.Passed})
		if res.Passed {
			passed++
			continue
		}
		message := res.Error
		if message == "" {
			message = res.Detail
		}
		errs = append(errs, entity.StepError{Step: res.Name, Message: message})
	}

	total := len(results)
	return entity.Report{
		Timestamp: now.Format(time.RFC3339),
		Region:    runCtx.Region,
		Account:   runCtx.AccountID,
		Results:   outcomes,
		Summary: entity.Summary{
			Total:       total,
			Passed:      passed,
			Failed:      total - passed,
			SuccessRate: formatSuccessRate(passed, total),
		},
		Errors: errs,
	}
}

// formatSuccessRate formata passed/total como percentual com uma casa decimal,
// descartando o ".0" em valores inteiros ("100%", "83.3%"). Total zero é
// definido como "0%" para não dividir por zero.
func formatSuccessRate(passed, total int) string {
	if total == 0 {
		return "0%"
	}
	rate := float64(passed) / float64(total) * 100.0
	formatted := strconv.FormatFloat(rate, 'f', 1, 64)
	formatted = strings.TrimSuffix(formatted, ".0")
	return formatted + "%"
}
