package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
)

// StorageFactory constrói o repositório de storage para um run. A construção
// carrega a cadeia de credenciais; a sua falha é a única que termina o
// processo antes de qualquer relatório ser produzido.
type StorageFactory func(ctx context.Context, args *types.CLIArgs) (repository.StorageRepository, error)

// ConnectivityUseCase orquestra a sequência ordenada de verificações: gate de
// pré-requisitos, execução via StepRunner, cleanup incondicional, agregação do
// relatório e exportação.
type ConnectivityUseCase struct {
	storageFactory StorageFactory
	exportRepo     repository.ExportRepository
	console        types.ConsoleInterface
	runner         StepRunner
}

// NewConnectivityUseCase creates a new connectivity use case.
func NewConnectivityUseCase(
	storageFactory StorageFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *ConnectivityUseCase {
	return &ConnectivityUseCase{
		storageFactory: storageFactory,
		exportRepo:     exportRepo,
		console:        console,
	}
}

// RunConnectivity executa um run completo: steps em ordem declarada, cleanup
// garantido, relatório persistido. Retorna types.ErrChecksFailed quando algum
// step reprovou — o relatório já foi gerado nesse caso.
func (uc *ConnectivityUseCase) RunConnectivity(ctx context.Context, args *types.CLIArgs) error {
	runCtx := entity.NewRunContext(args.Region, time.Now())

	storage, err := uc.storageFactory(ctx, args)
	if err != nil {
		return fmt.Errorf("cannot initialize run: %w", err)
	}

	uc.console.LogInfo("Using region: %s", args.Region)
	uc.console.Println()

	run := &connectivityRun{storage: storage, runCtx: runCtx}
	results := uc.executeSteps(ctx, run, run.steps(ctx, args.Extended))

	report := BuildReport(runCtx, results, time.Now())
	uc.displaySummary(report)
	uc.exportReport(report, args)

	if !report.AllPassed() {
		return types.ErrChecksFailed
	}
	return nil
}

// executeSteps roda a sequência com gate de pré-requisitos. O cleanup é
// disparado por defer: ele roda mesmo que o laço seja interrompido por um
// panic no próprio orquestrador, e o seu resultado entra na lista como o de
// qualquer outro step.
func (uc *ConnectivityUseCase) executeSteps(ctx context.Context, run *connectivityRun, steps []step) (results []entity.StepResult) {
	passed := make(map[string]bool, len(steps)+1)

	defer func() {
		if rec := recover(); rec != nil {
			uc.console.LogError("unexpected failure in orchestrator: %v", rec)
		}
		res := uc.runner.Run(StepCleanup, func() (string, error) { return run.cleanup(ctx) })
		uc.displayResult(res)
		results = append(results, res)
	}()

	for _, st := range steps {
		var res entity.StepResult
		if blocked := firstFailedPrerequisite(st.requires, passed); blocked != "" {
			detail := fmt.Sprintf("skipped: prerequisite %s failed", blocked)
			res = entity.FailResult(st.name, detail, detail)
		} else {
			res = uc.runner.Run(st.name, st.action)
		}

		passed[st.name] = res.Passed
		uc.displayResult(res)
		results = append(results, res)
	}
	return results
}

// firstFailedPrerequisite retorna o primeiro pré-requisito não aprovado, ou
// vazio quando todos passaram.
func firstFailedPrerequisite(requires []string, passed map[string]bool) string {
	for _, name := range requires {
		if !passed[name] {
			return name
		}
	}
	return ""
}

func (uc *ConnectivityUseCase) displayResult(res entity.StepResult) {
	if res.Passed {
		if res.Detail != "" {
			uc.console.LogSuccess("%s: %s", res.Name, res.Detail)
		} else {
			uc.console.LogSuccess("%s", res.Name)
		}
		return
	}

	message := res.Error
	if message == "" {
		message = res.Detail
	}
	uc.console.LogError("%s: %s", res.Name, message)
}

func (uc *ConnectivityUseCase) displaySummary(report entity.Report) {
	table := uc.console.CreateTable()
	table.AddColumn("Step")
	table.AddColumn("Result")
	for _, outcome := range report.Results {
		status := "PASS"
		if !outcome.Passed {
			status = "FAIL"
		}
		table.AddRow(outcome.Name, status)
	}

	uc.console.Println()
	uc.console.Print(table.Render())
	uc.console.Printf("\nTotal: %d  Passed: %d  Failed: %d  Success Rate: %s\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed, report.Summary.SuccessRate)
}

// exportReport persiste o relatório em cada formato pedido. Falha de export é
// reportada ao operador, mas nunca derruba o run: o resultado dos steps já
// está decidido.
func (uc *ConnectivityUseCase) exportReport(report entity.Report, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "json":
			path, err := uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		case "csv":
			path, err := uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
