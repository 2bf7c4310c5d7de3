package usecase

import (
	"fmt"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
)

// StepAction executa uma verificação e retorna um detalhe legível de sucesso.
type StepAction func() (string, error)

// StepRunner executa um step nomeado e captura o desfecho. Nenhuma falha da
// action — erro retornado ou panic — escapa para o orquestrador: o controle
// sempre volta ao chamador com um StepResult. O runner não imprime nada; a
// exibição é responsabilidade do console, dirigida pelo resultado.
type StepRunner struct{}

// Run invoca a action e converte o desfecho em um StepResult.
func (StepRunner) Run(name string, action StepAction) (result entity.StepResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = entity.FailResult(name, "", fmt.Sprintf("panic: %v", rec))
		}
	}()

	detail, err := action()
	if err != nil {
		return entity.FailResult(name, detail, err.Error())
	}
	return entity.PassResult(name, detail)
}
