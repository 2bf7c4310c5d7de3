package entity

// StepResult representa o resultado de uma única verificação de conectividade.
// Exatamente um StepResult é produzido por step tentado; a ordem de inserção
// na lista do orquestrador é a ordem de execução.
type StepResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PassResult cria um resultado de sucesso com um detalhe opcional.
func PassResult(name, detail string) StepResult {
	return StepResult{Name: name, Passed: true, Detail: detail}
}

// FailResult cria um resultado de falha com a mensagem de erro capturada.
func FailResult(name, detail, errMsg string) StepResult {
	return StepResult{Name: name, Passed: false, Detail: detail, Error: errMsg}
}
