package types

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksFailed sinaliza ao main que o run terminou com pelo menos um
	// step reprovado; o relatório já foi gerado quando este erro é retornado.
	ErrChecksFailed = errors.New("one or more connectivity checks failed")
)

// ErrorKind classifica uma falha de operação contra o serviço de storage.
type ErrorKind string

const (
	// Credenciais inválidas ou expiradas.
	ErrKindAuthentication ErrorKind = "authentication"
	// Credenciais válidas, permissão insuficiente.
	ErrKindAuthorization ErrorKind = "authorization"
	// Colisão de nome: bucket já existe ou pertence a outra conta.
	ErrKindResourceConflict ErrorKind = "resource_conflict"
	// Bucket ou objeto ausente quando era esperado.
	ErrKindNotFound ErrorKind = "not_found"
	// Falha remota genérica, incluindo timeouts e faltas transitórias.
	ErrKindService ErrorKind = "service"
	// Uma verificação de read-back contradisse a pós-condição esperada.
	ErrKindLocalAssertion ErrorKind = "local_assertion"
)

// StorageError carrega a classificação, o código e a mensagem de um erro de
// serviço. O adapter de storage traduz erros do SDK para este tipo; o core só
// enxerga {kind, code, message}.
type StorageError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewStorageError cria um StorageError classificado.
func NewStorageError(kind ErrorKind, code, message string) *StorageError {
	return &StorageError{Kind: kind, Code: code, Message: message}
}

// NewAssertionError cria o erro de asserção local usado quando um read-back
// contradiz o estado esperado (ex.: versionamento não habilitado de fato).
func NewAssertionError(format string, a ...interface{}) *StorageError {
	return &StorageError{Kind: ErrKindLocalAssertion, Message: fmt.Sprintf(format, a...)}
}

// IsKind informa se err (ou algum erro na cadeia) é um StorageError do kind
// especificado.
func IsKind(err error, kind ErrorKind) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
