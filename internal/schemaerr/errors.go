package schemaerr

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError é um erro com código no estilo Prisma (P1xxx)
type SchemaError struct {
	Code    string
	Message string
	cause   error
}

func (e *SchemaError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error {
	return e.cause
}

func (e *SchemaError) Is(target error) bool {
	if t, ok := target.(*SchemaError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrAuthenticationFailed = &SchemaError{Code: "P1000", Message: "Authentication failed"}
	ErrConnectionFailed     = &SchemaError{Code: "P1001", Message: "Database not reachable"}
	ErrDatabaseNotFound     = &SchemaError{Code: "P1003", Message: "Database does not exist"}
	ErrTimeout              = &SchemaError{Code: "P1008", Message: "Operation timeout"}
	ErrEnvVarNotSet         = &SchemaError{Code: "P1011", Message: "Environment variable not found"}
	ErrValidation           = &SchemaError{Code: "P1012", Message: "Schema validation error"}
	ErrConfigNotFound       = &SchemaError{Code: "P1012", Message: "Configuration file not found"}
)

// New cria um SchemaError com código, mensagem e causa
func New(code, message string, cause error) *SchemaError {
	return &SchemaError{Code: code, Message: message, cause: cause}
}

// Wrap cria um novo erro com o código e mensagem do sentinel e a causa dada
func Wrap(sentinel *SchemaError, cause error) *SchemaError {
	return &SchemaError{Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

func IsEnvVarNotSet(err error) bool {
	return errors.Is(err, ErrEnvVarNotSet)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// NewValidationError cria um erro de validação de schema
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewEnvVarError cria um erro de variável de ambiente não definida
func NewEnvVarError(name string) error {
	return fmt.Errorf("%w: %s", ErrEnvVarNotSet, name)
}

func isAuthFailure(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "authentication failed") ||
		strings.Contains(errStr, "password authentication") ||
		strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "28p01") ||
		strings.Contains(errStr, "1045")
}

func isDatabaseNotFound(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "does not exist") ||
		strings.Contains(errStr, "unknown database") ||
		strings.Contains(errStr, "3d000") ||
		strings.Contains(errStr, "1049")
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "timed out") ||
		strings.Contains(errStr, "deadline exceeded")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable")
}

// MapDriverError traduz erros de driver de banco para erros com código Prisma.
// Usado pelo datasource ao testar a conexão declarada no schema.
func MapDriverError(err error) error {
	if err == nil {
		return nil
	}

	if isAuthFailure(err) {
		return Wrap(ErrAuthenticationFailed, err)
	}
	if isDatabaseNotFound(err) {
		return Wrap(ErrDatabaseNotFound, err)
	}
	if isTimeout(err) {
		return Wrap(ErrTimeout, err)
	}
	if isConnectionError(err) {
		return Wrap(ErrConnectionFailed, err)
	}

	return Wrap(ErrConnectionFailed, err)
}
