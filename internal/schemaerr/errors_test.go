package schemaerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(ErrConnectionFailed, cause)

	if !errors.Is(err, ErrConnectionFailed) {
		t.Error("wrapped error must match its sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error must unwrap to its cause")
	}
	if err.Code != "P1001" {
		t.Errorf("expected code P1001, got %s", err.Code)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("model 'User' has no unique criterion")

	if !IsValidation(err) {
		t.Error("expected a validation error")
	}
	if err.Error() != "Schema validation error: model 'User' has no unique criterion" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNewEnvVarError(t *testing.T) {
	err := NewEnvVarError("DATABASE_URL")

	if !IsEnvVarNotSet(err) {
		t.Error("expected an env var error")
	}
	if !errors.Is(err, ErrEnvVarNotSet) {
		t.Error("expected errors.Is to match ErrEnvVarNotSet")
	}
}

func TestMapDriverError(t *testing.T) {
	tests := []struct {
		driverErr string
		sentinel  *SchemaError
	}{
		{"FATAL: password authentication failed for user \"app\" (SQLSTATE 28P01)", ErrAuthenticationFailed},
		{"Error 1045: Access denied for user 'root'@'localhost'", ErrAuthenticationFailed},
		{"FATAL: database \"app\" does not exist (SQLSTATE 3D000)", ErrDatabaseNotFound},
		{"Error 1049: Unknown database 'app'", ErrDatabaseNotFound},
		{"context deadline exceeded", ErrTimeout},
		{"dial tcp 127.0.0.1:5432: connect: connection refused", ErrConnectionFailed},
		{"some other driver failure", ErrConnectionFailed},
	}

	for _, tt := range tests {
		mapped := MapDriverError(fmt.Errorf("%s", tt.driverErr))
		if !errors.Is(mapped, tt.sentinel) {
			t.Errorf("%q: expected %s, got %v", tt.driverErr, tt.sentinel.Code, mapped)
		}
	}
}

func TestMapDriverErrorNil(t *testing.T) {
	if MapDriverError(nil) != nil {
		t.Error("nil must map to nil")
	}
}
