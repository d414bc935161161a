package logging

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// OperationError records which step of a request failed.
type OperationError struct {
	Operation string
	RequestID string
	Err       error
}

func (e *OperationError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	if e.RequestID == "" {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s (request_id=%s): %v", e.Operation, e.RequestID, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewOperationError tags err with the failing operation. It returns nil for a
// nil err so call sites can wrap unconditionally.
func NewOperationError(operation, requestID string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Operation: operation, RequestID: requestID, Err: err}
}

// ErrorFields describes err for a log line, lifting the operation name out of
// an OperationError anywhere in the chain.
func ErrorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	fields := []zap.Field{zap.Error(err)}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		fields = append(fields, zap.String("operation", opErr.Operation))
	}
	return fields
}
