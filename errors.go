package chocosql

import (
	"errors"

	"github.com/biyonik/go-choco-sql/dialect"
)

// Sentinel errors for go-choco-sql.
// These errors can be checked using errors.Is().
var (
	// ErrUnsupportedLiteralKind is returned when a value has no SQL literal form.
	ErrUnsupportedLiteralKind = dialect.ErrUnsupportedLiteralKind

	// ErrOpenGroup is returned when a query is built from inside a Subquery part.
	ErrOpenGroup = dialect.ErrOpenGroup

	// ErrUnsafeLiteral is returned in strict mode for text literals containing a quote.
	ErrUnsafeLiteral = errors.New("chocosql: text literal contains a quote character")

	// ErrInvalidIdentifier is returned in strict mode when a table or field name is malformed.
	ErrInvalidIdentifier = errors.New("chocosql: invalid SQL identifier")

	// ErrInvalidOperator is returned in strict mode when an unsupported operator is used.
	ErrInvalidOperator = errors.New("chocosql: invalid SQL operator")

	// ErrNoExecutor is returned when a query is executed on a builder without a connection.
	ErrNoExecutor = errors.New("chocosql: builder has no connection")

	// ErrInvalidConfig is returned when connection settings are incomplete.
	ErrInvalidConfig = errors.New("chocosql: invalid connection config")

	// ErrConnectionClosed is returned when trying to use a closed connection.
	ErrConnectionClosed = errors.New("chocosql: connection closed")
)

// QueryError wraps a failure of the execution collaborator with the query text.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Op != "" {
		return "chocosql: " + e.Op + ": " + e.Err.Error()
	}
	return "chocosql: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError with context.
func NewQueryError(op, query string, err error) *QueryError {
	return &QueryError{
		Op:    op,
		Query: query,
		Err:   err,
	}
}

// ValidationError represents a strict-mode validation failure.
type ValidationError struct {
	Value    string
	Context  string
	Reason   string
	sentinel error
}

func (e *ValidationError) Error() string {
	return "chocosql: invalid " + e.Context + " '" + e.Value + "': " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel
}

// NewValidationError creates a ValidationError matching ErrInvalidIdentifier.
func NewValidationError(value, context, reason string) *ValidationError {
	return &ValidationError{
		Value:    value,
		Context:  context,
		Reason:   reason,
		sentinel: ErrInvalidIdentifier,
	}
}

func newOperatorError(op, reason string) *ValidationError {
	return &ValidationError{
		Value:    op,
		Context:  "operator",
		Reason:   reason,
		sentinel: ErrInvalidOperator,
	}
}

func newUnsafeLiteralError(text string) *ValidationError {
	return &ValidationError{
		Value:    text,
		Context:  "literal",
		Reason:   "quote characters are not escaped",
		sentinel: ErrUnsafeLiteral,
	}
}
