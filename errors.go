package kernelsat

import "github.com/gopherlabs/kernelsat/internal/engine"

// Re-exported so callers can errors.Is/errors.As against a Builder's
// failures without importing the internal engine package directly.
var (
	ErrVariableIsZero = engine.ErrVariableIsZero
	ErrTooManyClauses = engine.ErrTooManyClauses
	ErrTooFewClauses  = engine.ErrTooFewClauses
)

// ErrVariableTooLarge is returned by Builder.AddClause when a literal names
// a variable beyond the declared count.
type ErrVariableTooLarge = engine.ErrVariableTooLarge
