package engine

import (
	"fmt"

	"github.com/gopherlabs/kernelsat/internal/bits"
	"github.com/pkg/errors"
)

// The four structured error kinds the core exposes upward. Wrapped with
// github.com/pkg/errors.WithStack at the call site so a caller debugging a
// rejected AddClause/Solve call gets a stack trace, while errors.Is still
// sees through to these sentinels.
var (
	ErrVariableIsZero = errors.New("engine: literal 0 is not permitted inside a clause body")
	ErrTooManyClauses = errors.New("engine: add clause called past the declared clause count")
	ErrTooFewClauses  = errors.New("engine: solve called before the declared clause count was reached")
)

// ErrVariableTooLarge reports a literal whose variable exceeds the
// problem's declared variable count N.
type ErrVariableTooLarge struct {
	Lit bits.Lit
}

func (e *ErrVariableTooLarge) Error() string {
	return fmt.Sprintf("engine: literal %d exceeds the declared variable count", e.Lit)
}
