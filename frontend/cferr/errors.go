package cferr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/coeffects/frontend/ir"
)

// enableDebugErrorPrinting makes errors include where they were created when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	TypeMismatch
	InvalidConstraint
	Unexpected
	NonTermination
)

func (c ErrCode) String() string {
	switch c {
	case TypeMismatch:
		return "type-mismatch"
	case InvalidConstraint:
		return "invalid-constraint"
	case Unexpected:
		return "unexpected"
	case NonTermination:
		return "non-termination"
	default:
		return "unclassified"
	}
}

// SolveError is a terminal failure of a solve call
type SolveError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) SolveError
	getStack() []byte
}

func FormatWithCode(e SolveError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if lines := strings.Split(stack, "\n"); !enableDebugFullStacktrace && len(lines) > 6 {
			stack = lines[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E SolveError](err E) SolveError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the ErrCode of err if it is a SolveError, and None otherwise
func CodeOf(err error) ErrCode {
	var e SolveError
	if errors.As(err, &e) {
		return e.Code()
	}
	return None
}

type NewTypeMismatch struct {
	First  ir.Type
	Second ir.Type
	// Reason is optional
	Reason string
	stack  []byte
}

func (e NewTypeMismatch) Error() string {
	msg := fmt.Sprintf("type mismatch: cannot unify '%v' with '%v'", ir.TypeString(e.First), ir.TypeString(e.Second))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) SolveError {
	e.stack = stack
	return e
}

// NewInvalidConstraint is a coeffect constraint no rule of the active analysis can solve
type NewInvalidConstraint struct {
	Label  string
	First  ir.Coeffect
	Second ir.Coeffect
	stack  []byte
}

func (e NewInvalidConstraint) Error() string {
	return fmt.Sprintf("%s: cannot solve '%v' = '%v'", e.Label, ir.CoeffectString(e.First), ir.CoeffectString(e.Second))
}
func (e NewInvalidConstraint) Code() ErrCode    { return InvalidConstraint }
func (e NewInvalidConstraint) getStack() []byte { return e.stack }
func (e NewInvalidConstraint) withStack(stack []byte) SolveError {
	e.stack = stack
	return e
}

// NewUnexpected signals a bug upstream, like a coeffect reaching an evaluator that must never see it
type NewUnexpected struct {
	Message string
	stack   []byte
}

func (e NewUnexpected) Error() string {
	return fmt.Sprintf("unexpected state: %s", e.Message)
}
func (e NewUnexpected) Code() ErrCode    { return Unexpected }
func (e NewUnexpected) getStack() []byte { return e.stack }
func (e NewUnexpected) withStack(stack []byte) SolveError {
	e.stack = stack
	return e
}

// NewNonTermination is returned when a solver runs out of fuel, which happens
// for cyclic or non-monotone constraints
type NewNonTermination struct {
	Operation string
	Fuel      int
	stack     []byte
}

func (e NewNonTermination) Error() string {
	return fmt.Sprintf("%s did not terminate after %d steps", e.Operation, e.Fuel)
}
func (e NewNonTermination) Code() ErrCode    { return NonTermination }
func (e NewNonTermination) getStack() []byte { return e.stack }
func (e NewNonTermination) withStack(stack []byte) SolveError {
	e.stack = stack
	return e
}
