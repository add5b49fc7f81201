// Package calc implements the calculator engine: an input-driven state machine that
// chains binary operations strictly left to right and keeps a display string.
//
// Every handler is total. Edge cases such as division by zero, repeated decimal points
// or an equals press with nothing pending resolve to a defined value or a no-op.
package calc

import (
	"math"
	"strings"
)

const initialDisplay = "0"

// Phase is the state of the engine derived from its fields.
type Phase int

const (
	// PhaseIdle means no chain is in progress and the display is being edited in place.
	PhaseIdle Phase = iota
	// PhaseOperand means a chain is in progress and the right-hand operand is being typed.
	PhaseOperand
	// PhaseOperatorPending means an operator was just pressed; the next digit starts a new number.
	PhaseOperatorPending
	// PhaseResult means equals was just pressed; the display holds the result of the chain.
	PhaseResult
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseOperand:
		return "operand"
	case PhaseOperatorPending:
		return "operator-pending"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// chain is the accumulator together with the operator awaiting its right-hand operand.
// Keeping them in one value means neither can exist without the other.
type chain struct {
	acc float64
	op  Operator
}

// State is a copy of the engine fields.
type State struct {
	// Display is the stored, unformatted display string.
	Display string
	// Accumulator is the running result, nil when no chain is in progress.
	Accumulator *float64
	// Operator is the pending operator, OpNone when no chain is in progress.
	Operator Operator
	// AwaitingOperand is set after an operator or equals press until the next digit.
	AwaitingOperand bool
}

// Engine holds the state of one calculator session. It is not safe for concurrent use.
type Engine struct {
	display         string
	pending         *chain
	awaitingOperand bool
}

// New returns an engine in its reset state.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// Reset restores the initial state: display "0", no chain, not awaiting an operand.
func (e *Engine) Reset() {
	e.display = initialDisplay
	e.pending = nil
	e.awaitingOperand = false
}

// InputDigit appends d to the display, or starts a new number after an operator or equals.
// Runes outside '0'..'9' are ignored.
func (e *Engine) InputDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	digit := string(d)
	if e.awaitingOperand {
		e.display = digit
		e.awaitingOperand = false
		return
	}
	if e.display == initialDisplay {
		e.display = digit
		return
	}
	e.display += digit
}

// InputDecimalPoint adds a decimal point unless the display already has one.
func (e *Engine) InputDecimalPoint() {
	if e.awaitingOperand {
		e.display = "0."
		e.awaitingOperand = false
		return
	}
	if !strings.Contains(e.display, ".") {
		e.display += "."
	}
}

// InputOperator applies the pending operator to the displayed operand, if a chain exists,
// and makes op the new pending operator.
func (e *Engine) InputOperator(op Operator) {
	if op == OpNone {
		return
	}
	x := parseNumber(e.display)
	if e.pending == nil {
		e.pending = &chain{acc: x}
	} else {
		acc := e.pending.acc
		// An overflowed chain (Inf*0 and friends) restarts from zero.
		if math.IsNaN(acc) {
			acc = 0
		}
		e.pending.acc = evaluate(acc, x, e.pending.op)
		e.display = stringify(e.pending.acc)
	}
	e.pending.op = op
	e.awaitingOperand = true
}

// InputEquals completes the chain and shows its result. Without a chain it does nothing.
func (e *Engine) InputEquals() {
	if e.pending == nil {
		return
	}
	x := parseNumber(e.display)
	e.display = stringify(evaluate(e.pending.acc, x, e.pending.op))
	e.pending = nil
	e.awaitingOperand = true
}

// ToggleSign adds or strips a leading minus. A display of exactly "0" is left alone.
func (e *Engine) ToggleSign() {
	if e.display == initialDisplay {
		return
	}
	if strings.HasPrefix(e.display, "-") {
		e.display = e.display[1:]
		return
	}
	e.display = "-" + e.display
}

// InputPercent divides the displayed value by 100.
func (e *Engine) InputPercent() {
	e.display = stringify(parseNumber(e.display) / 100)
}

// Display returns the stored display string.
func (e *Engine) Display() string {
	return e.display
}

// Formatted returns the display as FormatForDisplay renders it.
func (e *Engine) Formatted() string {
	return FormatForDisplay(e.display)
}

// Phase reports the current state of the engine.
func (e *Engine) Phase() Phase {
	switch {
	case e.pending != nil && e.awaitingOperand:
		return PhaseOperatorPending
	case e.pending != nil:
		return PhaseOperand
	case e.awaitingOperand:
		return PhaseResult
	default:
		return PhaseIdle
	}
}

// Snapshot returns a copy of the engine fields.
func (e *Engine) Snapshot() State {
	st := State{
		Display:         e.display,
		Operator:        OpNone,
		AwaitingOperand: e.awaitingOperand,
	}
	if e.pending != nil {
		acc := e.pending.acc
		st.Accumulator = &acc
		st.Operator = e.pending.op
	}
	return st
}
