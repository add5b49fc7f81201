package calc

// Operator identifies a binary arithmetic operation awaiting its right-hand operand.
type Operator int

const (
	// OpNone means no operator is pending.
	OpNone Operator = iota
	// OpAdd is addition.
	OpAdd
	// OpSub is subtraction.
	OpSub
	// OpMul is multiplication.
	OpMul
	// OpDiv is division; dividing by zero yields 0.
	OpDiv
)

// String returns the keypad symbol of the operator.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return ""
	}
}

// evaluate applies op to a and b. Division by zero resolves to 0 instead of Inf or NaN.
func evaluate(a, b float64, op Operator) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	default:
		return b
	}
}
