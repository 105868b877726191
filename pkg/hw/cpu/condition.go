package cpu

// Comparison operators accepted by IF
type Comparison uint8

const (
	Comparison_Equal Comparison = iota
	Comparison_NotEqual
	Comparison_Greater
	Comparison_Less
	Comparison_GreaterEqual
	Comparison_LessEqual
)

var comparisonSymbols = map[string]Comparison{
	"==": Comparison_Equal,
	"!=": Comparison_NotEqual,
	">":  Comparison_Greater,
	"<":  Comparison_Less,
	">=": Comparison_GreaterEqual,
	"<=": Comparison_LessEqual,
}

func ParseComparison(symbol string) (Comparison, error) {
	if cmp, ok := comparisonSymbols[symbol]; ok {
		return cmp, nil
	}

	return 0, makeError(ErrInvalidCondition, "unknown comparison operator '%v'", symbol)
}

func (c Comparison) String() string {
	switch c {
	case Comparison_Equal:
		return "=="
	case Comparison_NotEqual:
		return "!="
	case Comparison_Greater:
		return ">"
	case Comparison_Less:
		return "<"
	case Comparison_GreaterEqual:
		return ">="
	case Comparison_LessEqual:
		return "<="
	}

	panic("unreachable")
}

// Eval compares two unsigned 8 bit values
func (c Comparison) Eval(lhs uint8, rhs uint8) bool {
	switch c {
	case Comparison_Equal:
		return lhs == rhs
	case Comparison_NotEqual:
		return lhs != rhs
	case Comparison_Greater:
		return lhs > rhs
	case Comparison_Less:
		return lhs < rhs
	case Comparison_GreaterEqual:
		return lhs >= rhs
	case Comparison_LessEqual:
		return lhs <= rhs
	}

	panic("unreachable")
}

// Condition is the comparison guarding an IF instruction
type Condition struct {
	Lhs Register
	Cmp Comparison
	Rhs Operand
}
