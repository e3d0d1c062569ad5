// Package calc implements the arithmetic input reducer behind the amount
// entry widget: a small state machine fed digit/operator actions that keeps
// a display string plus one pending operand and operator.
package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// State is the calculator's full state. The zero value is not valid; use
// NewState.
type State struct {
	Display  string
	operator string
	operand  string
}

// NewState returns the initial calculator state displaying "0".
func NewState() State {
	return State{Display: "0"}
}

// Action is a single input to the calculator.
type Action interface {
	isAction()
}

// Digit appends a digit 0-9 to the current entry.
type Digit int

// Operator sets or chains a pending binary operator: "+", "-", "×" or "÷".
type Operator string

// Decimal appends a decimal point if the entry doesn't contain one yet.
type Decimal struct{}

// Percent resolves "operand op N%" as operand × (N/100).
type Percent struct{}

// Clear resets the calculator to its initial state.
type Clear struct{}

// Equals resolves the pending operation into the display.
type Equals struct{}

func (Digit) isAction()    {}
func (Operator) isAction() {}
func (Decimal) isAction()  {}
func (Percent) isAction()  {}
func (Clear) isAction()    {}
func (Equals) isAction()   {}

// Reduce applies one action to the state and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Digit:
		return s.digit(int(a))
	case Operator:
		return s.operatorInput(string(a))
	case Decimal:
		if !strings.Contains(s.Display, ".") {
			s.Display += "."
		}
		return s
	case Percent:
		return s.percent()
	case Clear:
		return NewState()
	case Equals:
		return s.equals()
	}
	return s
}

func (s State) digit(n int) State {
	d := digitString(n)
	switch {
	case s.operator == "" && s.operand != "":
		// A calculation just completed; a digit starts a fresh entry.
		s.Display = d
		s.operand = ""
	case s.Display == "0":
		s.Display = d
	default:
		s.Display += d
	}
	return s
}

func (s State) operatorInput(symbol string) State {
	switch {
	case s.operand == "":
		s.operand = s.Display
	case s.operator != "":
		// Chained operator: fold the pending operation first.
		s.operand = apply(s.operand, s.operator, s.Display)
	}
	// Otherwise a result is already held; the operator chains from it.
	s.operator = symbol
	s.Display = "0"
	return s
}

func (s State) percent() State {
	if s.operand == "" || s.operator == "" {
		return s
	}
	first, err1 := decimal.NewFromString(s.operand)
	second, err2 := decimal.NewFromString(s.Display)
	if err1 != nil || err2 != nil {
		return NewState()
	}
	s.Display = formatResult(first.Mul(second.Div(decimal.NewFromInt(100))))
	s.operand = s.Display
	s.operator = ""
	return s
}

func (s State) equals() State {
	if s.operand == "" || s.operator == "" {
		return s
	}
	s.Display = apply(s.operand, s.operator, s.Display)
	// Holding the result in operand lets the next digit start a fresh
	// entry while an operator keeps chaining from the result.
	s.operand = s.Display
	s.operator = ""
	return s
}

// apply evaluates "first op second" and formats the result. Division by
// zero yields 0.
func apply(first, op, second string) string {
	a, err1 := decimal.NewFromString(first)
	b, err2 := decimal.NewFromString(second)
	if err1 != nil || err2 != nil {
		return "0"
	}

	var result decimal.Decimal
	switch op {
	case "+":
		result = a.Add(b)
	case "-":
		result = a.Sub(b)
	case "×":
		result = a.Mul(b)
	case "÷":
		if b.IsZero() {
			result = decimal.Zero
		} else {
			result = a.DivRound(b, 10)
		}
	default:
		result = b
	}
	return formatResult(result)
}

// formatResult renders whole results without a fraction and fractional ones
// rounded to two places with trailing zeros trimmed.
func formatResult(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	rounded := d.Round(2)
	if rounded.IsInteger() {
		return rounded.Truncate(0).String()
	}
	return rounded.String()
}

func digitString(n int) string {
	if n < 0 || n > 9 {
		return "0"
	}
	return string(rune('0' + n))
}
