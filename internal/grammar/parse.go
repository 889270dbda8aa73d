package grammar

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var cbufParser = participle.MustBuild[File](
	participle.Lexer(cbufLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse recognizes the cbuf concrete syntax (spec §4.2) and returns the raw
// element list. The grammar is unambiguous by construction, so a successful
// parse always yields exactly one tree; EmptyParseError is returned when
// that tree carries no declarations at all.
func Parse(text string) (*File, error) {
	file, err := cbufParser.ParseString("", text)
	if err != nil {
		var pe participle.Error
		if errors.As(err, &pe) {
			pos := pe.Position()
			return nil, &SyntaxError{Line: pos.Line, Col: pos.Column, Msg: pe.Message()}
		}
		return nil, &SyntaxError{Line: 0, Col: 0, Msg: err.Error()}
	}

	if len(file.Elements) == 0 {
		return nil, &EmptyParseError{}
	}

	return file, nil
}

// EvalArith constant-folds an array-length expression (spec §4.2: "+ - * /
// and parentheses on numeric literals"). The result must be a non-negative
// integer.
func EvalArith(e *ArithExpr) (int, error) {
	if e == nil {
		return 0, nil
	}
	v, err := evalArithExpr(e)
	if err != nil {
		return 0, err
	}
	n := int(v)
	if float64(n) != v || n < 0 {
		return 0, fmt.Errorf("array length must be a non-negative integer, got %v", v)
	}
	return n, nil
}

func evalArithExpr(e *ArithExpr) (float64, error) {
	v, err := evalArithTerm(e.Head)
	if err != nil {
		return 0, err
	}
	for _, op := range e.Rest {
		rhs, err := evalArithTerm(op.Term)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "+":
			v += rhs
		case "-":
			v -= rhs
		}
	}
	return v, nil
}

func evalArithTerm(t *ArithTerm) (float64, error) {
	v, err := evalArithFactor(t.Head)
	if err != nil {
		return 0, err
	}
	for _, op := range t.Rest {
		rhs, err := evalArithFactor(op.Factor)
		if err != nil {
			return 0, err
		}
		switch op.Op {
		case "*":
			v *= rhs
		case "/":
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero in array length expression")
			}
			v /= rhs
		}
	}
	return v, nil
}

func evalArithFactor(f *ArithFactor) (float64, error) {
	switch {
	case f.Number != nil:
		return *f.Number, nil
	case f.Paren != nil:
		return evalArithExpr(f.Paren)
	default:
		return 0, fmt.Errorf("malformed array length expression")
	}
}
