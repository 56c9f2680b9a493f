package lisp

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mansalskog/BadLisp/symbol"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LSymbol
	LNumber
	LString
	LPair
	LBuiltin
	LLambda
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LSymbol:  "symbol",
	LNumber:  "number",
	LString:  "string",
	LPair:    "pair",
	LBuiltin: "builtin",
	LLambda:  "lambda",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value.  The empty list (nil) is represented by a nil *LVal
// and not by any LValType.
//
// LVals are created by a Runtime, which registers them with its Heap.  A value
// must not be used after the Heap has freed it.
type LVal struct {
	Type LValType

	// Sym is the interned name of an LSymbol.  Str holds the text of both
	// LSymbol and LString values.
	Sym symbol.ID
	Str string
	Num float64

	// Car and Cdr are the head and tail of an LPair.
	Car *LVal
	Cdr *LVal

	// Builtin is the native function of an LBuiltin.
	Builtin *langBuiltin

	// Formals and Body make up an LLambda.
	Formals *LVal
	Body    *LVal

	// Refs is the number of counted references held to the value.
	Refs int

	id    uint64
	freed bool
}

// TypeName returns the name of v's type, or "nil" if v is the empty value.
func (v *LVal) TypeName() string {
	if v == nil {
		return "nil"
	}
	return v.Type.String()
}

// IsPair returns true if v is a cons cell.
func (v *LVal) IsPair() bool {
	return v != nil && v.Type == LPair
}

// IsSpecialOp returns true if v is a builtin that receives its arguments
// unevaluated.
func (v *LVal) IsSpecialOp() bool {
	return v != nil && v.Type == LBuiltin && v.Builtin.special
}

// ID returns the opaque identity assigned to v when it was allocated.
func (v *LVal) ID() uint64 {
	if v == nil {
		return 0
	}
	return v.id
}

// Freed returns true if the Heap that owned v has released it.
func (v *LVal) Freed() bool {
	return v != nil && v.freed
}

// Len returns the number of elements in the list v.  Len returns false if v is
// not a proper list.
func (v *LVal) Len() (int, bool) {
	n := 0
	for ; v != nil; v = v.Cdr {
		if v.Type != LPair {
			return n, false
		}
		n++
	}
	return n, true
}

// Slice returns the elements of the proper list v.  Slice returns false if v
// is not a proper list.
func (v *LVal) Slice() ([]*LVal, bool) {
	n, ok := v.Len()
	if !ok {
		return nil, false
	}
	cells := make([]*LVal, 0, n)
	for ; v != nil; v = v.Cdr {
		cells = append(cells, v.Car)
	}
	return cells, true
}

// Equal reports whether a and b are structurally equal.  Symbols compare by
// interned name, numbers by value, strings by content, pairs recursively and
// builtins and lambdas by identity.  Equal is meant for tests, which compare
// values produced by separate evaluations.
func Equal(a, b *LVal) bool {
	for {
		if a == b {
			return true
		}
		if a == nil || b == nil || a.Type != b.Type {
			return false
		}
		switch a.Type {
		case LSymbol:
			return a.Sym == b.Sym
		case LNumber:
			return a.Num == b.Num
		case LString:
			return a.Str == b.Str
		case LPair:
			if !Equal(a.Car, b.Car) {
				return false
			}
			a, b = a.Cdr, b.Cdr
		default:
			return false
		}
	}
}

// String returns the canonical textual form of v.
func (v *LVal) String() string {
	var buf bytes.Buffer
	writeExpr(&buf, v)
	return buf.String()
}

// DebugString returns the textual form of v annotated with the identity and
// reference count of every node.
func (v *LVal) DebugString() string {
	var buf bytes.Buffer
	writeDebugExpr(&buf, v)
	return buf.String()
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func writeExpr(buf *bytes.Buffer, v *LVal) {
	if v == nil {
		buf.WriteString("()")
		return
	}
	switch v.Type {
	case LSymbol:
		buf.WriteString(v.Str)
	case LNumber:
		buf.WriteString(formatNumber(v.Num))
	case LString:
		buf.WriteByte('"')
		buf.WriteString(v.Str)
		buf.WriteByte('"')
	case LPair:
		buf.WriteByte('(')
		for v != nil && v.Type == LPair {
			writeExpr(buf, v.Car)
			v = v.Cdr
			if v != nil && v.Type == LPair {
				buf.WriteByte(' ')
			}
		}
		if v != nil {
			buf.WriteString(" . ")
			writeExpr(buf, v)
		}
		buf.WriteByte(')')
	case LBuiltin:
		buf.WriteString("[builtin ")
		buf.WriteString(v.Builtin.name)
		buf.WriteByte(']')
	case LLambda:
		buf.WriteString("(lambda ")
		writeExpr(buf, v.Formals)
		buf.WriteByte(' ')
		writeExpr(buf, v.Body)
		buf.WriteByte(')')
	default:
		fmt.Fprintf(buf, "%#v", v)
	}
}

func writeDebugExpr(buf *bytes.Buffer, v *LVal) {
	buf.WriteByte('[')
	if v == nil {
		buf.WriteString("nil")
	} else {
		fmt.Fprintf(buf, "%#x %s with %d refs: ", v.id, v.Type, v.Refs)
		if v.Type == LPair {
			buf.WriteByte('(')
			writeDebugExpr(buf, v.Car)
			buf.WriteString(" . ")
			writeDebugExpr(buf, v.Cdr)
			buf.WriteByte(')')
		} else {
			writeExpr(buf, v)
		}
	}
	buf.WriteByte(']')
}
