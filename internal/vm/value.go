package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType identifies the variant stored in a Value.
type ValueType uint8

const (
	ValNull ValueType = iota
	ValInt
	ValFloat
	ValBool
	ValString
	ValFunc
	ValArray
)

// FloatEqualityEpsilon is the tolerance used when comparing floats for
// equality.
const FloatEqualityEpsilon = 2.220446049250313e-16

// Value is a stack-allocated tagged union. Small primitives live in Data,
// strings in Str, functions and arrays behind Obj.
type Value struct {
	Type ValueType
	Data uint64 // int64 bits, float64 bits, or bool (0/1)
	Str  string
	Obj  any // *Function or *Array
}

// Constructors

func NullVal() Value {
	return Value{Type: ValNull}
}

func IntVal(v int64) Value {
	return Value{Type: ValInt, Data: uint64(v)}
}

func FloatVal(v float64) Value {
	return Value{Type: ValFloat, Data: math.Float64bits(v)}
}

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func StringVal(s string) Value {
	return Value{Type: ValString, Str: s}
}

func FuncVal(fn *Function) Value {
	return Value{Type: ValFunc, Obj: fn}
}

func ArrayVal(a *Array) Value {
	return Value{Type: ValArray, Obj: a}
}

// Accessors

func (v Value) AsInt() int64 {
	return int64(v.Data)
}

func (v Value) AsFloat() float64 {
	return math.Float64frombits(v.Data)
}

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsString() string {
	return v.Str
}

func (v Value) AsFunction() *Function {
	fn, _ := v.Obj.(*Function)
	return fn
}

func (v Value) AsArray() *Array {
	a, _ := v.Obj.(*Array)
	return a
}

// Type checking helpers

func (v Value) IsNull() bool   { return v.Type == ValNull }
func (v Value) IsInt() bool    { return v.Type == ValInt }
func (v Value) IsFloat() bool  { return v.Type == ValFloat }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsString() bool { return v.Type == ValString }
func (v Value) IsFunc() bool   { return v.Type == ValFunc }
func (v Value) IsArray() bool  { return v.Type == ValArray }

// TypeName returns the variant name used in error messages.
func (v Value) TypeName() string {
	switch v.Type {
	case ValNull:
		return "null"
	case ValInt:
		return "integer"
	case ValFloat:
		return "float"
	case ValBool:
		return "boolean"
	case ValString:
		return "string"
	case ValFunc:
		return "function"
	case ValArray:
		return "array"
	default:
		return "unknown"
	}
}

// Equals compares two values of the same variant. Floats compare within
// FloatEqualityEpsilon, functions by name, arrays element-wise.
// Mismatched variants are never equal.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValNull:
		return true
	case ValInt, ValBool:
		return v.Data == other.Data
	case ValFloat:
		return math.Abs(v.AsFloat()-other.AsFloat()) < FloatEqualityEpsilon
	case ValString:
		return v.Str == other.Str
	case ValFunc:
		a, b := v.AsFunction(), other.AsFunction()
		return a != nil && b != nil && a.Name == b.Name
	case ValArray:
		a, b := v.AsArray(), other.AsArray()
		if a == nil || b == nil || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !a.Elements[i].Equals(b.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Inspect renders the value the way puts/print display it.
func (v Value) Inspect() string {
	switch v.Type {
	case ValNull:
		return "null"
	case ValInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case ValFloat:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64)
	case ValBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValString:
		return v.Str
	case ValFunc:
		if fn := v.AsFunction(); fn != nil {
			return fmt.Sprintf("<fn %s>", fn.Name)
		}
		return "<fn>"
	case ValArray:
		a := v.AsArray()
		if a == nil {
			return "[]"
		}
		elems := make([]string, len(a.Elements))
		for i, e := range a.Elements {
			elems[i] = e.Inspect()
		}
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return "unknown"
	}
}
