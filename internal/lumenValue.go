package internal

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a runtime value. A nil Value is the language's nil, every other
// value is one of the lumen* types declared in this package.
type Value interface {
	typeName() string
}

type lumenNumber float64

type lumenString string

type lumenBool bool

func (lumenNumber) typeName() string { return "number" }

func (lumenString) typeName() string { return "string" }

func (lumenBool) typeName() string { return "bool" }

func typeOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.typeName()
}

func truthy(value Value) bool {
	switch v := value.(type) {
	case nil:
		return false
	case lumenBool:
		return bool(v)
	default:
		return true
	}
}

// isEqual compares numbers, strings and booleans by value and every other
// value by identity. NaN is never equal to itself.
func isEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

func isIntegral(n lumenNumber) bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

func formatNumber(n lumenNumber) string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// stringify renders a value the way print shows it
func stringify(value Value) string {
	return newFormatter().format(value, false)
}

// repr renders a value the way it appears inside a collection, with strings
// quoted
func repr(value Value) string {
	return newFormatter().format(value, true)
}

type formatter struct {
	seen map[Value]bool
}

func newFormatter() *formatter {
	return &formatter{seen: make(map[Value]bool)}
}

func (f *formatter) format(value Value, quote bool) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case lumenBool:
		if v {
			return "true"
		}
		return "false"
	case lumenNumber:
		return formatNumber(v)
	case lumenString:
		if quote {
			return strconv.Quote(string(v))
		}
		return string(v)
	case *lumenArray:
		if f.seen[v] {
			return "[...]"
		}
		f.seen[v] = true
		defer delete(f.seen, v)
		parts := make([]string, len(v.elements))
		for i, el := range v.elements {
			parts[i] = f.format(el, true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *lumenMap:
		if f.seen[v] {
			return "{...}"
		}
		f.seen[v] = true
		defer delete(f.seen, v)
		keys := v.sortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = f.format(k, true) + ": " + f.format(v.entries[k], true)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *lumenClass:
		return "<class " + v.name + ">"
	case *lumenInstance:
		return "<" + v.class.name + " instance>"
	case *userFunction:
		return v.String()
	case *lambdaFunction:
		return v.String()
	case *nativeFn:
		return v.String()
	}
	return "<unknown>"
}

// keyRank orders map keys of different types: booleans, numbers, strings
func keyRank(v Value) int {
	switch v.(type) {
	case lumenBool:
		return 0
	case lumenNumber:
		return 1
	default:
		return 2
	}
}

func sortValues(keys []Value) {
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := keyRank(keys[i]), keyRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		switch a := keys[i].(type) {
		case lumenBool:
			return !bool(a) && bool(keys[j].(lumenBool))
		case lumenNumber:
			return a < keys[j].(lumenNumber)
		case lumenString:
			return a < keys[j].(lumenString)
		}
		return false
	})
}
