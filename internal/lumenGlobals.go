package internal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

func defineGlobals(e *exec) {
	e.arrayClass = newArrayClass()
	e.mapClass = newMapClass()
	e.errorClass = newErrorClass()

	e.globals.define("Array", e.arrayClass)
	e.globals.define("Map", e.mapClass)
	e.globals.define("Error", e.errorClass)

	defineFn(e.globals, "clock", 0, clockFn)
	defineFn(e.globals, "len", 1, lenFn)
	defineFn(e.globals, "str", 1, strFn)
	defineFn(e.globals, "num", 1, numFn)
	defineFn(e.globals, "type", 1, typeFn)
	defineFn(e.globals, "read", 0, readFn)
	defineFn(e.globals, "println", -1, printlnFn)

	defineStrings(e.globals)
	defineEnv(e.globals)
}

func defineFn(environment *env, name string, arity int, fn func(exec *exec, this Value, arguments []Value) (Value, error)) {
	environment.define(name, &nativeFn{
		name:       name,
		arityValue: arity,
		callFn:     fn,
	})
}

func clockFn(exec *exec, this Value, arguments []Value) (Value, error) {
	return lumenNumber(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}

func lenFn(exec *exec, this Value, arguments []Value) (Value, error) {
	switch v := arguments[0].(type) {
	case lumenString:
		return lumenNumber(v.length()), nil
	case *lumenArray:
		return lumenNumber(len(v.elements)), nil
	case *lumenMap:
		return lumenNumber(len(v.entries)), nil
	}
	return nil, fmt.Errorf("%w: len of %s", errInvalidArgument, typeOf(arguments[0]))
}

func strFn(exec *exec, this Value, arguments []Value) (Value, error) {
	return lumenString(stringify(arguments[0])), nil
}

func numFn(exec *exec, this Value, arguments []Value) (Value, error) {
	switch v := arguments[0].(type) {
	case lumenNumber:
		return v, nil
	case lumenString:
		n, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: can't convert %s to number", errInvalidArgument, repr(v))
		}
		return lumenNumber(n), nil
	}
	return nil, fmt.Errorf("%w: can't convert %s to number", errInvalidArgument, typeOf(arguments[0]))
}

func typeFn(exec *exec, this Value, arguments []Value) (Value, error) {
	return lumenString(typeOf(arguments[0])), nil
}

func readFn(exec *exec, this Value, arguments []Value) (Value, error) {
	line, err := exec.input.ReadString('\n')
	if err == io.EOF && line == "" {
		return nil, nil
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return lumenString(strings.TrimRight(line, "\r\n")), nil
}

func printlnFn(exec *exec, this Value, arguments []Value) (Value, error) {
	parts := make([]string, len(arguments))
	for i, arg := range arguments {
		parts[i] = stringify(arg)
	}
	exec.printer.Println(strings.Join(parts, " "))
	return nil, nil
}

// newErrorClass returns the base class of caught faults. User classes may
// inherit from it and call super.init(message).
func newErrorClass() *lumenClass {
	class := newClass("Error", nil)
	class.methods["init"] = &nativeFn{
		name:       "init",
		arityValue: -1,
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			obj, ok := instanceOf(this)
			if !ok {
				return nil, errExpectedFields
			}
			var message Value = lumenString("")
			if len(arguments) > 0 {
				message = arguments[0]
			}
			obj.fields["message"] = message
			return this, nil
		},
	}
	return class
}

func stringArg(arguments []Value, i int) (lumenString, error) {
	s, ok := arguments[i].(lumenString)
	if !ok {
		return "", fmt.Errorf("%w: expected string but got %s", errInvalidArgument, typeOf(arguments[i]))
	}
	return s, nil
}

func nativeStatic(class *lumenClass, name string, arity int, fn func(exec *exec, this Value, arguments []Value) (Value, error)) {
	class.staticMethods[name] = &nativeFn{
		name:       name,
		arityValue: arity,
		callFn:     fn,
	}
}

func defineStrings(environment *env) {
	class := newClass("strings", nil)
	nativeStatic(class, "lower", 1, func(exec *exec, this Value, arguments []Value) (Value, error) {
		str, err := stringArg(arguments, 0)
		if err != nil {
			return nil, err
		}
		return lumenString(strings.ToLower(string(str))), nil
	})
	nativeStatic(class, "upper", 1, func(exec *exec, this Value, arguments []Value) (Value, error) {
		str, err := stringArg(arguments, 0)
		if err != nil {
			return nil, err
		}
		return lumenString(strings.ToUpper(string(str))), nil
	})
	nativeStatic(class, "ord", 1, func(exec *exec, this Value, arguments []Value) (Value, error) {
		str, err := stringArg(arguments, 0)
		if err != nil {
			return nil, err
		}
		if str == "" {
			return nil, fmt.Errorf("%w: ord of empty string", errInvalidArgument)
		}
		r, _ := utf8.DecodeRuneInString(string(str))
		return lumenNumber(r), nil
	})
	nativeStatic(class, "chr", 1, func(exec *exec, this Value, arguments []Value) (Value, error) {
		n, ok := arguments[0].(lumenNumber)
		if !ok || !isIntegral(n) || n < 0 || n > utf8.MaxRune {
			return nil, fmt.Errorf("%w: chr of %s", errInvalidArgument, repr(arguments[0]))
		}
		return lumenString(rune(n)), nil
	})
	environment.define("strings", class)
}

func defineEnv(environment *env) {
	class := newClass("env", nil)
	nativeStatic(class, "get", 1, func(exec *exec, this Value, arguments []Value) (Value, error) {
		name, err := stringArg(arguments, 0)
		if err != nil {
			return nil, err
		}
		value, ok := os.LookupEnv(string(name))
		if !ok {
			return nil, nil
		}
		return lumenString(value), nil
	})
	nativeStatic(class, "set", 2, func(exec *exec, this Value, arguments []Value) (Value, error) {
		name, err := stringArg(arguments, 0)
		if err != nil {
			return nil, err
		}
		value, err := stringArg(arguments, 1)
		if err != nil {
			return nil, err
		}
		return nil, os.Setenv(string(name), string(value))
	})
	environment.define("env", class)
}
