package internal

import "fmt"

type lumenArray struct {
	lumenInstance
	elements []Value
}

func (a *lumenArray) typeName() string { return "array" }

func (e *exec) newArray(elements []Value) *lumenArray {
	return &lumenArray{
		lumenInstance: lumenInstance{class: e.arrayClass, fields: make(map[string]Value)},
		elements:      elements,
	}
}

func newArrayClass() *lumenClass {
	class := newClass("Array", nil)
	class.alloc = func(exec *exec, class *lumenClass) Value {
		array := exec.newArray(make([]Value, 0))
		array.class = class
		return array
	}
	class.methods["init"] = &nativeFn{
		name: "init",
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			return this, nil
		},
	}
	class.methods["push"] = &nativeFn{
		name:       "push",
		arityValue: 1,
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			array := this.(*lumenArray)
			array.elements = append(array.elements, arguments[0])
			return lumenNumber(len(array.elements)), nil
		},
	}
	class.methods["pop"] = &nativeFn{
		name:       "pop",
		arityValue: 0,
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			array := this.(*lumenArray)
			if len(array.elements) == 0 {
				return nil, errEmptyArray
			}
			last := array.elements[len(array.elements)-1]
			array.elements[len(array.elements)-1] = nil
			array.elements = array.elements[:len(array.elements)-1]
			return last, nil
		},
	}
	class.methods["length"] = &nativeFn{
		name:   "length",
		getter: true,
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			return lumenNumber(len(this.(*lumenArray).elements)), nil
		},
	}
	return class
}

// toIndex accepts only non-negative integral numbers
func toIndex(value Value, tk *token) (int, error) {
	n, ok := value.(lumenNumber)
	if !ok || !isIntegral(n) || n < 0 {
		return 0, newRuntimeError(tk, fmt.Errorf("%w: %s", errInvalidIndex, repr(value)))
	}
	return int(n), nil
}

func (a *lumenArray) get(index Value, tk *token) (Value, error) {
	i, err := toIndex(index, tk)
	if err != nil {
		return nil, err
	}
	if i >= len(a.elements) {
		return nil, newRuntimeError(tk, fmt.Errorf("%w: %d", errIndexOutOfRange, i))
	}
	return a.elements[i], nil
}

func (a *lumenArray) set(index Value, value Value, tk *token) error {
	i, err := toIndex(index, tk)
	if err != nil {
		return err
	}
	if i >= len(a.elements) {
		return newRuntimeError(tk, fmt.Errorf("%w: %d", errIndexOutOfRange, i))
	}
	a.elements[i] = value
	return nil
}

// sliceBounds resolves the half-open range [first:second) of a sequence of
// the given length. A missing start is 0, a missing end is the length; the
// end is clamped to the length and a start past the end gives an empty range.
func sliceBounds(first, second Value, length int, tk *token) (int, int, error) {
	start, end := 0, length
	if first != nil {
		i, err := toIndex(first, tk)
		if err != nil {
			return 0, 0, err
		}
		start = i
	}
	if second != nil {
		i, err := toIndex(second, tk)
		if err != nil {
			return 0, 0, err
		}
		end = i
	}
	if end > length {
		end = length
	}
	if start > end {
		start = end
	}
	return start, end, nil
}
