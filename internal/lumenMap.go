package internal

import (
	"fmt"
	"math"
)

type lumenMap struct {
	lumenInstance
	entries map[Value]Value
}

func (m *lumenMap) typeName() string { return "map" }

func (e *exec) newMap() *lumenMap {
	return &lumenMap{
		lumenInstance: lumenInstance{class: e.mapClass, fields: make(map[string]Value)},
		entries:       make(map[Value]Value),
	}
}

func newMapClass() *lumenClass {
	class := newClass("Map", nil)
	class.alloc = func(exec *exec, class *lumenClass) Value {
		m := exec.newMap()
		m.class = class
		return m
	}
	class.methods["init"] = &nativeFn{
		name: "init",
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			return this, nil
		},
	}
	class.methods["keys"] = &nativeFn{
		name: "keys",
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			return exec.newArray(this.(*lumenMap).sortedKeys()), nil
		},
	}
	class.methods["values"] = &nativeFn{
		name: "values",
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			m := this.(*lumenMap)
			keys := m.sortedKeys()
			values := make([]Value, len(keys))
			for i, k := range keys {
				values[i] = m.entries[k]
			}
			return exec.newArray(values), nil
		},
	}
	class.methods["length"] = &nativeFn{
		name:   "length",
		getter: true,
		callFn: func(exec *exec, this Value, arguments []Value) (Value, error) {
			return lumenNumber(len(this.(*lumenMap).entries)), nil
		},
	}
	return class
}

func checkMapKey(key Value, tk *token) error {
	switch k := key.(type) {
	case lumenString, lumenBool:
		return nil
	case lumenNumber:
		if !math.IsNaN(float64(k)) {
			return nil
		}
	}
	return newRuntimeError(tk, fmt.Errorf("%w: %s", errInvalidMapKey, repr(key)))
}

// get yields nil for keys that are not present
func (m *lumenMap) get(key Value, tk *token) (Value, error) {
	if err := checkMapKey(key, tk); err != nil {
		return nil, err
	}
	return m.entries[key], nil
}

func (m *lumenMap) set(key Value, value Value, tk *token) error {
	if err := checkMapKey(key, tk); err != nil {
		return err
	}
	m.entries[key] = value
	return nil
}

func (m *lumenMap) sortedKeys() []Value {
	keys := make([]Value, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sortValues(keys)
	return keys
}
