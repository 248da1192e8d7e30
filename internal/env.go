package internal

import "fmt"

type env struct {
	enclosing *env
	values    map[string]Value
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]Value),
	}
}

// get only looks at the local map, resolved locals go through getAt
func (e *env) get(name *token) (Value, error) {
	if value, ok := e.values[name.lexeme]; ok {
		return value, nil
	}
	return nil, newRuntimeError(name, fmt.Errorf("%w: %s", errUndefinedVar, name.lexeme))
}

func (e *env) define(name string, value Value) {
	e.values[name] = value
}

func (e *env) assign(name *token, value Value) error {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return nil
	}
	return newRuntimeError(name, fmt.Errorf("%w: %s", errUndefinedVar, name.lexeme))
}

func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance; i++ {
		environment = environment.enclosing
	}
	return environment
}

func (e *env) getAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

func (e *env) assignAt(distance int, name string, value Value) {
	e.ancestor(distance).values[name] = value
}
