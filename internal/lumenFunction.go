package internal

import "fmt"

// callable is implemented by every value that can appear before a call's
// parentheses. An arity of -1 accepts any number of arguments.
type callable interface {
	Value
	arity() int
	call(exec *exec, arguments []Value) (Value, error)
}

// method is a callable that can live in a class method table
type method interface {
	callable
	bind(this Value) method
	isGetter() bool
}

type userFunction struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

type lambdaFunction struct {
	declaration *lambdaExpr
	closure     *env
}

type nativeFn struct {
	name       string
	arityValue int
	getter     bool
	this       Value
	callFn     func(exec *exec, this Value, arguments []Value) (Value, error)
}

func (f *userFunction) typeName() string { return "function" }

func (f *lambdaFunction) typeName() string { return "function" }

func (n *nativeFn) typeName() string { return "function" }

// bindParameters binds positional arguments in order and collects trailing
// ones into a fresh array when the callable is variadic
func (e *exec) bindParameters(environment *env, params []*token, rest *token, arguments []Value) {
	for i, param := range params {
		var arg Value
		if i < len(arguments) {
			arg = arguments[i]
		}
		environment.define(param.lexeme, arg)
	}
	if rest == nil {
		return
	}
	trailing := make([]Value, 0)
	if len(arguments) > len(params) {
		trailing = append(trailing, arguments[len(params):]...)
	}
	environment.define(rest.lexeme, e.newArray(trailing))
}

func (f *userFunction) arity() int {
	if f.declaration.rest != nil {
		return -1
	}
	return len(f.declaration.params)
}

func (f *userFunction) call(exec *exec, arguments []Value) (Value, error) {
	environment := newEnv(f.closure)
	exec.bindParameters(environment, f.declaration.params, f.declaration.rest, arguments)

	result, err := exec.executeBlock(f.declaration.body, environment)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	if result.kind == completionReturn {
		return result.value, nil
	}
	return nil, nil
}

func (f *userFunction) bind(this Value) method {
	environment := newEnv(f.closure)
	environment.define("this", this)
	return &userFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *userFunction) isGetter() bool {
	return f.declaration.isGetter
}

func (f *userFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}

func (f *lambdaFunction) arity() int {
	if f.declaration.rest != nil {
		return -1
	}
	return len(f.declaration.params)
}

func (f *lambdaFunction) call(exec *exec, arguments []Value) (Value, error) {
	environment := newEnv(f.closure)
	exec.bindParameters(environment, f.declaration.params, f.declaration.rest, arguments)
	return exec.evaluateIn(f.declaration.body, environment)
}

func (f *lambdaFunction) String() string {
	return "<fn lambda>"
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []Value) (Value, error) {
	return n.callFn(exec, n.this, arguments)
}

func (n *nativeFn) bind(this Value) method {
	bound := *n
	bound.this = this
	return &bound
}

func (n *nativeFn) isGetter() bool {
	return n.getter
}

func (n *nativeFn) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}

// callableName is used in stack traces
func callableName(fn callable) string {
	switch f := fn.(type) {
	case *userFunction:
		return f.declaration.name.lexeme
	case *lambdaFunction:
		return "lambda"
	case *nativeFn:
		return f.name
	case *lumenClass:
		return f.name
	}
	return "?"
}
