package internal

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion is the result of executing a statement. Anything other than
// completionNormal unwinds enclosing statements until a function call
// (return) or a loop or switch (break, continue) consumes it.
type completion struct {
	kind  completionKind
	value Value
}

var normal = completion{kind: completionNormal}

type exec struct {
	state *interpreterState

	globals *env
	env     *env
	locals  map[int]int

	printer IPrinter
	input   *bufio.Reader
	log     *logrus.Entry

	depth    int
	maxDepth int
	echo     bool

	arrayClass *lumenClass
	mapClass   *lumenClass
	errorClass *lumenClass
}

func (e *exec) interpret(stmts []stmt) error {
	for _, s := range stmts {
		if exprSt, ok := s.(*exprStmt); ok && e.echo {
			value, err := e.evaluate(exprSt.expression)
			if err != nil {
				return err
			}
			e.printer.Println(stringify(value))
			continue
		}
		if _, err := e.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *exec) execute(s stmt) (completion, error) {
	switch st := s.(type) {
	case *exprStmt:
		return e.execExpr(st)
	case *printStmt:
		return e.execPrint(st)
	case *varStmt:
		return e.execVar(st)
	case *blockStmt:
		return e.execBlock(st)
	case *ifStmt:
		return e.execIf(st)
	case *whileStmt:
		return e.execWhile(st)
	case *classicForStmt:
		return e.execClassicFor(st)
	case *returnStmt:
		return e.execReturn(st)
	case *breakStmt:
		return completion{kind: completionBreak}, nil
	case *continueStmt:
		return completion{kind: completionContinue}, nil
	case *switchStmt:
		return e.execSwitch(st)
	case *tryCatchStmt:
		return e.execTryCatch(st)
	case *throwStmt:
		return e.execThrow(st)
	case *fnStmt:
		return e.execFn(st)
	case *classStmt:
		return e.execClass(st)
	}
	panic(fmt.Sprintf("unexpected statement %T", s))
}

func (e *exec) execExpr(stmt *exprStmt) (completion, error) {
	_, err := e.evaluate(stmt.expression)
	return normal, err
}

func (e *exec) execPrint(stmt *printStmt) (completion, error) {
	value, err := e.evaluate(stmt.expression)
	if err != nil {
		return normal, err
	}
	e.printer.Println(stringify(value))
	return normal, nil
}

func (e *exec) execVar(stmt *varStmt) (completion, error) {
	var val Value
	if stmt.initializer != nil {
		var err error
		if val, err = e.evaluate(stmt.initializer); err != nil {
			return normal, err
		}
	}
	e.env.define(stmt.name.lexeme, val)
	return normal, nil
}

func (e *exec) execBlock(stmt *blockStmt) (completion, error) {
	return e.executeBlock(stmt.stmts, newEnv(e.env))
}

func (e *exec) executeBlock(stmts []stmt, env *env) (completion, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		result, err := e.execute(s)
		if err != nil || result.kind != completionNormal {
			return result, err
		}
	}
	return normal, nil
}

func (e *exec) execIf(stmt *ifStmt) (completion, error) {
	condition, err := e.evaluate(stmt.condition)
	if err != nil {
		return normal, err
	}
	if truthy(condition) {
		return e.execute(stmt.thenBranch)
	}
	if stmt.elseBranch != nil {
		return e.execute(stmt.elseBranch)
	}
	return normal, nil
}

func (e *exec) execWhile(stmt *whileStmt) (completion, error) {
	for {
		condition, err := e.evaluate(stmt.condition)
		if err != nil {
			return normal, err
		}
		if !truthy(condition) {
			return normal, nil
		}
		result, err := e.execute(stmt.body)
		if err != nil {
			return normal, err
		}
		switch result.kind {
		case completionBreak:
			return normal, nil
		case completionReturn:
			return result, nil
		}
	}
}

func (e *exec) execClassicFor(stmt *classicForStmt) (completion, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = newEnv(previous)

	if stmt.initializer != nil {
		if _, err := e.execute(stmt.initializer); err != nil {
			return normal, err
		}
	}
	for {
		if stmt.condition != nil {
			condition, err := e.evaluate(stmt.condition)
			if err != nil {
				return normal, err
			}
			if !truthy(condition) {
				return normal, nil
			}
		}
		result, err := e.execute(stmt.body)
		if err != nil {
			return normal, err
		}
		switch result.kind {
		case completionBreak:
			return normal, nil
		case completionReturn:
			return result, nil
		}
		// continue falls through to the increment
		if stmt.increment != nil {
			if _, err := e.evaluate(stmt.increment); err != nil {
				return normal, err
			}
		}
	}
}

func (e *exec) execReturn(stmt *returnStmt) (completion, error) {
	var value Value
	if stmt.value != nil {
		var err error
		if value, err = e.evaluate(stmt.value); err != nil {
			return normal, err
		}
	}
	return completion{kind: completionReturn, value: value}, nil
}

func (e *exec) execSwitch(stmt *switchStmt) (completion, error) {
	discriminant, err := e.evaluate(stmt.discriminant)
	if err != nil {
		return normal, err
	}

	start, fallback := -1, -1
	for i, c := range stmt.cases {
		if c.value == nil {
			fallback = i
			continue
		}
		value, err := e.evaluate(c.value)
		if err != nil {
			return normal, err
		}
		if isEqual(discriminant, value) {
			start = i
			break
		}
	}
	if start < 0 {
		start = fallback
	}
	if start < 0 {
		return normal, nil
	}

	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = newEnv(previous)

	for _, c := range stmt.cases[start:] {
		for _, s := range c.body {
			result, err := e.execute(s)
			if err != nil {
				return normal, err
			}
			switch result.kind {
			case completionBreak:
				return normal, nil
			case completionReturn, completionContinue:
				return result, nil
			}
		}
	}
	return normal, nil
}

func (e *exec) execTryCatch(stmt *tryCatchStmt) (completion, error) {
	result, err := e.executeBlock(stmt.tryBody, newEnv(e.env))
	if err == nil {
		return result, nil
	}

	caught, ok := e.catchable(err)
	if !ok {
		return normal, err
	}
	e.log.WithError(err).WithField("file", e.state.absPath).Debug("caught error")

	catchEnv := newEnv(e.env)
	catchEnv.define(stmt.name.lexeme, caught)
	return e.executeBlock(stmt.catchBody, catchEnv)
}

// catchable turns thrown values and runtime faults into the value bound by
// a catch clause. Fatal errors are never caught.
func (e *exec) catchable(err error) (Value, bool) {
	var thrown *ThrowSignal
	if errors.As(err, &thrown) {
		return thrown.value, true
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return e.newError(runtimeErr), true
	}
	return nil, false
}

func (e *exec) execThrow(stmt *throwStmt) (completion, error) {
	value, err := e.evaluate(stmt.value)
	if err != nil {
		return normal, err
	}
	return normal, &ThrowSignal{token: stmt.keyword, value: value}
}

func (e *exec) execFn(stmt *fnStmt) (completion, error) {
	e.env.define(stmt.name.lexeme, &userFunction{
		declaration:   stmt,
		closure:       e.env,
		isInitializer: false,
	})
	return normal, nil
}

func (e *exec) execClass(stmt *classStmt) (completion, error) {
	var superclass *lumenClass
	if stmt.superclass != nil {
		value, err := e.evaluate(stmt.superclass)
		if err != nil {
			return normal, err
		}
		class, ok := value.(*lumenClass)
		if !ok {
			return normal, newRuntimeError(stmt.superclass.name, fmt.Errorf("%w: %s", errExpectedClass, stmt.name.lexeme))
		}
		superclass = class
	}

	e.env.define(stmt.name.lexeme, nil)

	methodEnv := e.env
	if superclass != nil {
		methodEnv = newEnv(e.env)
		methodEnv.define("super", superclass)
	}

	class := newClass(stmt.name.lexeme, superclass)
	for _, m := range stmt.methods {
		class.methods[m.name.lexeme] = &userFunction{
			declaration:   m,
			closure:       methodEnv,
			isInitializer: m.name.lexeme == "init",
		}
	}
	for _, m := range stmt.staticMethods {
		class.staticMethods[m.name.lexeme] = &userFunction{
			declaration: m,
			closure:     methodEnv,
		}
	}

	e.env.define(stmt.name.lexeme, class)
	return normal, nil
}

func (e *exec) evaluate(ex expr) (Value, error) {
	switch x := ex.(type) {
	case *literalExpr:
		return x.value, nil
	case *groupingExpr:
		return e.evaluate(x.expression)
	case *variableExpr:
		return e.lookUpVariable(x.name, x.id)
	case *assignExpr:
		return e.evalAssign(x)
	case *thisExpr:
		return e.lookUpVariable(x.keyword, x.id)
	case *superExpr:
		return e.evalSuper(x)
	case *unaryExpr:
		return e.evalUnary(x)
	case *binaryExpr:
		return e.evalBinary(x)
	case *logicalExpr:
		return e.evalLogical(x)
	case *callExpr:
		return e.evalCall(x)
	case *getExpr:
		return e.evalGet(x)
	case *setExpr:
		return e.evalSet(x)
	case *arrayExpr:
		return e.evalArray(x)
	case *mapExpr:
		return e.evalMap(x)
	case *indexExpr:
		return e.evalIndex(x)
	case *sliceExpr:
		return e.evalSlice(x)
	case *indexSetExpr:
		return e.evalIndexSet(x)
	case *lambdaExpr:
		return &lambdaFunction{declaration: x, closure: e.env}, nil
	case *spreadExpr:
		return e.evalSpread(x)
	}
	panic(fmt.Sprintf("unexpected expression %T", ex))
}

// evaluateIn evaluates an expression with env as the current scope
func (e *exec) evaluateIn(ex expr, env *env) (Value, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	return e.evaluate(ex)
}

func (e *exec) lookUpVariable(name *token, id int) (Value, error) {
	if distance, ok := e.locals[id]; ok {
		return e.env.getAt(distance, name.lexeme), nil
	}
	return e.globals.get(name)
}

func (e *exec) evalAssign(expr *assignExpr) (Value, error) {
	value, err := e.evaluate(expr.value)
	if err != nil {
		return nil, err
	}
	if distance, ok := e.locals[expr.id]; ok {
		e.env.assignAt(distance, expr.name.lexeme, value)
		return value, nil
	}
	if err := e.globals.assign(expr.name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (e *exec) evalSuper(expr *superExpr) (Value, error) {
	distance := e.locals[expr.id]
	superclass := e.env.getAt(distance, "super").(*lumenClass)
	object := e.env.getAt(distance-1, "this")

	method := superclass.findMethod(expr.method.lexeme)
	if method == nil {
		return nil, newRuntimeError(expr.method, fmt.Errorf("%w: %s", errMethodNotFound, expr.method.lexeme))
	}
	bound := method.bind(object)
	if bound.isGetter() {
		return e.call(bound, expr.method, nil)
	}
	return bound, nil
}

func (e *exec) evalUnary(expr *unaryExpr) (Value, error) {
	value, err := e.evaluate(expr.right)
	if err != nil {
		return nil, err
	}
	return e.unaryOp(expr.operator, value)
}

func (e *exec) evalBinary(expr *binaryExpr) (Value, error) {
	left, err := e.evaluate(expr.left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(expr.right)
	if err != nil {
		return nil, err
	}
	return e.binaryOp(expr.operator, left, right)
}

func (e *exec) evalLogical(expr *logicalExpr) (Value, error) {
	left, err := e.evaluate(expr.left)
	if err != nil {
		return nil, err
	}
	if expr.operator.token == tkOr {
		if truthy(left) {
			return left, nil
		}
	} else if !truthy(left) {
		return left, nil
	}
	return e.evaluate(expr.right)
}

func (e *exec) evalCall(expr *callExpr) (Value, error) {
	callee, err := e.evaluate(expr.callee)
	if err != nil {
		return nil, err
	}
	arguments, err := e.evaluateList(expr.arguments)
	if err != nil {
		return nil, err
	}

	fn, isFn := callee.(callable)
	if !isFn {
		return nil, newRuntimeError(expr.paren, fmt.Errorf("%w: %s", errOnlyFunction, typeOf(callee)))
	}

	if arity := fn.arity(); arity >= 0 && len(arguments) != arity {
		return nil, newRuntimeError(expr.paren, fmt.Errorf(
			"%w: expected %d but got %d", errInvalidNumberArguments, arity, len(arguments),
		))
	}

	return e.call(fn, expr.paren, arguments)
}

// call invokes fn on behalf of the call site tk, enforcing the call depth
// limit and attributing plain native errors to the call site
func (e *exec) call(fn callable, tk *token, arguments []Value) (Value, error) {
	e.depth++
	defer func() {
		e.depth--
	}()
	if e.depth > e.maxDepth {
		return nil, &FatalError{token: tk, err: fmt.Errorf("%w: more than %d nested calls", errStackOverflow, e.maxDepth)}
	}
	if e.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		e.log.WithFields(logrus.Fields{
			"fn":    callableName(fn),
			"line":  tk.line,
			"depth": e.depth,
		}).Trace("call")
	}

	value, err := fn.call(e, arguments)
	if err == nil {
		return value, nil
	}

	var runtimeErr *RuntimeError
	var thrown *ThrowSignal
	var fatal *FatalError
	switch {
	case errors.As(err, &runtimeErr):
		if _, native := fn.(*nativeFn); !native {
			runtimeErr.trace = append(runtimeErr.trace, fmt.Sprintf("in %s() called on line %d", callableName(fn), tk.line))
		}
		return nil, runtimeErr
	case errors.As(err, &thrown), errors.As(err, &fatal):
		return nil, err
	}
	return nil, newRuntimeError(tk, err)
}

func (e *exec) evalGet(expr *getExpr) (Value, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	return e.getProperty(object, expr.name)
}

func (e *exec) evalSet(expr *setExpr) (Value, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	value, err := e.evaluate(expr.value)
	if err != nil {
		return nil, err
	}
	if err := e.setProperty(object, expr.name, value); err != nil {
		return nil, err
	}
	return value, nil
}

// evaluateList evaluates call arguments and array elements, splicing the
// elements of spread arrays in place
func (e *exec) evaluateList(exprs []expr) ([]Value, error) {
	out := make([]Value, 0, len(exprs))
	for _, ex := range exprs {
		if spread, ok := ex.(*spreadExpr); ok {
			array, err := e.spreadArray(spread)
			if err != nil {
				return nil, err
			}
			out = append(out, array.elements...)
			continue
		}
		value, err := e.evaluate(ex)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

func (e *exec) spreadArray(expr *spreadExpr) (*lumenArray, error) {
	value, err := e.evaluate(expr.expression)
	if err != nil {
		return nil, err
	}
	array, ok := value.(*lumenArray)
	if !ok {
		return nil, newRuntimeError(expr.ellipsis, fmt.Errorf("%w: %s", errSpreadNonArray, typeOf(value)))
	}
	return array, nil
}

func (e *exec) evalSpread(expr *spreadExpr) (Value, error) {
	return e.spreadArray(expr)
}

func (e *exec) evalArray(expr *arrayExpr) (Value, error) {
	elements, err := e.evaluateList(expr.elements)
	if err != nil {
		return nil, err
	}
	return e.newArray(elements), nil
}

func (e *exec) evalMap(expr *mapExpr) (Value, error) {
	m := e.newMap()
	for i := 0; i < len(expr.elements)/2; i++ {
		key, err := e.evaluate(expr.elements[i*2])
		if err != nil {
			return nil, err
		}
		value, err := e.evaluate(expr.elements[i*2+1])
		if err != nil {
			return nil, err
		}
		if err := m.set(key, value, expr.curlyBrace); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (e *exec) evalIndex(expr *indexExpr) (Value, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	index, err := e.evaluate(expr.index)
	if err != nil {
		return nil, err
	}
	switch collection := object.(type) {
	case *lumenArray:
		return collection.get(index, expr.brace)
	case *lumenMap:
		return collection.get(index, expr.brace)
	case lumenString:
		return collection.get(index, expr.brace)
	}
	return nil, newRuntimeError(expr.brace, fmt.Errorf("%w: %s", errInvalidAccess, typeOf(object)))
}

func (e *exec) evalSlice(expr *sliceExpr) (Value, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	var first, second Value
	if expr.first != nil {
		if first, err = e.evaluate(expr.first); err != nil {
			return nil, err
		}
	}
	if expr.second != nil {
		if second, err = e.evaluate(expr.second); err != nil {
			return nil, err
		}
	}
	switch collection := object.(type) {
	case *lumenArray:
		start, end, err := sliceBounds(first, second, len(collection.elements), expr.brace)
		if err != nil {
			return nil, err
		}
		elements := make([]Value, end-start)
		copy(elements, collection.elements[start:end])
		return e.newArray(elements), nil
	case lumenString:
		return collection.slice(first, second, expr.brace)
	}
	return nil, newRuntimeError(expr.brace, fmt.Errorf("%w: %s", errInvalidSlice, typeOf(object)))
}

func (e *exec) evalIndexSet(expr *indexSetExpr) (Value, error) {
	object, err := e.evaluate(expr.object)
	if err != nil {
		return nil, err
	}
	index, err := e.evaluate(expr.index)
	if err != nil {
		return nil, err
	}
	value, err := e.evaluate(expr.value)
	if err != nil {
		return nil, err
	}
	switch collection := object.(type) {
	case *lumenArray:
		err = collection.set(index, value, expr.brace)
	case *lumenMap:
		err = collection.set(index, value, expr.brace)
	case lumenString:
		err = newRuntimeError(expr.brace, errImmutableString)
	default:
		err = newRuntimeError(expr.brace, fmt.Errorf("%w: %s", errInvalidAccess, typeOf(object)))
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// newError builds the Error instance a catch clause receives for a fault
func (e *exec) newError(runtimeErr *RuntimeError) Value {
	return &lumenInstance{
		class: e.errorClass,
		fields: map[string]Value{
			"message": lumenString(runtimeErr.Error()),
			"stack":   lumenString(runtimeErr.stack()),
			"line":    lumenNumber(runtimeErr.Line()),
		},
	}
}
