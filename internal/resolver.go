package internal

import "fmt"

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInitializer
	fnMethod
	fnGetter
	fnStatic
	fnLambda
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSub
)

// varState tracks whether a name has finished its initializer
type varState struct {
	defined bool
}

// resolver walks the tree once before execution, recording for every
// local variable reference how many scopes separate it from its
// declaration. Globals are left out of the table.
type resolver struct {
	state  *interpreterState
	locals map[int]int
	scopes []map[string]*varState

	currentFunction functionKind
	currentClass    classKind
	inStatic        bool
	loopDepth       int
	switchDepth     int
}

func newResolver(state *interpreterState) *resolver {
	return &resolver{
		state:  state,
		locals: make(map[int]int),
	}
}

func (r *resolver) resolve(stmts []stmt) map[int]int {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *resolver) resolveStmts(stmts []stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]*varState))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.lexeme]; ok {
		r.state.setError(fmt.Errorf("%w: %s", errAlreadyDeclared, name.lexeme), name.line, 0)
	}
	scope[name.lexeme] = &varState{}
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = &varState{defined: true}
}

func (r *resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveStmt(s stmt) {
	switch st := s.(type) {
	case *exprStmt:
		r.resolveExpr(st.expression)
	case *printStmt:
		r.resolveExpr(st.expression)
	case *varStmt:
		r.declare(st.name)
		if st.initializer != nil {
			r.resolveExpr(st.initializer)
		}
		r.define(st.name.lexeme)
	case *blockStmt:
		r.beginScope()
		r.resolveStmts(st.stmts)
		r.endScope()
	case *ifStmt:
		r.resolveExpr(st.condition)
		r.resolveStmt(st.thenBranch)
		if st.elseBranch != nil {
			r.resolveStmt(st.elseBranch)
		}
	case *whileStmt:
		r.resolveExpr(st.condition)
		r.loopDepth++
		r.resolveStmt(st.body)
		r.loopDepth--
	case *classicForStmt:
		r.resolveFor(st)
	case *returnStmt:
		r.resolveReturn(st)
	case *breakStmt:
		if r.loopDepth == 0 && r.switchDepth == 0 {
			r.state.setError(errBreakOutside, st.keyword.line, 0)
		}
	case *continueStmt:
		if r.loopDepth == 0 {
			r.state.setError(errContinueOutside, st.keyword.line, 0)
		}
	case *switchStmt:
		r.resolveSwitch(st)
	case *tryCatchStmt:
		r.beginScope()
		r.resolveStmts(st.tryBody)
		r.endScope()

		r.beginScope()
		r.declare(st.name)
		r.define(st.name.lexeme)
		r.resolveStmts(st.catchBody)
		r.endScope()
	case *throwStmt:
		r.resolveExpr(st.value)
	case *fnStmt:
		r.declare(st.name)
		r.define(st.name.lexeme)
		r.resolveFunction(st.params, st.rest, st.body, fnFunction)
	case *classStmt:
		r.resolveClass(st)
	}
}

func (r *resolver) resolveFor(st *classicForStmt) {
	r.beginScope()
	defer r.endScope()
	if st.initializer != nil {
		r.resolveStmt(st.initializer)
	}
	if st.condition != nil {
		r.resolveExpr(st.condition)
	}
	if st.increment != nil {
		r.resolveExpr(st.increment)
	}
	r.loopDepth++
	r.resolveStmt(st.body)
	r.loopDepth--
}

func (r *resolver) resolveReturn(st *returnStmt) {
	if r.currentFunction == fnNone {
		r.state.setError(errReturnOutsideFunction, st.keyword.line, 0)
	}
	if st.value != nil {
		if r.currentFunction == fnInitializer {
			r.state.setError(errReturnFromInit, st.keyword.line, 0)
		}
		r.resolveExpr(st.value)
	}
}

func (r *resolver) resolveSwitch(st *switchStmt) {
	r.resolveExpr(st.discriminant)
	for _, c := range st.cases {
		if c.value != nil {
			r.resolveExpr(c.value)
		}
	}
	r.switchDepth++
	r.beginScope()
	for _, c := range st.cases {
		r.resolveStmts(c.body)
	}
	r.endScope()
	r.switchDepth--
}

func (r *resolver) resolveClass(st *classStmt) {
	enclosingClass, enclosingStatic := r.currentClass, r.inStatic
	r.currentClass = classPlain
	defer func() {
		r.currentClass, r.inStatic = enclosingClass, enclosingStatic
	}()

	r.declare(st.name)
	r.define(st.name.lexeme)

	if st.superclass != nil {
		if st.superclass.name.lexeme == st.name.lexeme {
			r.state.setError(errSelfInheritance, st.superclass.name.line, 0)
		}
		r.currentClass = classSub
		r.resolveExpr(st.superclass)

		r.beginScope()
		r.define("super")
		defer r.endScope()
	}

	seen := make(map[string]bool)
	for _, m := range st.staticMethods {
		if seen["static "+m.name.lexeme] {
			r.state.setError(fmt.Errorf("%w: %s", errDuplicateMethod, m.name.lexeme), m.name.line, 0)
		}
		seen["static "+m.name.lexeme] = true

		r.inStatic = true
		r.resolveFunction(m.params, m.rest, m.body, fnStatic)
		r.inStatic = false
	}

	r.inStatic = false
	r.beginScope()
	r.define("this")
	for _, m := range st.methods {
		if seen[m.name.lexeme] {
			r.state.setError(fmt.Errorf("%w: %s", errDuplicateMethod, m.name.lexeme), m.name.line, 0)
		}
		seen[m.name.lexeme] = true

		kind := fnMethod
		if m.isGetter {
			kind = fnGetter
		}
		if m.name.lexeme == "init" {
			if m.isGetter {
				r.state.setError(errGetterInit, m.name.line, 0)
			}
			kind = fnInitializer
		}
		r.resolveFunction(m.params, m.rest, m.body, kind)
	}
	r.endScope()
}

// resolveFunction resolves a function body. Parameters and body share one
// scope; loops and switches of the enclosing function are not visible.
func (r *resolver) resolveFunction(params []*token, rest *token, body []stmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	loopDepth, switchDepth := r.loopDepth, r.switchDepth
	r.currentFunction = kind
	r.loopDepth, r.switchDepth = 0, 0
	defer func() {
		r.currentFunction = enclosingFunction
		r.loopDepth, r.switchDepth = loopDepth, switchDepth
	}()

	r.beginScope()
	r.declareParams(params, rest)
	r.resolveStmts(body)
	r.endScope()
}

func (r *resolver) declareParams(params []*token, rest *token) {
	for _, param := range params {
		r.declare(param)
		r.define(param.lexeme)
	}
	if rest != nil {
		r.declare(rest)
		r.define(rest.lexeme)
	}
}

func (r *resolver) resolveExpr(ex expr) {
	switch x := ex.(type) {
	case *literalExpr:
	case *groupingExpr:
		r.resolveExpr(x.expression)
	case *variableExpr:
		if len(r.scopes) > 0 {
			if vs, ok := r.scopes[len(r.scopes)-1][x.name.lexeme]; ok && !vs.defined {
				r.state.setError(errReadInInitializer, x.name.line, 0)
			}
		}
		r.resolveLocal(x.id, x.name.lexeme)
	case *assignExpr:
		r.resolveExpr(x.value)
		r.resolveLocal(x.id, x.name.lexeme)
	case *thisExpr:
		switch {
		case r.currentClass == classNone:
			r.state.setError(errThisOutsideClass, x.keyword.line, 0)
			return
		case r.inStatic:
			r.state.setError(errThisInStatic, x.keyword.line, 0)
			return
		}
		r.resolveLocal(x.id, "this")
	case *superExpr:
		switch {
		case r.currentClass == classNone:
			r.state.setError(errSuperOutsideClass, x.keyword.line, 0)
			return
		case r.currentClass != classSub:
			r.state.setError(errSuperWithoutSuperclass, x.keyword.line, 0)
			return
		case r.inStatic:
			r.state.setError(errSuperInStatic, x.keyword.line, 0)
			return
		}
		r.resolveLocal(x.id, "super")
	case *unaryExpr:
		r.resolveExpr(x.right)
	case *binaryExpr:
		r.resolveExpr(x.left)
		r.resolveExpr(x.right)
	case *logicalExpr:
		r.resolveExpr(x.left)
		r.resolveExpr(x.right)
	case *callExpr:
		r.resolveExpr(x.callee)
		r.resolveExprs(x.arguments)
	case *getExpr:
		r.resolveExpr(x.object)
	case *setExpr:
		r.resolveExpr(x.value)
		r.resolveExpr(x.object)
	case *arrayExpr:
		r.resolveExprs(x.elements)
	case *mapExpr:
		r.resolveExprs(x.elements)
	case *indexExpr:
		r.resolveExpr(x.object)
		r.resolveExpr(x.index)
	case *sliceExpr:
		r.resolveExpr(x.object)
		if x.first != nil {
			r.resolveExpr(x.first)
		}
		if x.second != nil {
			r.resolveExpr(x.second)
		}
	case *indexSetExpr:
		r.resolveExpr(x.object)
		r.resolveExpr(x.index)
		r.resolveExpr(x.value)
	case *lambdaExpr:
		r.resolveLambda(x)
	case *spreadExpr:
		r.resolveExpr(x.expression)
	}
}

func (r *resolver) resolveExprs(exprs []expr) {
	for _, ex := range exprs {
		r.resolveExpr(ex)
	}
}

func (r *resolver) resolveLambda(x *lambdaExpr) {
	enclosingFunction := r.currentFunction
	loopDepth, switchDepth := r.loopDepth, r.switchDepth
	r.currentFunction = fnLambda
	r.loopDepth, r.switchDepth = 0, 0
	defer func() {
		r.currentFunction = enclosingFunction
		r.loopDepth, r.switchDepth = loopDepth, switchDepth
	}()

	r.beginScope()
	r.declareParams(x.params, x.rest)
	r.resolveExpr(x.body)
	r.endScope()
}
