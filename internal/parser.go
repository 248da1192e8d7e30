package internal

// caseClause is one arm of a switch statement, value is nil for default
type caseClause struct {
	keyword *token
	value   expr
	body    []stmt
}

// parser stores parser data
type parser struct {
	current int

	state *interpreterState

	// nextID is shared by every parser of an interpreter so node ids stay
	// unique across REPL inputs
	nextID *int
}

const maxFunctionParams = 255

func (p *parser) newID() int {
	*p.nextID++
	return *p.nextID
}

func (p *parser) parse() {
	for !p.isAtEnd() {
		st := p.parseStmt()
		if st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) parseStmt() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() stmt {
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn(false)
	}
	if p.match(tkVar) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		class := p.consume(tkIdentifier, errExpectedSuperclassName)
		superclass = &variableExpr{
			id:   p.newID(),
			name: class,
		}
	}

	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)

	var methods []*fnStmt
	var staticMethods []*fnStmt
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		if p.match(tkStatic) {
			m := p.fn(true)
			m.isStatic = true
			staticMethods = append(staticMethods, m)
		} else {
			methods = append(methods, p.fn(true))
		}
	}

	p.consume(tkRightCurlyBrace, errExpectedClosingCurlyBrace)

	return &classStmt{
		name:          name,
		superclass:    superclass,
		methods:       methods,
		staticMethods: staticMethods,
	}
}

// fn parses a function declaration or a class member. Members declared
// without a parameter list are getters.
func (p *parser) fn(member bool) *fnStmt {
	errName := errExpectedFunctionName
	if member {
		errName = errExpectedMethodName
	}
	st := &fnStmt{
		name: p.consume(tkIdentifier, errName),
	}

	if member && p.check(tkLeftCurlyBrace) {
		st.isGetter = true
	} else {
		p.consume(tkLeftParen, errExpectedParen)
		st.params, st.rest = p.params()
		p.consume(tkRightParen, errUnclosedParen)
	}

	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)
	st.body = p.block()
	return st
}

// params parses a parameter list up to the closing parenthesis. The
// variadic parameter, if any, is returned apart.
func (p *parser) params() ([]*token, *token) {
	var params []*token
	var rest *token
	if p.check(tkRightParen) {
		return params, nil
	}
	for {
		if len(params) >= maxFunctionParams {
			p.state.setError(errMaxParameters, p.peek().line, 0)
		}
		if p.match(tkEllipsis) {
			rest = p.consume(tkIdentifier, errExpectedFunctionParam)
			if p.check(tkComma) {
				p.state.fatalError(errRestMustBeLast, rest.line, 0)
			}
			break
		}
		params = append(params, p.consume(tkIdentifier, errExpectedFunctionParam))
		if !p.match(tkComma) {
			break
		}
	}
	return params, rest
}

func (p *parser) varDecl() stmt {
	name := p.consume(tkIdentifier, errExpectedIdentifier)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		keyword := p.previous()
		p.consume(tkSemicolon, errExpectedSemicolon)
		return &breakStmt{keyword: keyword}
	}
	if p.match(tkContinue) {
		keyword := p.previous()
		p.consume(tkSemicolon, errExpectedSemicolon)
		return &continueStmt{keyword: keyword}
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkSwitch) {
		return p.switchStmt()
	}
	if p.match(tkTry) {
		return p.tryCatch()
	}
	if p.match(tkThrow) {
		keyword := p.previous()
		value := p.expression()
		p.consume(tkSemicolon, errExpectedSemicolon)
		return &throwStmt{keyword: keyword, value: value}
	}
	if p.match(tkLeftCurlyBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

func (p *parser) forLoop() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedParen)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDecl()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedParen)

	body := p.statement()

	return &classicForStmt{
		keyword:     keyword,
		initializer: init,
		condition:   cond,
		increment:   inc,
		body:        body,
	}
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}
	p.consume(tkLeftParen, errExpectedParen)
	st.condition = p.expression()
	p.consume(tkRightParen, errUnclosedParen)

	st.thenBranch = p.statement()
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}
	return st
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolon)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedParen)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedParen)
	body := p.statement()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) switchStmt() stmt {
	st := &switchStmt{
		keyword: p.previous(),
	}
	p.consume(tkLeftParen, errExpectedParen)
	st.discriminant = p.expression()
	p.consume(tkRightParen, errUnclosedParen)
	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)

	hasDefault := false
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		clause := &caseClause{}
		if p.match(tkCase) {
			clause.keyword = p.previous()
			clause.value = p.expression()
		} else if p.match(tkDefault) {
			clause.keyword = p.previous()
			if hasDefault {
				p.state.setError(errDuplicateDefault, clause.keyword.line, 0)
			}
			hasDefault = true
		} else {
			p.state.fatalError(errExpectedCase, p.peek().line, 0)
		}
		p.consume(tkColon, errExpectedCaseColon)

		for !p.check(tkCase) && !p.check(tkDefault) && !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
			clause.body = append(clause.body, p.declaration())
		}
		st.cases = append(st.cases, clause)
	}

	p.consume(tkRightCurlyBrace, errExpectedClosingCurlyBrace)
	return st
}

func (p *parser) tryCatch() stmt {
	st := &tryCatchStmt{
		keyword: p.previous(),
	}
	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)
	st.tryBody = p.block()

	p.consume(tkCatch, errExpectedCatch)
	p.consume(tkLeftParen, errExpectedParen)
	st.name = p.consume(tkIdentifier, errExpectedIdentifier)
	p.consume(tkRightParen, errUnclosedParen)

	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)
	st.catchBody = p.block()
	return st
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(tkRightCurlyBrace, errExpectedClosingCurlyBrace)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	st := &exprStmt{
		last:       p.previous(),
		expression: expr,
	}
	p.consume(tkSemicolon, errExpectedSemicolon)
	return st
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *variableExpr:
			return &assignExpr{
				id:    p.newID(),
				name:  target.name,
				value: value,
			}
		case *getExpr:
			return &setExpr{
				object: target.object,
				name:   target.name,
				value:  value,
			}
		case *indexExpr:
			return &indexSetExpr{
				object: target.object,
				brace:  target.brace,
				index:  target.index,
				value:  value,
			}
		}

		p.state.setError(errInvalidAssignment, equal.line, 0)
	}
	return expr
}

func (p *parser) array() expr {
	elements := p.arguments(tkRightBrace)
	brace := p.consume(tkRightBrace, errUnclosedBracket)
	return &arrayExpr{
		elements: elements,
		brace:    brace,
	}
}

func (p *parser) mapLiteral() expr {
	elements := p.mapElements()
	curlyBrace := p.consume(tkRightCurlyBrace, errUnclosedCurlyBrace)
	return &mapExpr{
		elements:   elements,
		curlyBrace: curlyBrace,
	}
}

// mapElements returns array of keys & values where keys
// are stored in even positions and values in odd positions
func (p *parser) mapElements() []expr {
	elements := make([]expr, 0)
	for !p.check(tkRightCurlyBrace) {
		key := p.expression()
		p.consume(tkColon, errExpectedColon)
		value := p.expression()
		elements = append(elements, key, value)
		if !p.match(tkComma) {
			break
		}
	}
	return elements
}

// access parses what follows '[': a single index or a slice
func (p *parser) access(object expr) expr {
	brace := p.previous()
	if p.match(tkColon) {
		slice := &sliceExpr{object: object, brace: brace}
		if !p.check(tkRightBrace) {
			slice.second = p.expression()
		}
		p.consume(tkRightBrace, errUnclosedIndex)
		return slice
	}

	first := p.expression()
	if p.match(tkColon) {
		slice := &sliceExpr{object: object, brace: brace, first: first}
		if !p.check(tkRightBrace) {
			slice.second = p.expression()
		}
		p.consume(tkRightBrace, errUnclosedIndex)
		return slice
	}

	p.consume(tkRightBrace, errUnclosedIndex)
	return &indexExpr{
		object: object,
		brace:  brace,
		index:  first,
	}
}

func (p *parser) binary(next func() expr, operators ...tokenType) expr {
	expr := next()
	for p.match(operators...) {
		operator := p.previous()
		right := next()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.bitOr()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.bitOr()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) bitOr() expr {
	return p.binary(p.bitXor, tkPipe)
}

func (p *parser) bitXor() expr {
	return p.binary(p.bitAnd, tkCaret)
}

func (p *parser) bitAnd() expr {
	return p.binary(p.equality, tkAmpersand)
}

func (p *parser) equality() expr {
	return p.binary(p.comparison, tkEqualEqual, tkBangEqual)
}

func (p *parser) comparison() expr {
	return p.binary(p.addition, tkGreater, tkGreaterEqual, tkLess, tkLessEqual)
}

func (p *parser) addition() expr {
	return p.binary(p.multiplication, tkPlus, tkMinus)
}

func (p *parser) multiplication() expr {
	return p.binary(p.unary, tkSlash, tkMod, tkStar)
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus, tkTilde) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.power()
}

// power is right associative and binds tighter than a unary minus on its left
func (p *parser) power() expr {
	expr := p.call()
	if p.match(tkPower) {
		operator := p.previous()
		right := p.unary()
		return &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else if p.match(tkLeftBrace) {
			expr = p.access(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := p.arguments(tkRightParen)
	paren := p.consume(tkRightParen, errUnclosedParen)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

// arguments parses a comma separated list of expressions, each of which may
// be spread with '...'
func (p *parser) arguments(tk tokenType) []expr {
	arguments := make([]expr, 0)
	if p.check(tk) {
		return arguments
	}
	for {
		if tk == tkRightParen && len(arguments) >= maxFunctionParams {
			p.state.setError(errMaxArguments, p.peek().line, 0)
		}
		if p.match(tkEllipsis) {
			arguments = append(arguments, &spreadExpr{
				ellipsis:   p.previous(),
				expression: p.expression(),
			})
		} else {
			arguments = append(arguments, p.expression())
		}
		if !p.match(tkComma) {
			break
		}
	}
	return arguments
}

func (p *parser) primary() expr {
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkFalse) {
		return &literalExpr{value: lumenBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: lumenBool(true)}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{id: p.newID(), name: p.previous()}
	}
	if p.check(tkLeftParen) && p.isLambda() {
		p.advance()
		return p.lambda()
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}
	if p.match(tkLeftBrace) {
		return p.array()
	}
	if p.match(tkLeftCurlyBrace) {
		return p.mapLiteral()
	}
	if p.match(tkThis) {
		return &thisExpr{id: p.newID(), keyword: p.previous()}
	}
	if p.match(tkSuper) {
		return p.superExpr()
	}

	p.state.fatalError(errUndefinedExpr, p.peek().line, 0)
	return &literalExpr{}
}

// isLambda reports whether the parenthesis at the current position opens a
// parameter list followed by an arrow. Scanning stops at the first token that
// can't appear in a parameter list.
func (p *parser) isLambda() bool {
	for i := p.current + 1; i < len(p.state.tokens); i++ {
		switch p.state.tokens[i].token {
		case tkIdentifier, tkComma, tkEllipsis:
			continue
		case tkRightParen:
			return i+1 < len(p.state.tokens) && p.state.tokens[i+1].token == tkArrow
		}
		return false
	}
	return false
}

func (p *parser) lambda() expr {
	st := &lambdaExpr{}
	st.params, st.rest = p.params()
	p.consume(tkRightParen, errUnclosedParen)
	st.arrow = p.consume(tkArrow, errExpectedArrow)
	st.body = p.expression()
	return st
}

func (p *parser) superExpr() expr {
	super := &superExpr{
		id:      p.newID(),
		keyword: p.previous(),
	}
	if !p.check(tkLeftParen) {
		p.consume(tkDot, errExpectedDot)
		super.method = p.consume(tkIdentifier, errExpectedMethodName)
	} else {
		super.method = &token{
			token:  tkIdentifier,
			lexeme: "init",
			line:   super.keyword.line,
		}
	}
	return super
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek().line, 0)
	return &token{}
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, tk := range tokens {
		if p.check(tk) {
			p.current++
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	return p.peek().token == tk
}

func (p *parser) peek() token {
	return p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}
		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn,
			tkSwitch, tkTry, tkThrow:
			return
		}
		p.advance()
	}
}
