package internal

import (
	"fmt"
	"strings"
)

// PrintTree renders every statement of the last parsed program as an
// S-expression, one per line
func (s *interpreterState) PrintTree() string {
	var sb strings.Builder
	v := stringVisitor{}
	for _, st := range s.stmts {
		sb.WriteString(v.stmt(st))
		sb.WriteString("\n")
	}
	return sb.String()
}

type stringVisitor struct{}

func (v stringVisitor) stmts(stmts []stmt) string {
	out := ""
	for _, st := range stmts {
		out += " " + v.stmt(st)
	}
	return out
}

func (v stringVisitor) params(params []*token, rest *token) string {
	names := make([]string, 0, len(params)+1)
	for _, param := range params {
		names = append(names, param.lexeme)
	}
	if rest != nil {
		names = append(names, "..."+rest.lexeme)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func (v stringVisitor) optExpr(ex expr) string {
	if ex == nil {
		return "nil"
	}
	return v.expr(ex)
}

func (v stringVisitor) optStmt(st stmt) string {
	if st == nil {
		return "nil"
	}
	return v.stmt(st)
}

func (v stringVisitor) stmt(s stmt) string {
	switch st := s.(type) {
	case *exprStmt:
		return v.expr(st.expression)
	case *printStmt:
		return fmt.Sprintf("(print %s)", v.expr(st.expression))
	case *varStmt:
		return fmt.Sprintf("(var %s %s)", st.name.lexeme, v.optExpr(st.initializer))
	case *blockStmt:
		return "(scope" + v.stmts(st.stmts) + ")"
	case *ifStmt:
		if st.elseBranch == nil {
			return fmt.Sprintf("(if %s %s)", v.expr(st.condition), v.stmt(st.thenBranch))
		}
		return fmt.Sprintf("(if %s %s %s)", v.expr(st.condition), v.stmt(st.thenBranch), v.stmt(st.elseBranch))
	case *whileStmt:
		return fmt.Sprintf("(while %s %s)", v.expr(st.condition), v.stmt(st.body))
	case *classicForStmt:
		return fmt.Sprintf(
			"(for %s %s %s %s)",
			v.optStmt(st.initializer),
			v.optExpr(st.condition),
			v.optExpr(st.increment),
			v.stmt(st.body),
		)
	case *returnStmt:
		if st.value == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", v.expr(st.value))
	case *breakStmt:
		return "(break)"
	case *continueStmt:
		return "(continue)"
	case *switchStmt:
		out := "(switch " + v.expr(st.discriminant)
		for _, c := range st.cases {
			if c.value == nil {
				out += " (default" + v.stmts(c.body) + ")"
			} else {
				out += " (case " + v.expr(c.value) + v.stmts(c.body) + ")"
			}
		}
		return out + ")"
	case *tryCatchStmt:
		return fmt.Sprintf("(try (scope%s) (catch %s%s))", v.stmts(st.tryBody), st.name.lexeme, v.stmts(st.catchBody))
	case *throwStmt:
		return fmt.Sprintf("(throw %s)", v.expr(st.value))
	case *fnStmt:
		return v.fn("fn", st)
	case *classStmt:
		out := "(class " + st.name.lexeme
		if st.superclass != nil {
			out += " < " + st.superclass.name.lexeme
		}
		for _, m := range st.staticMethods {
			out += " " + v.fn("static", m)
		}
		for _, m := range st.methods {
			kind := "method"
			if m.isGetter {
				kind = "getter"
			}
			out += " " + v.fn(kind, m)
		}
		return out + ")"
	}
	return fmt.Sprintf("<%T>", s)
}

func (v stringVisitor) fn(kind string, st *fnStmt) string {
	params := ""
	if !st.isGetter {
		params = " " + v.params(st.params, st.rest)
	}
	return "(" + kind + " " + st.name.lexeme + params + v.stmts(st.body) + ")"
}

func (v stringVisitor) exprs(exprs []expr) string {
	out := ""
	for _, ex := range exprs {
		out += " " + v.expr(ex)
	}
	return out
}

func (v stringVisitor) expr(e expr) string {
	switch ex := e.(type) {
	case *literalExpr:
		return repr(ex.value)
	case *groupingExpr:
		return v.expr(ex.expression)
	case *variableExpr:
		return ex.name.lexeme
	case *assignExpr:
		return fmt.Sprintf("(set %s %s)", ex.name.lexeme, v.expr(ex.value))
	case *thisExpr:
		return "this"
	case *superExpr:
		return "(super " + ex.method.lexeme + ")"
	case *unaryExpr:
		return fmt.Sprintf("(%s %s)", ex.operator.lexeme, v.expr(ex.right))
	case *binaryExpr:
		return fmt.Sprintf("(%s %s %s)", ex.operator.lexeme, v.expr(ex.left), v.expr(ex.right))
	case *logicalExpr:
		return fmt.Sprintf("(%s %s %s)", ex.operator.lexeme, v.expr(ex.left), v.expr(ex.right))
	case *callExpr:
		return "(call " + v.expr(ex.callee) + v.exprs(ex.arguments) + ")"
	case *getExpr:
		return fmt.Sprintf("(get %s %s)", v.expr(ex.object), ex.name.lexeme)
	case *setExpr:
		return fmt.Sprintf("(set (get %s %s) %s)", v.expr(ex.object), ex.name.lexeme, v.expr(ex.value))
	case *arrayExpr:
		return "(array" + v.exprs(ex.elements) + ")"
	case *mapExpr:
		return "(map" + v.exprs(ex.elements) + ")"
	case *indexExpr:
		return fmt.Sprintf("(index %s %s)", v.expr(ex.object), v.expr(ex.index))
	case *sliceExpr:
		return fmt.Sprintf("(slice %s %s %s)", v.expr(ex.object), v.optExpr(ex.first), v.optExpr(ex.second))
	case *indexSetExpr:
		return fmt.Sprintf("(set (index %s %s) %s)", v.expr(ex.object), v.expr(ex.index), v.expr(ex.value))
	case *lambdaExpr:
		return fmt.Sprintf("(lambda %s %s)", v.params(ex.params, ex.rest), v.expr(ex.body))
	case *spreadExpr:
		return "(... " + v.expr(ex.expression) + ")"
	}
	return fmt.Sprintf("<%T>", e)
}
