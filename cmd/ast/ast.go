package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

//go:generate sh -c "go run . Expr > ../../internal/expr.go && go run . Stmt > ../../internal/stmt.go"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast Expr|Stmt")
		os.Exit(2)
	}

	var out string
	switch os.Args[1] {
	case "Stmt":
		out = generateAst("Stmt", []string{
			"Expr: last *token, expression expr",
			"Print: keyword *token, expression expr",
			"Var: name *token, initializer expr",
			"Block: stmts []stmt",
			"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
			"While: keyword *token, condition expr, body stmt",
			"ClassicFor: keyword *token, initializer stmt, condition expr, increment expr, body stmt",
			"Return: keyword *token, value expr",
			"Break: keyword *token",
			"Continue: keyword *token",
			"Switch: keyword *token, discriminant expr, cases []*caseClause",
			"TryCatch: keyword *token, tryBody []stmt, name *token, catchBody []stmt",
			"Throw: keyword *token, value expr",
			"Fn: name *token, params []*token, rest *token, body []stmt, isGetter bool, isStatic bool",
			"Class: name *token, superclass *variableExpr, methods []*fnStmt, staticMethods []*fnStmt",
		})
	case "Expr":
		out = generateAst("Expr", []string{
			"Array: elements []expr, brace *token",
			"Map: elements []expr, curlyBrace *token",
			"Assign: id int, name *token, value expr",
			"Index: object expr, brace *token, index expr",
			"Slice: object expr, brace *token, first expr, second expr",
			"IndexSet: object expr, brace *token, index expr, value expr",
			"Binary: left expr, operator *token, right expr",
			"Call: callee expr, paren *token, arguments []expr",
			"Get: object expr, name *token",
			"Set: object expr, name *token, value expr",
			"Super: id int, keyword *token, method *token",
			"Grouping: expression expr",
			"Literal: value Value",
			"Logical: left expr, operator *token, right expr",
			"This: id int, keyword *token",
			"Unary: operator *token, right expr",
			"Variable: id int, name *token",
			"Lambda: arrow *token, params []*token, rest *token, body expr",
			"Spread: ellipsis *token, expression expr",
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown node family %q\n", os.Args[1])
		os.Exit(2)
	}

	src, err := format.Source([]byte(out))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(string(src))
}

func generateAst(baseName string, types []string) string {
	out := "// Code generated by cmd/ast; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	lower := strings.ToLower(baseName)
	out += "type " + lower + " interface {\n"
	out += "\t" + lower + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.SplitN(t, ":", 2)
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Method Definition
	out += "func (*" + structName + ") " + strings.ToLower(baseName) + "Node() {}\n\n"
	// End Method Definition

	return out
}
