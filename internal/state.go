package internal

import (
	"errors"
	"fmt"
	"strings"
)

type parseError struct {
	err  error
	line int
	pos  int
}

// interpreterState stores the state of a single run: source, tokens, tree and
// the static errors collected while producing them
type interpreterState struct {
	absPath string
	source  string
	errors  []parseError
	tokens  []token
	stmts   []stmt
}

func newInterpreterState(absPath, source string) *interpreterState {
	return &interpreterState{
		absPath: absPath,
		source:  source,
		errors:  make([]parseError, 0),
	}
}

func (s *interpreterState) setError(err error, line, pos int) {
	s.errors = append(s.errors, parseError{
		err:  err,
		line: line,
		pos:  pos,
	})
}

func (s *interpreterState) fatalError(err error, line, pos int) {
	pe := parseError{
		err:  err,
		line: line,
		pos:  pos,
	}
	s.errors = append(s.errors, pe)
	panic(pe)
}

// Valid returns true if the interpreter is in a valid states else false
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

func (s *interpreterState) staticError() *StaticError {
	return &StaticError{errors: s.errors}
}

// StaticError is the batch of syntax and scope errors that stopped a program
// before it started running
type StaticError struct {
	errors []parseError
}

func (s *StaticError) Error() string {
	var sb strings.Builder
	for i, e := range s.errors {
		if i != 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Error on line %d\n\t%s", e.line, e.err)
	}
	return sb.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (s *StaticError) Unwrap() []error {
	out := make([]error, len(s.errors))
	for i, e := range s.errors {
		out[i] = e.err
	}
	return out
}

// Lines returns the line of every collected error, in report order
func (s *StaticError) Lines() []int {
	out := make([]int, len(s.errors))
	for i, e := range s.errors {
		out[i] = e.line
	}
	return out
}

// RuntimeError is a fault raised while executing a program
type RuntimeError struct {
	token *token
	err   error
	trace []string
}

func newRuntimeError(tk *token, err error) *RuntimeError {
	return &RuntimeError{token: tk, err: err}
}

func (r *RuntimeError) Error() string {
	return r.err.Error()
}

func (r *RuntimeError) Unwrap() error {
	return r.err
}

// Line returns the source line the error was raised on, 0 when unknown
func (r *RuntimeError) Line() int {
	if r.token == nil {
		return 0
	}
	return r.token.line
}

func (r *RuntimeError) stack() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[line %d] %s", r.Line(), r.err)
	for _, frame := range r.trace {
		sb.WriteString("\n\t")
		sb.WriteString(frame)
	}
	return sb.String()
}

// ThrowSignal carries a value raised by a throw statement until a catch
// clause or the top level receives it
type ThrowSignal struct {
	token *token
	value Value
}

func (t *ThrowSignal) Error() string {
	if inst, ok := t.value.(*lumenInstance); ok {
		if msg, ok := inst.fields["message"]; ok {
			return fmt.Sprintf("%s: %s: %s", errUncaught, inst.class.name, stringify(msg))
		}
	}
	return fmt.Sprintf("%s: %s", errUncaught, stringify(t.value))
}

// Value returns the thrown value
func (t *ThrowSignal) Value() Value {
	return t.value
}

// FatalError stops execution and cannot be caught by user code
type FatalError struct {
	token *token
	err   error
}

func (f *FatalError) Error() string {
	return f.err.Error()
}

func (f *FatalError) Unwrap() error {
	return f.err
}

// Lexer errors
var errIllegalChar = errors.New("Illegal character")
var errUnclosedString = errors.New("Closing \" was expected")
var errUnclosedComment = errors.New("Closing */ was expected")
var errInvalidNumber = errors.New("Invalid number literal")

// Parser errors
var errUnclosedParen = errors.New("Expect ')' after expression")
var errUnclosedBracket = errors.New("Expected ']' at end of array")
var errUnclosedIndex = errors.New("Expected ']' at the end of index")
var errUnclosedCurlyBrace = errors.New("Expected '}' at the end of map")
var errExpectedColon = errors.New("Expected ':' after key")
var errExpectedCaseColon = errors.New("Expected ':' after case")
var errExpectedProp = errors.New("Expected property name after '.'")
var errUndefinedExpr = errors.New("Expected expression")
var errMaxArguments = errors.New("Max number of arguments is 255")
var errMaxParameters = errors.New("Max number of parameters is 255")
var errExpectedIdentifier = errors.New("Expected variable name")
var errExpectedSemicolon = errors.New("Expected ';' after statement")
var errExpectedOpeningCurlyBrace = errors.New("Expected '{'")
var errExpectedClosingCurlyBrace = errors.New("Expected '}'")
var errExpectedParen = errors.New("Expected '('")
var errExpectedFunctionName = errors.New("Expected function name")
var errExpectedMethodName = errors.New("Expected method name")
var errExpectedFunctionParam = errors.New("Expected parameter name")
var errExpectedClassName = errors.New("Expected class name")
var errExpectedSuperclassName = errors.New("Expected superclass name")
var errRestMustBeLast = errors.New("Variadic parameter must be the last one")
var errInvalidAssignment = errors.New("Invalid assignment target")
var errExpectedDot = errors.New("Expected '.' after 'super'")
var errExpectedArrow = errors.New("Expected '->' after lambda parameters")
var errExpectedCatch = errors.New("Expected 'catch' after try block")
var errExpectedCase = errors.New("Expected 'case' or 'default'")
var errDuplicateDefault = errors.New("Switch can only have one default")

// Resolver errors
var errReadInInitializer = errors.New("Can't read local variable in its own initializer")
var errAlreadyDeclared = errors.New("Already a variable with this name in this scope")
var errReturnOutsideFunction = errors.New("Can't return from top-level code")
var errReturnFromInit = errors.New("Can't return a value from an initializer")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class")
var errThisInStatic = errors.New("Can't use 'this' in a static method")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass")
var errSuperInStatic = errors.New("Can't use 'super' in a static method")
var errSelfInheritance = errors.New("A class can't inherit from itself")
var errBreakOutside = errors.New("Can't use 'break' outside of a loop or switch")
var errContinueOutside = errors.New("Can't use 'continue' outside of a loop")
var errGetterInit = errors.New("Initializer can't be a getter")
var errDuplicateMethod = errors.New("Method already defined in this class")

// Runtime errors
var errUndefinedVar = errors.New("Undefined variable")
var errOnlyNumbers = errors.New("Operands must be numbers")
var errOnlyNumber = errors.New("Operand must be a number")
var errOnlyNumbersOrStrings = errors.New("Operands must be two numbers or two strings")
var errOnlyIntegers = errors.New("Operands must be integers")
var errIntegerRange = errors.New("Integer out of range")
var errZeroNegativePower = errors.New("Zero can't be raised to a negative power")
var errUndefinedOp = errors.New("Operation not defined")
var errOnlyFunction = errors.New("Can only call functions and classes")
var errInvalidNumberArguments = errors.New("Invalid number of arguments")
var errExpectedObject = errors.New("Only instances have properties")
var errExpectedFields = errors.New("Only instances have fields")
var errUndefinedProp = errors.New("Undefined property")
var errExpectedClass = errors.New("Superclass must be a class")
var errMethodNotFound = errors.New("Method not found")
var errInvalidAccess = errors.New("Only arrays, strings and maps can be indexed")
var errInvalidSlice = errors.New("Only arrays and strings can be sliced")
var errIndexOutOfRange = errors.New("Index out of range")
var errInvalidIndex = errors.New("Index must be a non-negative integer")
var errInvalidMapKey = errors.New("Map keys must be strings, numbers or booleans")
var errImmutableString = errors.New("Strings are immutable")
var errSpreadNonArray = errors.New("Only arrays can be spread")
var errEmptyArray = errors.New("Can't pop from an empty array")
var errInvalidArgument = errors.New("Invalid argument")
var errStackOverflow = errors.New("Stack overflow")
var errUncaught = errors.New("Uncaught exception")
