package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
)

type testPrinter struct {
	printed string
	errors  string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		t.errors += fmt.Sprintf(format, a...)
		return 0, nil
	}
	t.printed += fmt.Sprintf(format, a...)
	return 0, nil
}

func (t *testPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return t.Fprintf(w, "%s", fmt.Sprintln(a...))
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
	t.errors = ""
}

func checkExpression(t *testing.T, exp string, result ...string) {
	t.Helper()
	source := "print " + exp + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	found := false
	for _, r := range result {
		if tp.Equals(r) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %s%s",
			exp,
			result,
			tp.printed,
			tp.errors,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("Runtime Error on line %d\n\t%s\n", line, errorMsg)

	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if !strings.HasPrefix(tp.errors, result) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----",
			source,
			result,
			tp.errors,
		)
	}
}

func checkStaticError(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("Error on line %d\n\t%s\n", line, errorMsg)

	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if !strings.Contains(tp.errors, result) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----",
			source,
			result,
			tp.errors,
		)
	}
	if tp.printed != "" {
		t.Errorf("Program with static errors should not run, printed %q", tp.printed)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	t.Helper()
	source := code + "\nprint " + resultVar + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %s%s",
			code,
			resultVar,
			result,
			tp.printed,
			tp.errors,
		)
	}
}

func checkOutput(t *testing.T, source string, output string) {
	t.Helper()
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if tp.printed != output {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----\n%s",
			source,
			output,
			tp.printed,
			tp.errors,
		)
	}
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		// Number
		checkExpression(t, "1", "1")

		// Fraction
		checkExpression(t, "1.5", "1.5")

		// Negative
		checkExpression(t, "-1", "-1")

		// Add numbers
		checkExpression(t, "1 + 2 + 3", "6")

		// Subtract numbers
		checkExpression(t, "8 - 2", "6")

		// Multiply numbers
		checkExpression(t, "1 * 2 * 3", "6")

		// Divide numbers
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "10 / 4", "2.5")

		// Divide by zero
		checkExpression(t, "1 / 0", "Infinity")
		checkExpression(t, "-1 / 0", "-Infinity")
		checkExpression(t, "0 / 0", "NaN")

		// Modulo
		checkExpression(t, "7 % 3", "1")

		// Power numbers
		checkExpression(t, "2 ** 2", "4")

		// Power is right associative
		checkExpression(t, "2 ** 3 ** 2", "512")

		// Power binds tighter than unary minus
		checkExpression(t, "-2 ** 2", "-4")

		// Precedence
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "(1 + 2) * 3", "9")
	}

	// Bitwise
	{
		checkExpression(t, "5 & 3", "1")
		checkExpression(t, "5 | 3", "7")
		checkExpression(t, "5 ^ 3", "6")
		checkExpression(t, "~5", "-6")
		checkExpression(t, "1 | 2 & 3", "3")
		checkExpression(t, "(2 ** 62) | 0", "4611686018427387904")
		checkExpression(t, "-(2 ** 63) | 0", "-9223372036854775808")
	}

	// Strings
	{
		checkExpression(t, `"hello"`, "hello")
		checkExpression(t, `"hello" + " " + "world"`, "hello world")
		checkExpression(t, `"a\tb"`, "a\tb")
		checkExpression(t, `"héllo"[1]`, "é")
		checkExpression(t, `"hello"[1:3]`, "el")
		checkExpression(t, `"hello"[:2]`, "he")
		checkExpression(t, `"hello"[3:]`, "lo")
		checkExpression(t, `"hello"[4:2]`, "")
	}

	// Comparison
	{
		checkExpression(t, "1 < 2", "true")
		checkExpression(t, "2 <= 2", "true")
		checkExpression(t, "1 > 2", "false")
		checkExpression(t, "2 >= 3", "false")
		checkExpression(t, "1 == 1", "true")
		checkExpression(t, `"a" == "a"`, "true")
		checkExpression(t, `"a" != "b"`, "true")
		checkExpression(t, "nil == nil", "true")
		checkExpression(t, "nil == false", "false")
		checkExpression(t, `1 == "1"`, "false")
		checkExpression(t, "[] == []", "false")
	}

	// Logical
	{
		checkExpression(t, "!true", "false")
		checkExpression(t, "!nil", "true")
		checkExpression(t, "!0", "false")
		checkExpression(t, `nil or "x"`, "x")
		checkExpression(t, "1 and 2", "2")
		checkExpression(t, "false and 2", "false")
		checkExpression(t, `"" or 1`, "")
	}

	// Arrays
	{
		checkExpression(t, "[]", "[]")
		checkExpression(t, `[1, "a", nil, true]`, `[1, "a", nil, true]`)
		checkExpression(t, "[1, 2, 3][1]", "2")
		checkExpression(t, "[1, [2, 3]][1][0]", "2")
		checkExpression(t, "[1, 2, 3, 4][1:3]", "[2, 3]")
		checkExpression(t, "[1, 2, 3, 4][:2]", "[1, 2]")
		checkExpression(t, "[1, 2, 3, 4][2:]", "[3, 4]")
		checkExpression(t, "[1, 2, 3, 4][1:100]", "[2, 3, 4]")
		checkExpression(t, "[1, 2, 3].length", "3")
		checkExpression(t, "[...[1, 2], 3, ...[]]", "[1, 2, 3]")
	}

	// Maps
	{
		checkExpression(t, "{}", "{}")
		checkExpression(t, `{"a": 1, 2: "b", true: nil}`, `{true: nil, 2: "b", "a": 1}`)
		checkExpression(t, `{"a": 1}["a"]`, "1")
		checkExpression(t, `{"a": 1}["b"]`, "nil")
		checkExpression(t, `{"a": 1, "a": 2}["a"]`, "2")
		checkExpression(t, `{"b": 1, "a": 2}.keys()`, `["a", "b"]`)
		checkExpression(t, `{"b": 1, "a": 2}.values()`, "[2, 1]")
		checkExpression(t, `{"b": 1, "a": 2}.length`, "2")
	}

	// Functions
	{
		checkExpression(t, "clock", "<native fn clock>")
		checkExpression(t, "(x) -> x", "<fn lambda>")
		checkExpression(t, "((a, b) -> a + b)(1, 2)", "3")
		checkExpression(t, "((...xs) -> len(xs))(1, 2, 3)", "3")
		checkExpression(t, "(() -> 4)()", "4")
		checkExpression(t, "(x) -> (x)", "<fn lambda>")

		// nested groups are not mistaken for lambdas
		checkExpression(t, strings.Repeat("(", 500)+"1"+strings.Repeat(")", 500), "1")
		checkExpression(t, "((1) + (2))", "3")
	}
}

func TestVariables(t *testing.T) {
	checkStatements(t, "var a;", "a", "nil")
	checkStatements(t, "var a = 1; a = a + 1;", "a", "2")
	checkStatements(t, "var a = 1; var b; b = a = 3;", "a + b", "6")
	checkStatements(t, "var a = 1; { var a = 2; }", "a", "1")
	checkStatements(t, "var a = 1; { a = 2; }", "a", "2")
	checkStatements(t, "var a = 1; var a = 2;", "a", "2")
}

func TestControlFlow(t *testing.T) {
	checkStatements(t, `var a; if (1 < 2) a = "yes"; else a = "no";`, "a", "yes")
	checkStatements(t, `var a; if (nil) a = "yes"; else a = "no";`, "a", "no")
	checkStatements(t, `var a = "none"; if (false) a = "yes";`, "a", "none")

	checkStatements(t, `
var i = 0;
while (i < 10) i = i + 1;
`, "i", "10")

	checkStatements(t, `
var s = 0;
for (var i = 0; i < 5; i = i + 1) s = s + i;
`, "s", "10")

	checkStatements(t, `
var i = 0;
for (;;) {
	i = i + 1;
	if (i == 7) break;
}
`, "i", "7")

	// continue runs the increment
	checkStatements(t, `
var s = 0;
for (var i = 0; i < 10; i = i + 1) {
	if (i == 5) break;
	if (i % 2 == 0) continue;
	s = s + i;
}
`, "s", "4")

	checkStatements(t, `
var s = 0;
var i = 0;
while (i < 5) {
	i = i + 1;
	if (i == 2) continue;
	s = s + i;
}
`, "s", "13")

	// break only leaves the innermost loop
	checkStatements(t, `
var count = 0;
for (var i = 0; i < 3; i = i + 1) {
	for (var j = 0; j < 3; j = j + 1) {
		if (j == 1) break;
		count = count + 1;
	}
}
`, "count", "3")

	// each closure created in a loop body block sees its own binding
	checkStatements(t, `
var fns = [];
for (var i = 0; i < 3; i = i + 1) {
	var j = i;
	fns.push(() -> j);
}
`, "fns[0]() + fns[1]() + fns[2]()", "3")
}

func TestSwitch(t *testing.T) {
	checkStatements(t, `
var out = "";
switch (2) {
	case 1: out = out + "1";
	case 2: out = out + "2";
	case 3: out = out + "3"; break;
	default: out = out + "d";
}
`, "out", "23")

	checkStatements(t, `
var out = "";
switch (9) {
	case 1: out = out + "1";
	default: out = out + "d";
	case 2: out = out + "2";
}
`, "out", "d2")

	checkStatements(t, `
var out = "none";
switch ("x") {
	case "y": out = "y";
}
`, "out", "none")

	// case values are evaluated lazily, in order
	checkStatements(t, `
var n = 0;
fun f(x) { n = n + 1; return x; }
switch (1) {
	case f(1): break;
	case f(2): break;
}
`, "n", "1")

	// continue inside a switch continues the enclosing loop
	checkStatements(t, `
var s = 0;
var i = 0;
while (i < 5) {
	i = i + 1;
	switch (i) {
		case 2: continue;
		case 3: continue;
	}
	s = s + i;
}
`, "s", "10")

	// return inside a switch leaves the function
	checkStatements(t, `
fun kind(x) {
	switch (type(x)) {
		case "number": return "n";
		case "string": return "s";
	}
	return "?";
}
var r = kind(1) + kind("a") + kind(nil);
`, "r", "ns?")
}

func TestFunctions(t *testing.T) {
	checkStatements(t, `
fun add(a, b) { return a + b; }
var r = add(1, 2);
`, "r", "3")

	checkStatements(t, `
fun nothing() {}
var r = nothing();
`, "r", "nil")

	checkStatements(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
var r = fib(15);
`, "r", "610")

	checkStatements(t, `
fun f() {}
`, "f", "<fn f>")

	checkStatements(t, `
fun loop() {
	var i = 0;
	while (true) {
		i = i + 1;
		if (i == 4) return i;
	}
}
`, "loop()", "4")
}

func TestClosures(t *testing.T) {
	checkStatements(t, `
fun makeCounter() {
	var i = 0;
	fun count() {
		i = i + 1;
		return i;
	}
	return count;
}
var c = makeCounter();
c();
var r = c();
`, "r", "2")

	// two counters do not share state
	checkStatements(t, `
fun makeCounter() {
	var i = 0;
	return () -> i = i + 1;
}
var a = makeCounter();
var b = makeCounter();
a(); a();
var r = a() * 10 + b();
`, "r", "31")

	// a closure keeps the binding it was resolved against
	checkStatements(t, `
var a = "global";
var r1;
var r2;
{
	fun show() { return a; }
	r1 = show();
	var a = "block";
	r2 = show();
}
`, "r1 + r2", "globalglobal")

	checkStatements(t, `
var adder = (x) -> (y) -> x + y;
var add2 = adder(2);
`, "add2(3)", "5")
}

func TestVariadics(t *testing.T) {
	checkStatements(t, `
fun sum(...xs) {
	var t = 0;
	for (var i = 0; i < len(xs); i = i + 1) t = t + xs[i];
	return t;
}
`, "sum(1, 2, 3)", "6")

	checkStatements(t, `
fun sum(...xs) {
	var t = 0;
	for (var i = 0; i < len(xs); i = i + 1) t = t + xs[i];
	return t;
}
`, "sum(...[1, 2], 3)", "6")

	checkStatements(t, "fun f(a, ...rest) { return rest; }", "f(1)", "[]")
	checkStatements(t, "fun f(a, ...rest) { return rest; }", "f(1, 2, 3)", "[2, 3]")

	// positional parameters of a variadic function may be missing
	checkStatements(t, "fun f(a, b, ...rest) { return b; }", "f(1)", "nil")

	// spread fills positional parameters
	checkStatements(t, "fun f(a, b) { return a - b; }", "f(...[5, 2])", "3")

	// the rest array is a fresh copy
	checkStatements(t, `
var xs = [1, 2];
fun f(...ys) { ys.push(3); return ys; }
f(...xs);
`, "xs", "[1, 2]")
}

func TestClasses(t *testing.T) {
	classA := `
class A {
	init(x) {
		this.x = x;
	}
	get() {
		return this.x;
	}
	double {
		return this.x * 2;
	}
	static make() {
		return A(3);
	}
}
`
	checkStatements(t, classA, "A", "<class A>")
	checkStatements(t, classA, "A(1)", "<A instance>")
	checkStatements(t, classA, "A(1).x", "1")
	checkStatements(t, classA, "A(1).get()", "1")
	checkStatements(t, classA, "A(4).double", "8")
	checkStatements(t, classA, "A.make().x", "3")

	// bound methods keep their receiver
	checkStatements(t, classA+"var m = A(5).get;", "m()", "5")

	// fields shadow methods
	checkStatements(t, classA+"var a = A(1); a.get = () -> \"field\";", "a.get()", "field")

	classB := classA + `
class B < A {
	init(x) {
		super(x + 1);
	}
	get() {
		return super.get() * 10;
	}
	double {
		return super.double + 1;
	}
}
`
	checkStatements(t, classB, "B(1).get()", "20")
	checkStatements(t, classB, "B(1).double", "5")
	checkStatements(t, classB, "B.make().x", "3")

	// methods are inherited
	checkStatements(t, `
class A { hello() { return "hello " + this.name; } }
class B < A { init() { this.name = "b"; } }
`, "B().hello()", "hello b")

	// super resolves against the class holding the method, not the receiver
	checkStatements(t, `
class A { who() { return "A"; } }
class B < A { who() { return "B" + super.who(); } }
class C < B { who() { return "C" + super.who(); } }
`, "C().who()", "CBA")

	// init returns the instance even when called again
	checkStatements(t, `
class A { init() { this.n = 1; return; } }
var a = A();
`, "a.init() == a", "true")

	// an instance without init accepts no arguments
	checkStatements(t, "class A {}", "type(A())", "instance")

	// static getters run on access and are inherited
	statics := `
class A {
	static count { return 7; }
}
class B < A {}
`
	checkStatements(t, statics, "A.count", "7")
	checkStatements(t, statics, "B.count + 1", "8")
}

func TestArrays(t *testing.T) {
	checkStatements(t, "var a = [1, 2]; a.push(3);", "a", "[1, 2, 3]")
	checkStatements(t, "var a = [1, 2]; var n = a.push(3);", "n", "3")
	checkStatements(t, "var a = [1, 2]; var x = a.pop();", "x + len(a)", "3")
	checkStatements(t, "var a = [1, 2]; a[0] = 5;", "a", "[5, 2]")

	// arrays are shared by reference
	checkStatements(t, "var a = [1]; var b = a; b.push(2);", "a", "[1, 2]")

	// slices are copies
	checkStatements(t, "var a = [1, 2, 3]; var b = a[0:2]; b[0] = 9;", "a", "[1, 2, 3]")

	// self referencing arrays print without looping
	checkStatements(t, "var a = []; a.push(a);", "a", "[[...]]")

	checkStatements(t, "var a = Array(); a.push(1);", "a", "[1]")
	checkStatements(t, `
class Items < Array {
	init() { super.init(); this.tag = "t"; }
}
var s = Items();
s.push(1);
`, "s.tag + str(s)", "t[1]")
	checkStatements(t, `
class Stack < Array {
	peek() { return this[len(this) - 1]; }
}
var s = Stack();
s.push(1);
s.push(2);
`, "s.peek()", "2")
}

func TestMaps(t *testing.T) {
	checkStatements(t, `var m = {}; m["a"] = 1; m[1] = 2;`, "m", `{1: 2, "a": 1}`)
	checkStatements(t, `var m = {"a": 1}; var n = m; n["b"] = 2;`, "m.length", "2")
	checkStatements(t, `var m = {}; m.tag = "t";`, "m.tag", "t")
	checkStatements(t, `var m = {}; m["a"] = m;`, "m", `{"a": {...}}`)
	checkStatements(t, `
class Counts < Map {
	init() { super(); this.tag = 1; }
}
var m = Counts();
m["a"] = 1;
`, "m.tag + m.length", "2")
}

func TestExceptions(t *testing.T) {
	checkStatements(t, `
var r;
try {
	throw "boom";
} catch (e) {
	r = e;
}
`, "r", "boom")

	// runtime faults become Error instances
	checkStatements(t, `
var r;
try {
	var x = nil;
	x();
} catch (e) {
	r = e.message;
}
`, "r", "Can only call functions and classes: nil")

	checkStatements(t, `
var r;
try {
	[].pop();
} catch (e) {
	r = type(e) + " " + e.message;
}
`, "r", "instance Can't pop from an empty array")

	// throws cross function frames
	checkStatements(t, `
fun inner() { throw 42; }
fun outer() { inner(); return "unreachable"; }
var r;
try {
	outer();
} catch (e) {
	r = e;
}
`, "r", "42")

	checkStatements(t, `
var r;
try {
	throw Error("bad");
} catch (e) {
	r = e.message;
}
`, "r", "bad")

	checkStatements(t, `
class MyError < Error {
	init(m) {
		super.init("my: " + m);
	}
}
var r;
try {
	throw MyError("x");
} catch (e) {
	r = e.message;
}
`, "r", "my: x")

	// the catch clause can rethrow
	checkStatements(t, `
var r;
try {
	try {
		throw 1;
	} catch (e) {
		throw e + 1;
	}
} catch (e) {
	r = e;
}
`, "r", "2")

	// return from inside try leaves the function
	checkStatements(t, `
fun f() {
	try {
		return 1;
	} catch (e) {
		return 2;
	}
	return 3;
}
`, "f()", "1")

	// break from inside try leaves the loop
	checkStatements(t, `
var i = 0;
while (true) {
	try {
		i = i + 1;
		if (i == 3) break;
	} catch (e) {}
}
`, "i", "3")

	// the stack of a caught fault lists the unwound frames
	checkStatements(t, `
fun f() {
	return 1 + nil;
}
var r;
try {
	f();
} catch (e) {
	r = e.stack;
}
`, "r", "[line 3] Operands must be two numbers or two strings: +\n\tin f() called on line 7")
}

func TestBuiltins(t *testing.T) {
	checkExpression(t, `len("héllo")`, "5")
	checkExpression(t, "len([1, 2])", "2")
	checkExpression(t, `len({"a": 1})`, "1")
	checkExpression(t, "str(1.5) + str(nil)", "1.5nil")
	checkExpression(t, `num("42") + 1`, "43")
	checkExpression(t, "num(7)", "7")
	checkExpression(t, "type(nil)", "nil")
	checkExpression(t, "type(true)", "bool")
	checkExpression(t, "type(1)", "number")
	checkExpression(t, `type("")`, "string")
	checkExpression(t, "type([])", "array")
	checkExpression(t, "type({})", "map")
	checkExpression(t, "type(Error)", "class")
	checkExpression(t, "type(clock)", "function")
	checkExpression(t, "type(clock())", "number")
	checkExpression(t, `strings.upper("ab")`, "AB")
	checkExpression(t, `strings.lower("AB")`, "ab")
	checkExpression(t, `strings.ord("A")`, "65")
	checkExpression(t, "strings.chr(66)", "B")
	checkExpression(t, `env.get("LUMEN_SURELY_UNSET_VARIABLE")`, "nil")

	checkOutput(t, `println(1, "a", nil);`, "1 a nil\n")
	checkOutput(t, "println();", "\n")
}

func TestRuntimeErrors(t *testing.T) {
	checkErrorMsg(t, "print x;", "Undefined variable: x", 1)
	checkErrorMsg(t, "x = 1;", "Undefined variable: x", 1)
	checkErrorMsg(t, `print 1 - "a";`, "Operands must be numbers: -", 1)
	checkErrorMsg(t, `print 1 + "a";`, "Operands must be two numbers or two strings: +", 1)
	checkErrorMsg(t, "print -nil;", "Operand must be a number: -", 1)
	checkErrorMsg(t, "print 1.5 & 1;", "Operands must be integers: &", 1)
	checkErrorMsg(t, "print (2 ** 63) | 0;", "Integer out of range: 9223372036854775808", 1)
	checkErrorMsg(t, "print ~(2 ** 64);", "Integer out of range: 18446744073709551616", 1)
	checkErrorMsg(t, "print 0 ** -1;", "Zero can't be raised to a negative power", 1)
	checkErrorMsg(t, "1();", "Can only call functions and classes: number", 1)
	checkErrorMsg(t, "fun f(a, b) {}\nf(1);", "Invalid number of arguments: expected 2 but got 1", 2)
	checkErrorMsg(t, "fun f(a, b) {}\nf(1, 2, 3);", "Invalid number of arguments: expected 2 but got 3", 2)
	checkErrorMsg(t, "class A {}\nA(1);", "Invalid number of arguments: expected 0 but got 1", 2)
	checkErrorMsg(t, "print 1.x;", "Only instances have properties: x", 1)
	checkErrorMsg(t, "var n = 1;\nn.x = 2;", "Only instances have fields: x", 2)
	checkErrorMsg(t, "class A {}\nprint A().y;", "Undefined property: y", 2)
	checkErrorMsg(t, "class A {}\nprint A.y;", "Undefined property: y", 2)
	checkErrorMsg(t, "var X = 1;\nclass A < X {}", "Superclass must be a class: A", 2)
	checkErrorMsg(t, "print [1][5];", "Index out of range: 5", 1)
	checkErrorMsg(t, "print [1][-1];", "Index must be a non-negative integer: -1", 1)
	checkErrorMsg(t, "print [1][0.5];", "Index must be a non-negative integer: 0.5", 1)
	checkErrorMsg(t, `print "abc"[3];`, "Index out of range: 3", 1)
	checkErrorMsg(t, `var s = "abc"; s[0] = "x";`, "Strings are immutable", 1)
	checkErrorMsg(t, "print 1[0];", "Only arrays, strings and maps can be indexed: number", 1)
	checkErrorMsg(t, `print {}[1:2];`, "Only arrays and strings can be sliced: map", 1)
	checkErrorMsg(t, "var m = {}; m[[1]] = 1;", "Map keys must be strings, numbers or booleans: [1]", 1)
	checkErrorMsg(t, "var m = {}; m[0/0] = 1;", "Map keys must be strings, numbers or booleans: NaN", 1)
	checkErrorMsg(t, "print {[1]: 2};", "Map keys must be strings, numbers or booleans: [1]", 1)
	checkErrorMsg(t, "class K {}\nvar m = {};\nprint m[K()];", "Map keys must be strings, numbers or booleans: <K instance>", 3)
	checkErrorMsg(t, "print [...1];", "Only arrays can be spread: number", 1)
	checkErrorMsg(t, "[].pop();", "Can't pop from an empty array", 1)
	checkErrorMsg(t, `num("x");`, `Invalid argument: can't convert "x" to number`, 1)
	checkErrorMsg(t, "throw 1;", "Uncaught exception: 1", 1)
	checkErrorMsg(t, `throw Error("boom");`, "Uncaught exception: Error: boom", 1)

	// errors inside functions carry the call trace
	tp := &testPrinter{}
	RunSourceWithPrinter("", "fun f() {\n\treturn 1 + nil;\n}\nf();", tp)
	expected := "Runtime Error on line 2\n\tOperands must be two numbers or two strings: +\n\tin f() called on line 4\n"
	if tp.errors != expected {
		t.Errorf("Expected trace:\n%s\nFound:\n%s", expected, tp.errors)
	}
}

func TestStaticErrors(t *testing.T) {
	checkStaticError(t, "return 1;", "Can't return from top-level code", 1)
	checkStaticError(t, "break;", "Can't use 'break' outside of a loop or switch", 1)
	checkStaticError(t, "continue;", "Can't use 'continue' outside of a loop", 1)
	checkStaticError(t, "switch (1) { case 1: continue; }", "Can't use 'continue' outside of a loop", 1)
	checkStaticError(t, "while (true) {\n\tfun f() { break; }\n}", "Can't use 'break' outside of a loop or switch", 2)
	checkStaticError(t, "{ var a = a; }", "Can't read local variable in its own initializer", 1)
	checkStaticError(t, "fun f() {\n\tvar a;\n\tvar a;\n}", "Already a variable with this name in this scope: a", 3)
	checkStaticError(t, "fun f(a, a) {}", "Already a variable with this name in this scope: a", 1)
	checkStaticError(t, "print this;", "Can't use 'this' outside of a class", 1)
	checkStaticError(t, "print super.x;", "Can't use 'super' outside of a class", 1)
	checkStaticError(t, "class A { m() { return super.m(); } }", "Can't use 'super' in a class with no superclass", 1)
	checkStaticError(t, "class A { static m() { return this; } }", "Can't use 'this' in a static method", 1)
	checkStaticError(t, "class A {}\nclass B < A { static m() { return super.m(); } }", "Can't use 'super' in a static method", 2)
	checkStaticError(t, "class A < A {}", "A class can't inherit from itself", 1)
	checkStaticError(t, "class A { init() { return 1; } }", "Can't return a value from an initializer", 1)
	checkStaticError(t, "class A { init { } }", "Initializer can't be a getter", 1)
	checkStaticError(t, "class A { m() {} m() {} }", "Method already defined in this class: m", 1)

	// parse errors
	checkStaticError(t, "var = 1;", "Expected variable name", 1)
	checkStaticError(t, "print 1", "Expected ';' after statement", 1)
	checkStaticError(t, "1 = 2;", "Invalid assignment target", 1)
	checkStaticError(t, "print (1;", "Expect ')' after expression", 1)
	checkStaticError(t, "switch (1) { default: default: }", "Switch can only have one default", 1)
	checkStaticError(t, "fun f(...a, b) {}", "Variadic parameter must be the last one", 1)
	checkStaticError(t, "print @;", "Illegal character", 1)
	checkStaticError(t, "print \"abc;", "Closing \" was expected", 1)

	// every error is reported
	tp := &testPrinter{}
	RunSourceWithPrinter("", "break;\n\ncontinue;", tp)
	expected := "Error on line 1\n\tCan't use 'break' outside of a loop or switch\n" +
		"Error on line 3\n\tCan't use 'continue' outside of a loop\n"
	if tp.errors != expected {
		t.Errorf("Expected:\n%s\nFound:\n%s", expected, tp.errors)
	}

	// the parser recovers after an error and keeps reporting
	tp.Reset()
	RunSourceWithPrinter("", "var = 1;\nprint 2\nprint 3;", tp)
	expected = "Error on line 1\n\tExpected variable name\n" +
		"Error on line 3\n\tExpected ';' after statement\n"
	if tp.errors != expected {
		t.Errorf("Expected:\n%s\nFound:\n%s", expected, tp.errors)
	}

	// a stray token right after a statement is skipped
	tp.Reset()
	RunSourceWithPrinter("", "print 1; }\nvar = 2;\nprint 3", tp)
	expected = "Error on line 1\n\tExpected expression\n" +
		"Error on line 2\n\tExpected variable name\n" +
		"Error on line 3\n\tExpected ';' after statement\n"
	if tp.errors != expected {
		t.Errorf("Expected:\n%s\nFound:\n%s", expected, tp.errors)
	}
}
