package parser

import (
	"testing"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/lexer"
)

func parseOne(t *testing.T, src string) ast.Stmt {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse(%q) errors: %v", src, p.Errors())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("parse(%q) = %d statements, want 1", src, len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestParseVarPlain(t *testing.T) {
	stmt := parseOne(t, "var x = 1;")
	v, ok := stmt.(*ast.VarStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.VarStmt", stmt)
	}
	if v.Name != "x" || v.Pattern != nil {
		t.Errorf("VarStmt = %+v", v)
	}
	lit, ok := v.Initializer.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralNumber || lit.Num != 1 {
		t.Errorf("Initializer = %+v", v.Initializer)
	}
}

func TestParseVarTyped(t *testing.T) {
	stmt := parseOne(t, "var x: Number = 1;")
	v := stmt.(*ast.VarStmt)
	if v.Type == nil || v.Type.Name != "Number" {
		t.Errorf("Type = %+v", v.Type)
	}
}

func TestParseVarDestructuringArray(t *testing.T) {
	stmt := parseOne(t, "var [a, b] = pair;")
	v := stmt.(*ast.VarStmt)
	arr, ok := v.Pattern.(*ast.ArrayPattern)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("Pattern = %+v", v.Pattern)
	}
}

func TestParseVarDestructuringMap(t *testing.T) {
	stmt := parseOne(t, "var {x, y} = point;")
	v := stmt.(*ast.VarStmt)
	m, ok := v.Pattern.(*ast.MapPattern)
	if !ok || len(m.Keys) != 2 || m.Keys[0] != "x" || m.Keys[1] != "y" {
		t.Fatalf("Pattern = %+v", v.Pattern)
	}
}

func TestParseIfElse(t *testing.T) {
	stmt := parseOne(t, "if (true) { print(1); } else { print(2); }")
	ifs, ok := stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if ifs.Then == nil || ifs.Else == nil {
		t.Errorf("IfStmt missing branch: %+v", ifs)
	}
}

func TestParseWhile(t *testing.T) {
	stmt := parseOne(t, "while (x) { x = x - 1; }")
	ws, ok := stmt.(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if _, ok := ws.Condition.(*ast.Identifier); !ok {
		t.Errorf("Condition = %+v", ws.Condition)
	}
}

// for-loops desugar to `{ init; while (cond) { body; step; } }` (spec §4.2).
func TestParseForDesugarsToBlockWhile(t *testing.T) {
	stmt := parseOne(t, "for (var i = 0; i < 3; i = i + 1) { print(i); }")
	outer, ok := stmt.(*ast.BlockStmt)
	if !ok || len(outer.Statements) != 2 {
		t.Fatalf("got %T, want outer block with init+loop", stmt)
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("outer.Statements[0] = %T, want *ast.VarStmt", outer.Statements[0])
	}
	loop, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Statements[1] = %T, want *ast.WhileStmt", outer.Statements[1])
	}
	body, ok := loop.Body.(*ast.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("loop.Body = %+v, want block with body+step", loop.Body)
	}
}

func TestParseForOmittedClausesDefaultConditionTrue(t *testing.T) {
	stmt := parseOne(t, "for (;;) { break; }")
	outer := stmt.(*ast.BlockStmt)
	loop := outer.Statements[0].(*ast.WhileStmt)
	lit, ok := loop.Condition.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralBool || lit.Bool != true {
		t.Errorf("Condition = %+v, want literal true", loop.Condition)
	}
}

func TestParseReturnSameLineValue(t *testing.T) {
	stmt := parseOne(t, "return 1;")
	ret := stmt.(*ast.ReturnStmt)
	if ret.Value == nil {
		t.Error("Value should be parsed when on the same line as 'return'")
	}
}

// ASI rule: a return with nothing on its own line must not swallow the
// next line's expression as its value (spec §4.2 Semicolons).
func TestParseReturnNextLineIsBareReturn(t *testing.T) {
	p := New(lexer.New("fn f() {\n  return\n  1;\n}"))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	fn := prog.Statements[0].(*ast.FunctionStmt)
	ret := fn.Function.Body[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Errorf("Value = %+v, want nil (bare return before newline)", ret.Value)
	}
}

func TestParseBreakContinue(t *testing.T) {
	b := parseOne(t, "break;")
	if _, ok := b.(*ast.BreakStmt); !ok {
		t.Errorf("got %T, want *ast.BreakStmt", b)
	}
	c := parseOne(t, "continue;")
	if _, ok := c.(*ast.ContinueStmt); !ok {
		t.Errorf("got %T, want *ast.ContinueStmt", c)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	stmt := parseOne(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	try, ok := stmt.(*ast.TryStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if try.Catch == nil || try.Catch.Name != "e" {
		t.Errorf("Catch = %+v", try.Catch)
	}
	if try.Finally == nil {
		t.Error("Finally should be set")
	}
}

func TestParseTryCatchWithoutBinding(t *testing.T) {
	stmt := parseOne(t, "try { risky(); } catch { }")
	try := stmt.(*ast.TryStmt)
	if try.Catch == nil || try.Catch.Name != "" {
		t.Errorf("Catch = %+v, want empty binding name", try.Catch)
	}
}

func TestParseThrow(t *testing.T) {
	stmt := parseOne(t, `throw "boom";`)
	th, ok := stmt.(*ast.ThrowStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	lit := th.Value.(*ast.Literal)
	if lit.Kind != ast.LiteralString || lit.Str != "boom" {
		t.Errorf("Value = %+v", th.Value)
	}
}

func TestParsePrint(t *testing.T) {
	stmt := parseOne(t, "print(42);")
	if _, ok := stmt.(*ast.PrintStmt); !ok {
		t.Fatalf("got %T", stmt)
	}
}

func TestParseMatchStmt(t *testing.T) {
	stmt := parseOne(t, `match x { 1 => "one", _ => "other" }`)
	ms, ok := stmt.(*ast.MatchStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if len(ms.Match.Arms) != 2 {
		t.Fatalf("Arms = %d, want 2", len(ms.Match.Arms))
	}
	if _, ok := ms.Match.Arms[0].Pattern.(*ast.LiteralPattern); !ok {
		t.Errorf("Arms[0].Pattern = %T", ms.Match.Arms[0].Pattern)
	}
	if _, ok := ms.Match.Arms[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Errorf("Arms[1].Pattern = %T", ms.Match.Arms[1].Pattern)
	}
}

func TestParseMatchArmGuard(t *testing.T) {
	stmt := parseOne(t, `match x { n if n > 0 => "pos", _ => "other" }`)
	ms := stmt.(*ast.MatchStmt)
	if ms.Match.Arms[0].Guard == nil {
		t.Error("Arms[0].Guard should be set")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	stmt := parseOne(t, "fn add(a, b) { return a + b; }")
	fs, ok := stmt.(*ast.FunctionStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if fs.Function.Name != "add" || len(fs.Function.Params) != 2 || fs.Function.Async {
		t.Errorf("Function = %+v", fs.Function)
	}
}

func TestParseAsyncFunctionDecl(t *testing.T) {
	stmt := parseOne(t, "async fn fetch() { return 1; }")
	fs := stmt.(*ast.FunctionStmt)
	if !fs.Function.Async {
		t.Error("Async should be true")
	}
}

func TestParseClassWithFieldsAndMethods(t *testing.T) {
	stmt := parseOne(t, `class Point {
		x = 0
		y = 0
		fn length() { return 1; }
	}`)
	cs, ok := stmt.(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if len(cs.Fields) != 2 || cs.Fields[0].Name != "x" || cs.Fields[1].Name != "y" {
		t.Errorf("Fields = %+v", cs.Fields)
	}
	if len(cs.Methods) != 1 || cs.Methods[0].Function.Name != "length" {
		t.Errorf("Methods = %+v", cs.Methods)
	}
}

func TestParseClassExtends(t *testing.T) {
	stmt := parseOne(t, "class Square extends Shape { }")
	cs := stmt.(*ast.ClassStmt)
	if cs.Superclass == nil || cs.Superclass.Name != "Shape" {
		t.Errorf("Superclass = %+v", cs.Superclass)
	}
}

func TestParseImportSideEffect(t *testing.T) {
	stmt := parseOne(t, `import "./setup";`)
	im := stmt.(*ast.ImportStmt)
	if im.Kind != ast.ImportSideEffect || im.Path != "./setup" {
		t.Errorf("ImportStmt = %+v", im)
	}
}

func TestParseImportNamespace(t *testing.T) {
	stmt := parseOne(t, `import * as math from "std.math";`)
	im := stmt.(*ast.ImportStmt)
	if im.Kind != ast.ImportNamespace || im.Alias != "math" || im.Path != "std.math" {
		t.Errorf("ImportStmt = %+v", im)
	}
}

func TestParseImportNamed(t *testing.T) {
	stmt := parseOne(t, `import {sin, cos as cosine} from "std.math";`)
	im := stmt.(*ast.ImportStmt)
	if im.Kind != ast.ImportNamed || len(im.Specifiers) != 2 {
		t.Fatalf("ImportStmt = %+v", im)
	}
	if im.Specifiers[0].Name != "sin" || im.Specifiers[0].Alias != "" {
		t.Errorf("Specifiers[0] = %+v", im.Specifiers[0])
	}
	if im.Specifiers[1].Name != "cos" || im.Specifiers[1].Alias != "cosine" {
		t.Errorf("Specifiers[1] = %+v", im.Specifiers[1])
	}
}

func TestParseExportVar(t *testing.T) {
	stmt := parseOne(t, "export var x = 1;")
	v, ok := stmt.(*ast.VarStmt)
	if !ok || !v.Exported {
		t.Fatalf("got %+v, want exported VarStmt", stmt)
	}
}

func TestParseExportFn(t *testing.T) {
	stmt := parseOne(t, "export fn f() { return 1; }")
	fs := stmt.(*ast.FunctionStmt)
	if !fs.Exported {
		t.Error("Exported should be true")
	}
}

func TestParseExportClass(t *testing.T) {
	stmt := parseOne(t, "export class C { }")
	cs := stmt.(*ast.ClassStmt)
	if !cs.Exported {
		t.Error("Exported should be true")
	}
}

func TestParseReExport(t *testing.T) {
	stmt := parseOne(t, `export {sin, cos as cosine} from "std.math";`)
	re, ok := stmt.(*ast.ReExportStmt)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if re.Path != "std.math" || len(re.Specifiers) != 2 {
		t.Errorf("ReExportStmt = %+v", re)
	}
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	stmt := parseOne(t, src+";")
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("parseExpr(%q): got %T, want *ast.ExprStmt", src, stmt)
	}
	return es.Expr
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3)
	expr := parseExpr(t, "1 + 2 * 3")
	top, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", expr)
	}
	if _, ok := top.Right.(*ast.Binary); !ok {
		t.Errorf("Right = %T, want nested *ast.Binary (2 * 3)", top.Right)
	}
	if _, ok := top.Left.(*ast.Literal); !ok {
		t.Errorf("Left = %T, want *ast.Literal (1)", top.Left)
	}
}

func TestParseTernary(t *testing.T) {
	expr := parseExpr(t, "x ? 1 : 2")
	cond, ok := expr.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", expr)
	}
	if cond.Then == nil || cond.Else == nil {
		t.Errorf("Conditional = %+v", cond)
	}
}

func TestParseNullishCoalescing(t *testing.T) {
	expr := parseExpr(t, "a ?? b")
	if _, ok := expr.(*ast.Nullish); !ok {
		t.Fatalf("got %T, want *ast.Nullish", expr)
	}
}

func TestParseCallIndexPropertyChain(t *testing.T) {
	expr := parseExpr(t, "a.b[0](c)")
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", expr)
	}
	idx, ok := call.Callee.(*ast.Index)
	if !ok {
		t.Fatalf("Callee = %T, want *ast.Index", call.Callee)
	}
	prop, ok := idx.Collection.(*ast.Property)
	if !ok || prop.Name != "b" {
		t.Errorf("Collection = %+v", idx.Collection)
	}
}

func TestParseArrayLiteralWithSpread(t *testing.T) {
	expr := parseExpr(t, "[1, ...rest, 2]")
	arr, ok := expr.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("got %+v", expr)
	}
	if _, ok := arr.Elements[1].(*ast.SpreadExpr); !ok {
		t.Errorf("Elements[1] = %T, want *ast.SpreadExpr", arr.Elements[1])
	}
}

func TestParseMapLiteralWithSpread(t *testing.T) {
	// Parenthesized, since a statement that starts with `{` is a block.
	expr := parseExpr(t, `({x: 1, ...rest})`)
	m, ok := expr.(*ast.MapLiteral)
	if !ok || len(m.Entries) != 2 {
		t.Fatalf("got %+v", expr)
	}
	if m.Entries[0].Key == nil || m.Entries[1].Spread == nil {
		t.Errorf("Entries = %+v", m.Entries)
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	// Parenthesized, since a statement that starts with `fn` is a declaration.
	expr := parseExpr(t, "(fn(x) { return x; })")
	fe, ok := expr.(*ast.FunctionExpr)
	if !ok || len(fe.Params) != 1 {
		t.Fatalf("got %+v", expr)
	}
}

func TestParseMatchExprAsExpression(t *testing.T) {
	// Parenthesized, since a statement that starts with `match` parses as
	// a MatchStmt rather than an ExprStmt.
	expr := parseExpr(t, `(match n { 0 => "zero", _ => "other" })`)
	if _, ok := expr.(*ast.MatchExpr); !ok {
		t.Fatalf("got %T, want *ast.MatchExpr", expr)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	expr := parseExpr(t, "a.b = 1")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", expr)
	}
	if _, ok := assign.Target.(*ast.Property); !ok {
		t.Errorf("Target = %T, want *ast.Property", assign.Target)
	}
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	p := New(lexer.New("1 + 1 = 2;"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Error("expected a parse error for an invalid assignment target")
	}
}

func TestParseAwait(t *testing.T) {
	expr := parseExpr(t, "await task")
	if _, ok := expr.(*ast.AwaitExpr); !ok {
		t.Fatalf("got %T, want *ast.AwaitExpr", expr)
	}
}

func TestParseSuperMethodCall(t *testing.T) {
	expr := parseExpr(t, "super.area()")
	call := expr.(*ast.Call)
	sup, ok := call.Callee.(*ast.SuperExpr)
	if !ok || sup.Method != "area" {
		t.Fatalf("Callee = %+v", call.Callee)
	}
}

func TestParseThisExpr(t *testing.T) {
	expr := parseExpr(t, "this")
	if _, ok := expr.(*ast.ThisExpr); !ok {
		t.Fatalf("got %T, want *ast.ThisExpr", expr)
	}
}
