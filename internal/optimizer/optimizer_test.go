package optimizer

import (
	"testing"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/parser"
)

func optimizeSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse(%q) errors: %v", src, p.Errors())
	}
	return Optimize(program)
}

func exprOf(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	es, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", prog.Statements[0])
	}
	return es.Expr
}

func TestFoldsNumberAddition(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, "1 + 2;"))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralNumber || lit.Num != 3 {
		t.Fatalf("got %+v, want folded literal 3", expr)
	}
}

func TestFoldsAllArithmeticOperators(t *testing.T) {
	cases := map[string]float64{
		"6 - 2;": 4,
		"3 * 4;": 12,
		"8 / 2;": 4,
	}
	for src, want := range cases {
		lit := exprOf(t, optimizeSrc(t, src)).(*ast.Literal)
		if lit.Num != want {
			t.Errorf("optimize(%q) = %v, want %v", src, lit.Num, want)
		}
	}
}

func TestDoesNotFoldDivisionByZero(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, "1 / 0;"))
	if _, ok := expr.(*ast.Binary); !ok {
		t.Errorf("got %T, want unfolded *ast.Binary (division by zero left to the evaluator)", expr)
	}
}

func TestFoldsStringConcatenation(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, `"a" + "b";`))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralString || lit.Str != "ab" {
		t.Fatalf("got %+v, want folded literal \"ab\"", expr)
	}
}

func TestDoesNotFoldMixedTypeAddition(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, `1 + "a";`))
	if _, ok := expr.(*ast.Binary); !ok {
		t.Errorf("got %T, want unfolded *ast.Binary (must not mask a TypeError)", expr)
	}
}

func TestDoesNotFoldNonLiteralOperand(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, "x + 1;"))
	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", expr)
	}
	if _, ok := bin.Left.(*ast.Identifier); !ok {
		t.Errorf("Left = %T, want untouched *ast.Identifier", bin.Left)
	}
}

func TestFoldsUnaryNegation(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, "-5;"))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Num != -5 {
		t.Fatalf("got %+v, want folded literal -5", expr)
	}
}

func TestFoldsUnaryNot(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, "!true;"))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralBool || lit.Bool != false {
		t.Fatalf("got %+v, want folded literal false", expr)
	}
}

func TestFoldsNestedArithmetic(t *testing.T) {
	// (1 + 2) * 3 folds bottom-up to 9.
	expr := exprOf(t, optimizeSrc(t, "(1 + 2) * 3;"))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Num != 9 {
		t.Fatalf("got %+v, want folded literal 9", expr)
	}
}

func TestIfWithLiteralTrueConditionKeepsOnlyThen(t *testing.T) {
	prog := optimizeSrc(t, `if (true) { print(1); } else { print(2); }`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	block, ok := prog.Statements[0].(*ast.BlockStmt)
	if !ok || len(block.Statements) != 1 {
		t.Fatalf("got %+v, want the Then block alone", prog.Statements[0])
	}
	print1 := block.Statements[0].(*ast.PrintStmt)
	if lit := print1.Value.(*ast.Literal); lit.Num != 1 {
		t.Errorf("kept branch prints %v, want 1", lit.Num)
	}
}

func TestIfWithLiteralFalseConditionAndNoElseIsDropped(t *testing.T) {
	prog := optimizeSrc(t, `if (false) { print(1); }`)
	if len(prog.Statements) != 0 {
		t.Fatalf("got %d statements, want 0 (whole if dropped)", len(prog.Statements))
	}
}

func TestWhileFalseIsEliminated(t *testing.T) {
	prog := optimizeSrc(t, `while (false) { print(1); }`)
	if len(prog.Statements) != 0 {
		t.Fatalf("got %d statements, want 0 (while(false) never runs)", len(prog.Statements))
	}
}

func TestWhileWithNonLiteralConditionIsKept(t *testing.T) {
	prog := optimizeSrc(t, `while (x) { print(1); }`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.WhileStmt); !ok {
		t.Errorf("got %T, want *ast.WhileStmt preserved", prog.Statements[0])
	}
}

func TestConditionalExprFoldsToChosenBranch(t *testing.T) {
	expr := exprOf(t, optimizeSrc(t, `true ? 1 : 2;`))
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Num != 1 {
		t.Fatalf("got %+v, want folded to then-branch literal 1", expr)
	}
}

func TestStatementsAfterReturnAreDropped(t *testing.T) {
	prog := optimizeSrc(t, `fn f() { return 1; print(2); }`)
	fn := prog.Statements[0].(*ast.FunctionStmt)
	if len(fn.Function.Body) != 1 {
		t.Fatalf("got %d body statements, want 1 (unreachable code dropped)", len(fn.Function.Body))
	}
}

func TestClassFieldAndMethodBodiesAreFolded(t *testing.T) {
	prog := optimizeSrc(t, `class C {
		x = 1 + 1
		fn m() { return 2 * 3; }
	}`)
	cs := prog.Statements[0].(*ast.ClassStmt)
	fieldLit := cs.Fields[0].Initializer.(*ast.Literal)
	if fieldLit.Num != 2 {
		t.Errorf("field initializer = %v, want folded 2", fieldLit.Num)
	}
	ret := cs.Methods[0].Function.Body[0].(*ast.ReturnStmt)
	retLit := ret.Value.(*ast.Literal)
	if retLit.Num != 6 {
		t.Errorf("method return value = %v, want folded 6", retLit.Num)
	}
}
