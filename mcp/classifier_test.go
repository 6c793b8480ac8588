package mcp

import (
	"testing"
)

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"PlainArithmetic", "2+2", KindArithmetic},
		{"ArithmeticWithWords", "how much is 3*7?", KindArithmetic},
		{"Division", "10/4", KindArithmetic},
		{"Quadratic", "x^2+1=0", KindQuadratic},
		{"QuadraticUnicode", "x²-4=0", KindQuadratic},
		{"QuadraticNoEquality", "x^2+2x+1", KindQuadratic},
		{"Linear", "2x+1=5", KindLinear},
		{"LinearUppercase", "3X=9", KindLinear},
		{"NoMathContent", "hello there", KindUnrecognized},
		{"Empty", "", KindUnrecognized},
		{"OnlyDigits", "12345", KindUnrecognized},
		{"WhitespaceOnly", "   ", KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Kind != tt.want {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.text, got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyTool(t *testing.T) {
	tests := []struct {
		text string
		tool string
	}{
		{"2+2", ToolOperation},
		{"2x+1=5", ToolLinear},
		{"x^2+1=0", ToolQuadratic},
	}

	for _, tt := range tests {
		got := Classify(tt.text)
		if got.Tool != tt.tool {
			t.Errorf("Classify(%q).Tool = %q, want %q", tt.text, got.Tool, tt.tool)
		}
	}
}

func TestClassifyArithmeticArguments(t *testing.T) {
	got := Classify("please compute 2+2")
	expr, ok := got.Arguments["expresion"].(string)
	if !ok || expr != "2+2" {
		t.Errorf("Arguments[expresion] = %v, want %q", got.Arguments["expresion"], "2+2")
	}
}

func TestClassifyLinearCoefficients(t *testing.T) {
	// 2x+1=5 normalizes to 2x-4=0
	got := Classify("2x+1=5")
	if m := got.Arguments["m"]; m != 2.0 {
		t.Errorf("m = %v, want 2", m)
	}
	if b := got.Arguments["b"]; b != -4.0 {
		t.Errorf("b = %v, want -4", b)
	}
}

func TestClassifyQuadraticCoefficients(t *testing.T) {
	tests := []struct {
		text    string
		a, b, c float64
	}{
		{"x^2+1=0", 1, 0, 1},
		{"x^2+2x+1=0", 1, 2, 1},
		{"2x^2-8=0", 2, 0, -8},
		{"x²-4=0", 1, 0, -4},
	}

	for _, tt := range tests {
		got := Classify(tt.text)
		if a := got.Arguments["a"]; a != tt.a {
			t.Errorf("Classify(%q): a = %v, want %v", tt.text, a, tt.a)
		}
		if b := got.Arguments["b"]; b != tt.b {
			t.Errorf("Classify(%q): b = %v, want %v", tt.text, b, tt.b)
		}
		if c := got.Arguments["c"]; c != tt.c {
			t.Errorf("Classify(%q): c = %v, want %v", tt.text, c, tt.c)
		}
	}
}

// Classify must be total: arbitrary junk degrades to unrecognized or a
// tool choice, never a panic.
func TestClassifyDoesNotPanic(t *testing.T) {
	inputs := []string{
		"=", "===", "x=", "^2", "x^2=", "((((", "+-*/", "²²²",
		"x^2+x^2+x^2=x^2", "1e99x^2=0", "....", "-", "x",
	}
	for _, input := range inputs {
		_ = Classify(input)
	}
}
