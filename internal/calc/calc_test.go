package calc

import (
	"strings"
	"testing"

	"github.com/hpungsan/darek/internal/errors"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"15 + 25", 40},
		{"10 * 5", 50},
		{"10 / 4", 2.5},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-3 + 5", 2},
		{"--3", 3},
		{"+7", 7},
		{"1.5 * 2", 3},
		{".5 + .5", 1},
		{"100 - 1 - 1", 98},
		{"8 / 2 / 2", 2},
		{"  ( ( 1 ) ) ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_Rejects(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"letters", "rm -rf /"},
		{"call", "__import__('os')"},
		{"power", "2 ** 3"},
		{"trailing operator", "1 +"},
		{"dangling paren", "(1 + 2"},
		{"extra paren", "1 + 2)"},
		{"two dots", "1.2.3"},
		{"lone dot", "."},
		{"adjacent numbers", "15  200"},
		{"division by zero", "1 / 0"},
		{"division by zero expression", "4 / (2 - 2)"},
		{"percent", "15%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.expr)
			if err == nil {
				t.Fatalf("Eval(%q) expected error", tt.expr)
			}
			if !errors.Is(err, errors.ErrExtractionFailed) {
				t.Errorf("Eval(%q) code = %s, want EXTRACTION_FAILED", tt.expr, errors.CodeOf(err))
			}
			if errors.SlotOf(err) != "expression" {
				t.Errorf("SlotOf = %q, want expression", errors.SlotOf(err))
			}
		})
	}
}

func TestEval_Limits(t *testing.T) {
	long := strings.Repeat("1+", MaxExpressionLen) + "1"
	if _, err := Eval(long); err == nil {
		t.Error("expected error for over-long expression")
	}

	deep := strings.Repeat("(", MaxDepth+1) + "1" + strings.Repeat(")", MaxDepth+1)
	if _, err := Eval(deep); err == nil {
		t.Error("expected error for deeply nested expression")
	}

	minus := strings.Repeat("-", MaxDepth+1) + "1"
	if _, err := Eval(minus); err == nil {
		t.Error("expected error for long unary chain")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{40, "40"},
		{2.5, "2.5"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := Format(tt.v); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormat_FloatRounding(t *testing.T) {
	// Operands held in variables so the sum is computed in float64, not folded exactly.
	a, b := 0.1, 0.2
	if got := Format(a + b); got != "0.30000000000000004" {
		t.Errorf("Format(0.1+0.2) = %q, want %q", got, "0.30000000000000004")
	}

	v, err := Eval("0.1 + 0.2")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got := Format(v); got != "0.30000000000000004" {
		t.Errorf("Format(Eval(0.1 + 0.2)) = %q, want %q", got, "0.30000000000000004")
	}
}
