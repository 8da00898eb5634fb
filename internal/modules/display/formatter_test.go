package display

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/modules/matrix"
)

func TestMatrixTable_SingleSpin(t *testing.T) {
	s, err := matrix.New(1, 1, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	want := "\nMatrix coefficients (row = left index, col = right index):\n\n" +
		"     0 1\n" +
		"    ----\n" +
		"0 | 0 0\n" +
		"1 | 0 1\n" +
		"\n"
	if got := MatrixTable(s); got != want {
		t.Errorf("MatrixTable() = %q, want %q", got, want)
	}
}

func TestMatrixTable_WidthFollowsCoefficients(t *testing.T) {
	// Higher powers accumulate multi-digit coefficients; the cell width must
	// grow with them.
	s, err := matrix.New(2, 4, 4, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	got := MatrixTable(s)
	lines := strings.Split(got, "\n")

	widest := 0
	for _, coeff := range s.Sparse() {
		if w := len(formatCoeff(coeff)); w > widest {
			widest = w
		}
	}
	wantHeader := strings.Repeat(" ", 1+3)
	for _, line := range lines {
		if strings.HasPrefix(line, wantHeader+"-") {
			if len(line) != 4+(widest+1)*s.Dim() {
				t.Errorf("Separator width = %d, want %d", len(line), 4+(widest+1)*s.Dim())
			}
			return
		}
	}
	t.Fatal("Separator line not found in table output")
}

func TestEigenvalueReport(t *testing.T) {
	s, err := matrix.New(1, 1, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	want := "Eigenvalues (2):\n  0  1\n"
	if got := EigenvalueReport(s); got != want {
		t.Errorf("EigenvalueReport() = %q, want %q", got, want)
	}
}

func TestEigenvalueReport_EightPerLine(t *testing.T) {
	// size=4 gives 16 eigenvalues: exactly two full lines.
	s, err := matrix.New(4, 1, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	got := EigenvalueReport(s)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus two eigenvalue lines, got %d lines: %q", len(lines), got)
	}
	for _, line := range lines[1:] {
		if n := len(strings.Fields(line)); n != 8 {
			t.Errorf("Expected 8 eigenvalues per line, got %d in %q", n, line)
		}
	}
}

func TestNegativityReport(t *testing.T) {
	s, err := matrix.New(1, 1, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if got := NegativityReport(s); got != "\nNegativity: 0\n" {
		t.Errorf("NegativityReport() = %q", got)
	}

	// Zero trace: negativity unavailable.
	degenerate, err := matrix.New(1, 1, 2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if got := NegativityReport(degenerate); got != "\nNegativity could not be computed.\n" {
		t.Errorf("NegativityReport() = %q", got)
	}
}
