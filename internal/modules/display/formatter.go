// Package display renders matrix-state analysis for the terminal.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qsimlab/spindle/internal/modules/matrix"
)

// MatrixTable renders the sparse coefficients as a dim×dim grid with
// right-aligned integer row and column headers. The cell width is the larger
// of the widest rendered coefficient and the widest index, plus one column
// of padding.
func MatrixTable(s *matrix.State) string {
	dim := s.Dim()

	coeffWidth := 1 // width of the implicit "0"
	for _, coeff := range s.Sparse() {
		if w := len(formatCoeff(coeff)); w > coeffWidth {
			coeffWidth = w
		}
	}
	indexWidth := len(strconv.Itoa(dim - 1))
	cellWidth := coeffWidth
	if indexWidth > cellWidth {
		cellWidth = indexWidth
	}
	cellWidth++

	var b strings.Builder
	b.WriteString("\nMatrix coefficients (row = left index, col = right index):\n\n")

	b.WriteString(strings.Repeat(" ", indexWidth+3))
	for col := 0; col < dim; col++ {
		fmt.Fprintf(&b, "%*d", cellWidth, col)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indexWidth+3))
	b.WriteString(strings.Repeat("-", cellWidth*dim))
	b.WriteByte('\n')

	for row := 0; row < dim; row++ {
		fmt.Fprintf(&b, "%*d |", indexWidth, row)
		for col := 0; col < dim; col++ {
			fmt.Fprintf(&b, "%*s", cellWidth, formatCoeff(s.Coefficient(row, col)))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// EigenvalueReport prints the eigenvalues at 6 significant digits, 8 per
// line, or an explanatory line when they are unavailable.
func EigenvalueReport(s *matrix.State) string {
	eigs, ok := s.Eigenvalues()
	if !ok {
		return "Eigenvalues could not be computed.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eigenvalues (%d):\n", len(eigs))
	line := make([]string, 0, 8)
	flush := func() {
		b.WriteString("  " + strings.Join(line, "  ") + "\n")
		line = line[:0]
	}
	for _, eig := range eigs {
		line = append(line, fmt.Sprintf("%.6g", eig))
		if len(line) == 8 {
			flush()
		}
	}
	if len(line) > 0 {
		flush()
	}
	return b.String()
}

// NegativityReport prints the negativity at 6 significant digits, or an
// explanatory line when it is unavailable.
func NegativityReport(s *matrix.State) string {
	if neg, ok := s.Negativity(); ok {
		return fmt.Sprintf("\nNegativity: %.6g\n", neg)
	}
	return "\nNegativity could not be computed.\n"
}

func formatCoeff(coeff float64) string {
	return strconv.FormatFloat(coeff, 'g', -1, 64)
}
