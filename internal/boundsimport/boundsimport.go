// Package boundsimport overlays variable bounds read from a CSV file onto
// an already-parsed problem, letting bounds live in a spreadsheet instead
// of the LP document's own bounds section.
//
// What: Apply, merging rows of (variable, lower, upper, binary) onto an
// ir.Problem's symbol table.
// How: encoding/csv plus the same UTF-8 BOM stripping this codebase's CSV
// importer does before handing rows to its reader, since exported
// spreadsheets commonly carry a BOM.
// Why: CSV is the natural hand-off format between a spreadsheet and a
// batch solve; reusing the bounds section's own grammar would mean
// writing another LP fragment just to move a few numbers.
package boundsimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Apply reads a CSV overlay of variable bounds from r and applies it to
// problem. Expected columns (header required): variable, lower, upper,
// binary. "lower"/"upper" may be blank (left unset) or "inf"/"-inf";
// "binary" is "true"/"false" (default false).
func Apply(problem *ir.Problem, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading bounds overlay: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("reading bounds overlay header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["variable"]; !ok {
		return fmt.Errorf("bounds overlay missing required %q column", "variable")
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading bounds overlay row: %w", err)
		}

		name := strings.TrimSpace(record[col["variable"]])
		if name == "" {
			continue
		}
		v := problem.Symbols.Get(name, true)

		if i, ok := col["lower"]; ok {
			if f, set, err := parseBoundCell(record, i); err != nil {
				return fmt.Errorf("row for %s: lower bound: %w", name, err)
			} else if set {
				v.SetLowerBound(f, false)
			}
		}
		if i, ok := col["upper"]; ok {
			if f, set, err := parseBoundCell(record, i); err != nil {
				return fmt.Errorf("row for %s: upper bound: %w", name, err)
			} else if set {
				v.SetUpperBound(f, false)
			}
		}
		if i, ok := col["binary"]; ok && i < len(record) {
			b, _ := strconv.ParseBool(strings.TrimSpace(record[i]))
			v.SetBinary(b)
		}
	}

	return nil
}

func parseBoundCell(record []string, idx int) (value float64, set bool, err error) {
	if idx >= len(record) {
		return 0, false, nil
	}
	cell := strings.TrimSpace(record[idx])
	if cell == "" {
		return 0, false, nil
	}

	switch strings.ToLower(cell) {
	case "inf", "+inf", "infinity":
		return math.Inf(1), true, nil
	case "-inf", "-infinity":
		return math.Inf(-1), true, nil
	}

	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %q: %w", cell, err)
	}
	return f, true, nil
}
