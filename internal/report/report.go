// Package report renders a Solution as human-readable text or as one of
// several machine-readable export formats.
//
// What: Write, rendering a Solution in "table", "csv", "json", or "yaml"
// format.
// How: follows this codebase's REPL printer layout (one print* function
// per format, a plain switch to dispatch) and its exporter's format-name
// conventions, adding golang.org/x/text/message for thousands-grouped
// numeric formatting in the table view.
// Why: the table view is for a human at a terminal; the other formats
// exist so a batch run or RPC client can consume a solution without
// scraping text.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

// variableNames returns the solution's original (non-synthetic) variable
// names in symbol-table order.
func variableNames(sol *ir.Solution) []string {
	var names []string
	for _, v := range sol.Problem.Symbols.Variables() {
		if _, ok := sol.Values[v]; ok {
			names = append(names, v.Name)
		}
	}
	return names
}

func valueByName(sol *ir.Solution) map[string]float64 {
	byName := make(map[string]float64, len(sol.Values))
	for v, val := range sol.Values {
		byName[v.Name] = val
	}
	return byName
}

// Write renders sol to w in the requested format ("table", "csv", "json",
// or "yaml"; unrecognized formats fall back to "table").
func Write(w io.Writer, sol *ir.Solution, format string) error {
	switch format {
	case "csv":
		return writeCSV(w, sol)
	case "json":
		return writeJSON(w, sol)
	case "yaml":
		return writeYAML(w, sol)
	default:
		return writeTable(w, sol)
	}
}

func writeTable(w io.Writer, sol *ir.Solution) error {
	p := message.NewPrinter(language.English)

	status := "optimal"
	if !sol.Optimal {
		status = "iteration-capped"
	}
	if _, err := p.Fprintf(w, "status:    %s\n", status); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "mode:      %s\n", sol.Problem.Mode); err != nil {
		return err
	}

	names := variableNames(sol)
	sort.Strings(names)
	byName := valueByName(sol)

	width := len("variable")
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	if _, err := fmt.Fprintf(w, "%-*s  value\n", width, "variable"); err != nil {
		return err
	}
	for _, n := range names {
		if _, err := p.Fprintf(w, "%-*s  %v\n", width, n, byName[n]); err != nil {
			return err
		}
	}

	return nil
}

func writeCSV(w io.Writer, sol *ir.Solution) error {
	names := variableNames(sol)
	sort.Strings(names)
	byName := valueByName(sol)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "value"}); err != nil {
		return err
	}
	for _, n := range names {
		if err := cw.Write([]string{n, strconv.FormatFloat(byName[n], 'g', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type exportDoc struct {
	Status    string             `json:"status" yaml:"status"`
	Mode      string             `json:"mode" yaml:"mode"`
	Variables map[string]float64 `json:"variables" yaml:"variables"`
}

func buildDoc(sol *ir.Solution) exportDoc {
	status := "optimal"
	if !sol.Optimal {
		status = "iteration-capped"
	}
	return exportDoc{
		Status:    status,
		Mode:      sol.Problem.Mode.String(),
		Variables: valueByName(sol),
	}
}

func writeJSON(w io.Writer, sol *ir.Solution) error {
	doc := buildDoc(sol)
	names := variableNames(sol)
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "{\n  \"status\": %q,\n  \"mode\": %q,\n  \"variables\": {\n", doc.Status, doc.Mode); err != nil {
		return err
	}
	for i, n := range names {
		comma := ","
		if i == len(names)-1 {
			comma = ""
		}
		if _, err := fmt.Fprintf(w, "    %q: %v%s\n", n, doc.Variables[n], comma); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "  }\n}")
	return err
}

func writeYAML(w io.Writer, sol *ir.Solution) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(buildDoc(sol))
}
