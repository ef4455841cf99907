// Package notebook reads, validates and normalises notebook documents.
//
// A document is kept as a generic JSON tree so that keys this package does
// not know about survive a rewrite. Numbers are decoded as json.Number and
// written back verbatim.
package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tutorcheck/internal/fsutil"
)

// Cell types.
const (
	CellCode     = "code"
	CellMarkdown = "markdown"
)

// Cell is one entry of the notebook's cells array.
type Cell map[string]any

// Type returns the cell_type field.
func (c Cell) Type() string {
	s, _ := c["cell_type"].(string)
	return s
}

// Source returns the cell text; list sources are concatenated.
func (c Cell) Source() string {
	switch v := c["source"].(type) {
	case string:
		return v
	case []any:
		var sb strings.Builder
		for _, line := range v {
			if s, ok := line.(string); ok {
				sb.WriteString(s)
			}
		}
		return sb.String()
	}
	return ""
}

// HasOutputs is true when outputs holds at least one record.
func (c Cell) HasOutputs() bool {
	outputs, ok := c["outputs"].([]any)
	return ok && len(outputs) > 0
}

// HasExecutionCount is true when execution_count is set to a non-zero number.
func (c Cell) HasExecutionCount() bool {
	switch v := c["execution_count"].(type) {
	case nil:
		return false
	case json.Number:
		return v.String() != "0"
	case float64:
		return v != 0
	}
	return true
}

// Clear resets outputs and execution_count. It reports whether anything changed.
func (c Cell) Clear() bool {
	changed := false
	if c.HasOutputs() {
		c["outputs"] = []any{}
		changed = true
	}
	if c.HasExecutionCount() {
		c["execution_count"] = nil
		changed = true
	}
	return changed
}

// Document is a parsed notebook.
type Document struct {
	data map[string]any
}

// Parse decodes a notebook from JSON.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid JSON - %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("invalid JSON - top level is not an object")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON - trailing data after offset %d", dec.InputOffset())
	}
	return &Document{data: root}, nil
}

// Load reads and parses the notebook at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file - %w", err)
	}
	return Parse(data)
}

// Has reports whether the top-level key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

// Cells returns the object entries of the cells array.
// The returned cells share state with the document.
func (d *Document) Cells() []Cell {
	raw, _ := d.data["cells"].([]any)
	cells := make([]Cell, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			cells = append(cells, Cell(m))
		}
	}
	return cells
}

// CodeCells returns only the code cells.
func (d *Document) CodeCells() []Cell {
	var out []Cell
	for _, c := range d.Cells() {
		if c.Type() == CellCode {
			out = append(out, c)
		}
	}
	return out
}

// HasOutputs is true when any code cell holds output.
func (d *Document) HasOutputs() bool {
	for _, c := range d.CodeCells() {
		if c.HasOutputs() {
			return true
		}
	}
	return false
}

// HasExecutionCounts is true when any code cell has an execution count.
func (d *Document) HasExecutionCounts() bool {
	for _, c := range d.CodeCells() {
		if c.HasExecutionCount() {
			return true
		}
	}
	return false
}

// IsClean is true when every code cell has empty outputs and no execution count.
func (d *Document) IsClean() bool {
	return !d.HasOutputs() && !d.HasExecutionCounts()
}

// ClearOutputs clears every code cell and reports whether anything changed.
// Clearing a clean document is a no-op.
func (d *Document) ClearOutputs() bool {
	changed := false
	for _, c := range d.CodeCells() {
		if c.Clear() {
			changed = true
		}
	}
	return changed
}

// Encode serialises the document with the given indent width and a trailing newline.
// Keys are written in sorted order, so encoding is deterministic.
func (d *Document) Encode(indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(d.data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path atomically.
func (d *Document) Save(path string, indent int) error {
	data, err := d.Encode(indent)
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	return fsutil.ReplaceFile(path, data)
}
