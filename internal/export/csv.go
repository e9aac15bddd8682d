// Package export writes run results to downloadable CSV artifacts.
// Actions return a URL path to the artifact instead of inline bytes so
// responses stay small.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/slahq/sla/internal/core"
)

// URLPrefix is the route prefix the server mounts the artifacts
// directory under.
const URLPrefix = "/artifacts/"

// Writer writes artifacts into a directory served read-only by the
// HTTP server.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create artifacts dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteProjections writes a run's scope metadata and result rows as
// CSV and returns the artifact's URL path.
func (w *Writer) WriteProjections(run *core.Run, rows []core.ProjectionRow) (string, error) {
	name := fmt.Sprintf("%s-%s.csv", run.Kind, run.ID)
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)

	// Scope metadata rows come first so the file is self-describing.
	meta := [][]string{
		{"# run_id", run.ID},
		{"# kind", string(run.Kind)},
		{"# period", run.Scope.Period},
		{"# category", run.Scope.Category},
		{"# supplier", run.Scope.Supplier},
		{"# confidence", strconv.Itoa(run.Scope.Confidence)},
		{"# status", string(run.Status)},
	}
	for _, record := range meta {
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write artifact: %w", err)
		}
	}

	if err := cw.Write([]string{"period", "category", "supplier", "demand", "unit_cost", "spend"}); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Period),
			r.Category,
			r.Supplier,
			r.Demand.String(),
			r.UnitCost.String(),
			r.Spend.String(),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write artifact: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush artifact: %w", err)
	}

	return URLPrefix + name, nil
}

// Dir returns the artifacts directory for serving.
func (w *Writer) Dir() string {
	return w.dir
}
