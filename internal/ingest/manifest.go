package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/certificate-extractor/constants"
)

// ManifestRow assigns a template to one file of a batch.
type ManifestRow struct {
	Path     string
	Template constants.TemplateType
}

var ErrManifestHeader = errors.New("manifest needs a header row with path and template columns")

// ReadManifest reads the first sheet of an XLSX batch manifest. The header row
// names the "path" and "template" columns in any order; relative paths are
// resolved against the manifest's directory. Rows with an empty path are
// skipped, and an empty template cell means auto-detection.
func ReadManifest(path string) ([]ManifestRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrManifestHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrManifestHeader
	}

	pathCol, tmplCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "path", "file":
			pathCol = i
		case "template", "type":
			tmplCol = i
		}
	}
	if pathCol < 0 || tmplCol < 0 {
		return nil, ErrManifestHeader
	}

	base := filepath.Dir(path)
	var out []ManifestRow
	for n, row := range rows[1:] {
		p := strings.TrimSpace(cell(row, pathCol))
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		t := constants.TemplateAuto
		if raw := strings.TrimSpace(cell(row, tmplCol)); raw != "" {
			var ok bool
			if t, ok = constants.Canonicalize(raw); !ok {
				return nil, fmt.Errorf("row %d: unknown template %q", n+2, raw)
			}
		}
		out = append(out, ManifestRow{Path: p, Template: t})
	}
	return out, nil
}

// GetRows drops trailing empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
