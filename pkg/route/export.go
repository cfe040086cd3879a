package route

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DefaultOutputDir is where the CLI writes routes.
const DefaultOutputDir = "routes"

// WriteJSON encodes r as indented JSON and writes it to w.
func WriteJSON(r *Route, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a route written by [WriteJSON].
func ReadJSON(rd io.Reader) (*Route, error) {
	var r Route
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &r, nil
}

// FileName returns the file name a route created at t is exported under.
func FileName(t time.Time) string {
	return t.Format("2006-01-02_15-04-05") + ".json"
}

// ExportJSON writes r to dir, creating dir if needed, and returns the path.
func ExportJSON(r *Route, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(r.CreatedAt))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteJSON(r, f); err != nil {
		return "", err
	}
	return path, nil
}
