package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/route"
)

const testConfig = `
[times]
DDD1 = [40.0, 50.0]
DDD2 = [30.0]
BOB1 = [10.0]
BOB2 = [20.0]
WF1 = [15.0]
CCM1 = [25.0]

[prerequisites]
DDD2 = ["DDD1"]
`

// execute runs the root command with args in a scratch cache directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readExported(t *testing.T, dir string) *route.Route {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("exported files = %v (err %v), want exactly one", files, err)
	}
	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r, err := route.ReadJSON(f)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestOptimizeCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	outDir := filepath.Join(t.TempDir(), "routes")

	if _, err := execute(t, "optimize", "--config", cfg, "--stars", "3", "--output-dir", outDir, "--no-cache"); err != nil {
		t.Fatalf("optimize error = %v", err)
	}

	r := readExported(t, outDir)
	if diff := cmp.Diff([]string{"BOB1", "DDD1", "WF1"}, r.IDs()); diff != "" {
		t.Errorf("route mismatch (-want +got):\n%s", diff)
	}
	if r.Time != 70 {
		t.Errorf("route time = %v, want 70", r.Time)
	}
	if r.Options.Stars != 3 || r.Options.MaxUpperLevelStars != nil {
		t.Errorf("options = %+v", r.Options)
	}
}

func TestOptimizeCommandFlags(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	outDir := t.TempDir()

	_, err := execute(t, "optimize", "--config", cfg, "--stars", "2", "--output-dir", outDir,
		"--exclude-course-ids", "WF", "--exclude-star-ids", "BOB1", "--max-upper-level-stars", "0")
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}

	r := readExported(t, outDir)
	if diff := cmp.Diff([]string{"BOB2", "DDD1"}, r.IDs()); diff != "" {
		t.Errorf("route mismatch (-want +got):\n%s", diff)
	}
	if r.Options.MaxUpperLevelStars == nil || *r.Options.MaxUpperLevelStars != 0 {
		t.Errorf("max upper level stars = %v, want 0", r.Options.MaxUpperLevelStars)
	}
}

func TestOptimizeCommandErrors(t *testing.T) {
	cfg := writeConfig(t, testConfig)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.toml")}, errors.ErrCodeConfigNotFound},
		{"root excluded", []string{"--config", cfg, "--exclude-star-ids", "DDD1"}, errors.ErrCodeInvalidExcluded},
		{"unknown course", []string{"--config", cfg, "--exclude-course-ids", "ABC"}, errors.ErrCodeInvalidExcluded},
		{"too many stars", []string{"--config", cfg, "--stars", "10"}, errors.ErrCodeNoValidRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"optimize", "--no-export", "--no-cache"}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGraphCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	out := filepath.Join(t.TempDir(), "graph", "prereqs.dot")

	if _, err := execute(t, "graph", "--config", cfg, "--format", "dot", "--selected", "DDD1", "-o", out); err != nil {
		t.Fatalf("graph error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"DDD1" -> "DDD2";`, `"DDD1" [fillcolor=palegreen];`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("graph missing %q:\n%s", want, data)
		}
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
}
