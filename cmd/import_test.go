package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportJSONSynthesizesMissingProfiles(t *testing.T) {
	isolate(t)
	seedBook(t)

	path := writeFile(t, t.TempDir(), "export.json",
		`[{"site":"Blue Hole","duration":3120,"max_depth":28500,"mean_depth":14200,"sample_count":0}]`)

	out, err := executeCommand(rootCmd, "import", path)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 1 dive(s)") {
		t.Errorf("output = %q", out)
	}

	book := loadTestBook(t)
	if len(book.Dives) != 1 {
		t.Fatalf("logbook has %d dives, want 1", len(book.Dives))
	}
	d := book.Dives[0]
	if d.ID == "" {
		t.Error("imported dive did not get an ID")
	}
	if !d.Synthetic || d.SampleCount == 0 {
		t.Errorf("imported sample-less dive not synthesized: %+v", d)
	}
}

func TestImportYAML(t *testing.T) {
	isolate(t)
	seedBook(t)

	path := writeFile(t, t.TempDir(), "log.yaml", `dives:
  - site: Silfra
    start: 2026-07-04T09:30:00Z
    duration: 2700
    max_depth: 18.0
    mean_depth: 11.0
`)

	out, err := executeCommand(rootCmd, "import", path)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}

	book := loadTestBook(t)
	if book.Dives[0].MaxDepth != 18000 {
		t.Errorf("MaxDepth = %d, want 18000", book.Dives[0].MaxDepth)
	}
}

func TestImportMissingFile(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "import", "/does/not/exist.json")
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("err = %v, want file-not-found", err)
	}
}

func TestImportNoArgsNoWatch(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "import", "--watch=false")
	if err == nil || !strings.Contains(err.Error(), "nothing to import") {
		t.Errorf("err = %v, want nothing-to-import", err)
	}
}
