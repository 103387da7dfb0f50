package config

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()
	dst := filepath.Join(t.TempDir(), "report.zip")
	conf := ReporterConfig{Destination: dst}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return r, dst
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_NilIsNoop(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", []byte("b"))
	r.StoreText("a", "b")
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReport_Archive(t *testing.T) {
	r, dst := newTestReport(t)

	src := filepath.Join(t.TempDir(), "manual.tex")
	if err := os.WriteFile(src, []byte(`\documentclass{report}`), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("result/manual.tex", src)
	r.StoreData("config/dtex.yaml", []byte("version: 1\n"))
	r.StoreText("tree/index.txt", "document\n")
	r.StoreText("tree/index.txt", "document again\n")
	r.Store("result/manual.tex", src)
	r.Store("result/gone.tex", filepath.Join(t.TempDir(), "gone.tex"))

	if !strings.HasSuffix(r.Name(), "report.zip") {
		t.Errorf("Name() = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, dst)
	if files["result/manual.tex"] != `\documentclass{report}` {
		t.Errorf("stored file content = %q", files["result/manual.tex"])
	}
	if files["config/dtex.yaml"] != "version: 1\n" {
		t.Errorf("stored data content = %q", files["config/dtex.yaml"])
	}
	if files["tree/index.txt"] != "document\n" {
		t.Errorf("stored text content = %q", files["tree/index.txt"])
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "tree/index.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned text entry, got %d", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "result/manual.tex") {
		t.Errorf("MANIFEST does not list stored file: %q", files["MANIFEST"])
	}
	if !strings.Contains(files["MANIFEST"], "result/gone.tex") {
		t.Errorf("MANIFEST does not list missing file: %q", files["MANIFEST"])
	}
	if _, ok := files["result/gone.tex"]; ok {
		t.Error("missing file should not be archived")
	}
}

func TestReport_StoreConflictPanics(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	r.Store("result/manual.tex", "a.tex")
	defer func() {
		if recover() == nil {
			t.Error("expected panic when entry is redirected to another file")
		}
	}()
	r.Store("result/manual.tex", "b.tex")
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate data entry")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReport_ConcurrentStore(t *testing.T) {
	r, dst := newTestReport(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.StoreText(fmt.Sprintf("result/%02d.tex", i), "x")
		}(i)
	}
	wg.Wait()
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := len(readArchive(t, dst)); got != 17 {
		t.Errorf("archive has %d entries, want 17 (16 + MANIFEST)", got)
	}
}
