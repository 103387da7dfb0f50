package convert

import (
	"archive/zip"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
)

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()
	arc := filepath.Join(dir, "docs.bin")
	zipProject(t, arc, "", map[string]string{"index.xml": "<document/>"})
	fake := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(fake, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    bool
		wantErr bool
	}{
		{"zip without extension", arc, true, false},
		{"zip extension with text", fake, false, false},
		{"empty", empty, false, false},
		{"missing", filepath.Join(dir, "none"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("isArchiveFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, map[string]string{"sub/a.xml": "A"})
	s := &dirSource{root: filepath.Join(dir, "sub")}

	data, err := s.ReadFile("a.xml")
	if err != nil || string(data) != "A" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}
	// source root cannot be escaped
	writeProject(t, dir, map[string]string{"secret.xml": "S"})
	if _, err := s.ReadFile("../secret.xml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(../secret.xml) error = %v", err)
	}
}

func TestOpenZipSource(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	arc := filepath.Join(t.TempDir(), "docs.zip")
	zipProject(t, arc, "", map[string]string{
		"build/index.xml":   "I",
		"build/img/a.png":   "P",
		"builder/other.xml": "O",
		"top.xml":           "T",
	})

	s, err := openZipSource(context.Background(), arc, "build", nil, log)
	if err != nil {
		t.Fatalf("openZipSource() error = %v", err)
	}
	if len(s.files) != 2 {
		t.Errorf("got %d files, want 2: %v", len(s.files), s.files)
	}
	if data, err := s.ReadFile("img/a.png"); err != nil || string(data) != "P" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
	if _, err := s.ReadFile("other.xml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(other.xml) error = %v", err)
	}
	if s.String() != arc+":build" {
		t.Errorf("String() = %q", s.String())
	}

	if _, err := openZipSource(context.Background(), arc, "nothing", nil, log); err == nil {
		t.Error("empty subtree must fail")
	}
}

func TestOpenZipSource_CodePage(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	arc := filepath.Join(t.TempDir(), "old.zip")

	name, err := charmap.CodePage866.NewEncoder().String("глава.xml")
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, err := w.CreateHeader(&zip.FileHeader{Name: name, NonUTF8: true, Method: zip.Store})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("X")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := openZipSource(context.Background(), arc, "", charmap.CodePage866, log)
	if err != nil {
		t.Fatalf("openZipSource() error = %v", err)
	}
	if _, err := s.ReadFile("глава.xml"); err != nil {
		t.Errorf("decoded name not found: %v", err)
	}
}

func TestLoadTree(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	src := memSource(map[string]string{
		"api/mod.xml": `<document source="mod.rst"><paragraph>x</paragraph></document>`,
		"bad.xml":     `<section/>`,
	})

	tree, err := loadTree(src, "api/mod", log)
	if err != nil {
		t.Fatalf("loadTree() error = %v", err)
	}
	if tree.Attrs.DocName != "api/mod" {
		t.Errorf("docname = %q", tree.Attrs.DocName)
	}
	if _, err := loadTree(src, "bad", log); err == nil {
		t.Error("wrong root must fail")
	}
	if _, err := loadTree(src, "none", log); err == nil {
		t.Error("missing document must fail")
	}
}
