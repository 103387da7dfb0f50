package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dtex/convert/latex"
)

func TestCheckAdditionalFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"distinct", []string{"a/one.sty", "b/two.sty"}, false},
		{"same file twice", []string{"a/one.sty", "a/../a/one.sty"}, false},
		{"duplicate base", []string{"a/one.sty", "b/one.sty"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkAdditionalFiles(tt.files)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkAdditionalFiles() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckLogo(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(logo, pngHeader, 0644); err != nil {
		t.Fatal(err)
	}

	if err := checkLogo(""); err != nil {
		t.Errorf("no logo: %v", err)
	}
	if err := checkLogo(logo); err != nil {
		t.Errorf("existing logo: %v", err)
	}
	if err := checkLogo(filepath.Join(dir, "none.png")); err == nil {
		t.Error("missing logo must fail")
	}
	if err := checkLogo(dir); err == nil {
		t.Error("directory is not a logo")
	}
}

func TestSniffImage(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	tests := []struct {
		uri  string
		data []byte
		want string
	}{
		{"a.png", pngHeader, ""},
		{"a.PNG", pngHeader, ""},
		{"a.jpeg", jpeg, ""},
		{"a.jpg", jpeg, ""},
		{"a.eps", []byte("%!PS-Adobe-3.0 EPSF-3.0"), ""},
		{"a.png", jpeg, "not matching its extension"},
		{"a.png", []byte("plain text"), "not recognized"},
		{"a.png", nil, "not recognized"},
	}
	for _, tt := range tests {
		got := sniffImage(tt.uri, tt.data)
		if tt.want == "" && got != "" || !strings.Contains(got, tt.want) {
			t.Errorf("sniffImage(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestCheckImages(t *testing.T) {
	src := &zipSource{files: map[string][]byte{"img/a.png": pngHeader}}
	res := &latex.Result{Images: map[string]string{"img/a.png": "a.png", "img/b.png": "b.png"}}

	diags := checkImages(src, res, "index")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].DocName != "index" || !strings.Contains(diags[0].Message, "img/b.png") {
		t.Errorf("diagnostic = %v", diags[0])
	}
}
