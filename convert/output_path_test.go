package convert

import (
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"dtex/config"
	"dtex/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Project.FileNameTransliterate = transliterate
	cfg.Project.OutputNameTemplate = template
	return &state.LocalEnv{
		Log:    zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

func testValues() Values {
	return Values{
		Context:  string(config.OutputNameTemplateFieldName),
		Target:   "manual",
		DocName:  "index",
		Title:    "User Manual",
		Authors:  []string{"Team"},
		Release:  "1.2",
		Language: "en",
	}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		noDirs        bool
		transliterate bool
		template      string
		expected      string
	}{
		{"plain", "manual.tex", false, false, "", filepath.Join("/output", "manual.tex")},
		{"keep dirs", "books/en/manual.tex", false, false, "", filepath.Join("/output", "books", "en", "manual.tex")},
		{"no dirs", "books/en/manual.tex", true, false, "", filepath.Join("/output", "manual.tex")},
		{"no extension", "manual", false, false, "", filepath.Join("/output", "manual.tex")},
		{"transliterate", "Руководство.tex", false, true, "", filepath.Join("/output", "rukovodstvo.tex")},
		{"template", "manual.tex", true, false, "{{ .Release }}/{{ .Title }}", filepath.Join("/output", "1.2", "User_Manual.tex")},
		{"template with extension", "manual.tex", true, false, "{{ .Target }}-{{ .Release }}.tex", filepath.Join("/output", "manual-1.2.tex")},
		{"template keeps target dirs", "books/manual.tex", false, false, "{{ .DocName }}", filepath.Join("/output", "books", "index.tex")},
		{"template with sprig", "manual.tex", true, true, "{{ .Title | upper }}", filepath.Join("/output", "user-manual.tex")},
		{"broken template", "manual.tex", true, false, "{{ .Title", filepath.Join("/output", "manual.tex")},
		{"unknown field", "manual.tex", true, false, "{{ .Nope }}", filepath.Join("/output", "manual.tex")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate, tt.template)
			result := buildOutputPath(testValues(), tt.target, "/output", env)
			if result != tt.expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetermineOutputDir(t *testing.T) {
	target := filepath.Join("books", "manual.tex")
	if got := determineOutputDir(target, "/output", setupTestEnvForOutputPath(t, true, false, "")); got != "/output" {
		t.Errorf("determineOutputDir() = %q", got)
	}
	if got := determineOutputDir(target, "/output", setupTestEnvForOutputPath(t, false, false, "")); got != filepath.Join("/output", "books") {
		t.Errorf("determineOutputDir() = %q", got)
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", filepath.Join("release", "manual"), []string{"release", "manual"}},
		{"single segment", "manual", []string{"manual"}},
		{"with trailing slash", filepath.Join("release", "manual") + string(filepath.Separator), []string{"release", "manual"}},
		{"climbing up", filepath.Join("..", "..", "manual"), []string{"manual"}},
		{"doubled separator", "release" + string(filepath.Separator) + string(filepath.Separator) + "manual", []string{"release", "manual"}},
		{"empty path", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := splitAndCleanPath(tt.path); !slices.Equal(result, tt.expected) {
				t.Errorf("splitAndCleanPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAssemblePathWithSubdirs_EmptyPath(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")
	if result := assemblePathWithSubdirs("/output", "", env); result != "/output" {
		t.Errorf("assemblePathWithSubdirs() with empty path = %q, want %q", result, "/output")
	}
}
