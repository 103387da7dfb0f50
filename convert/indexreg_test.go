package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRegistry = `indices:
  - domain: py
    name: modindex
    localname: Python Module Index
    groups:
      - letter: s10
        entries:
          - {name: spam10, docname: api, anchor: module-spam10}
      - letter: s2
        entries:
          - {name: spam2, docname: api, anchor: module-spam2}
          - {name: spam2.eggs, subtype: 2, docname: api, anchor: module-spam2.eggs}
          - {name: spam2.bacon, subtype: 2, docname: api, anchor: module-spam2.bacon}
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indices.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	return path
}

func TestLoadIndexRegistry(t *testing.T) {
	reg, err := loadIndexRegistry(writeRegistry(t, sampleRegistry))
	if err != nil {
		t.Fatalf("loadIndexRegistry() error = %v", err)
	}
	indices := reg.Indices()
	if len(indices) != 1 || indices[0].FullName() != "py-modindex" {
		t.Fatalf("indices = %+v", indices)
	}
	groups := indices[0].Groups
	if len(groups) != 2 || groups[0].Letter != "s2" || groups[1].Letter != "s10" {
		t.Errorf("groups are not sorted naturally: %+v", groups)
	}
	var names []string
	for _, e := range groups[0].Entries {
		names = append(names, e.Name)
	}
	if got := strings.Join(names, ","); got != "spam2,spam2.eggs,spam2.bacon" {
		t.Errorf("entries order changed: %s", got)
	}
}

func TestLoadIndexRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "indices:\n  - domain: py\n    name: x\n    color: red\n", "unable to decode"},
		{"no domain", "indices:\n  - name: modindex\n", "must have domain and name"},
		{"not yaml", "indices: [", "unable to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadIndexRegistry(writeRegistry(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadIndexRegistry() error = %v, want %q", err, tt.want)
			}
		})
	}

	if _, err := loadIndexRegistry(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("missing registry must fail")
	}
}

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a2", "a10", -1},
		{"a10", "a2", 1},
		{"b", "b", 0},
	}
	for _, tt := range tests {
		if got := compareNatural(tt.a, tt.b); got != tt.want {
			t.Errorf("compareNatural(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
