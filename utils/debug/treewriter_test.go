package debug

import "testing"

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "depth 2", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "with formatting", depth: 1, format: "value: %d", args: []any{42}, want: "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty value", depth: 0, label: "field", value: "", want: "field: \n"},
		{name: "depth 1", depth: 1, label: "#text", value: "Hello, World.", want: "  #text: \"Hello, World.\"\n"},
		{name: "newline", depth: 0, label: "code", value: "a\nb", want: "code: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Element(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		attrs []Attr
		want  string
	}{
		{name: "bare", depth: 0, want: "section\n"},
		{
			name:  "skips empty",
			depth: 1,
			attrs: []Attr{{Name: "ids", List: []string{"a", "b"}}, {Name: "refuri"}, {Name: "docname", Value: "index"}},
			want:  "  section ids=[a,b] docname=\"index\"\n",
		},
		{
			name:  "quotes value",
			depth: 0,
			attrs: []Attr{{Name: "title", Value: `say "hi"`}},
			want:  "section title=\"say \\\"hi\\\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Element(tt.depth, "section", tt.attrs...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Element() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", `"hello"`},
		{"col1\tcol2", `"col1\tcol2"`},
		{`path\to\file`, `"path\\to\\file"`},
	}

	for _, tt := range tests {
		if got := encodeText(tt.input); got != tt.want {
			t.Errorf("encodeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
