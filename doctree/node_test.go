package doctree

import (
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"document", KindDocument},
		{"start_of_file", KindStartOfFile},
		{"paragraph", KindParagraph},
		{"note", KindAdmonition},
		{"warning", KindAdmonition},
		{"admonition", KindAdmonition},
		{"collected_footnote", KindCollectedFootnote},
		{"substitution_definition", KindSubstitutionDefinition},
		{"attribution", KindAttribution},
		{"rubric", KindRubric},
		{"container", KindContainer},
		{"literal_strong", KindLiteralStrong},
		{"literal_emphasis", KindLiteralEmphasis},
		{"field_list", KindFieldList},
		{"field_name", KindFieldName},
		{"field_body", KindFieldBody},
		{"desc_signature", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := KindOf(tt.tag); got != tt.want {
				t.Errorf("KindOf(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k := KindUnknown + 1; k < KindCount; k++ {
		if k.String() == "" || k.String() == "invalid" {
			t.Errorf("kind %d has no tag name", k)
		}
		if k == KindText {
			continue
		}
		if got := KindOf(k.String()); got != k {
			t.Errorf("KindOf(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if Kind(-1).String() != "invalid" || KindCount.String() != "invalid" {
		t.Error("out of range kinds must report invalid")
	}
}

func TestNodeAppendAndIndex(t *testing.T) {
	a := New(KindParagraph, NewText("a"))
	b := New(KindParagraph, NewText("b"))
	sec := New(KindSection, New(KindTitle, NewText("T")), a, b)

	if a.Parent != sec || b.Parent != sec {
		t.Fatal("children were not adopted")
	}
	if got := sec.Index(b); got != 2 {
		t.Errorf("Index(b) = %d, want 2", got)
	}
	if got := sec.Index(New(KindParagraph)); got != -1 {
		t.Errorf("Index(foreign) = %d, want -1", got)
	}
	if b.Prev() != a {
		t.Error("Prev() of b must be a")
	}
	if sec.Children[0].Prev() != nil {
		t.Error("Prev() of first child must be nil")
	}
	if sec.Prev() != nil {
		t.Error("Prev() of root must be nil")
	}
}

func TestNodeAsText(t *testing.T) {
	n := New(KindParagraph,
		NewText("Hello, "),
		New(KindEmphasis, NewText("brave ")),
		New(KindStrong, New(KindLiteral, NewText("new"))),
		NewText(" world."))
	if got, want := n.AsText(), "Hello, brave new world."; got != want {
		t.Errorf("AsText() = %q, want %q", got, want)
	}
}

func TestNodeWalkSkip(t *testing.T) {
	tree := New(KindDocument,
		New(KindSection, New(KindParagraph, NewText("x"))),
		New(KindStartOfFile, New(KindParagraph, NewText("y"))),
	)
	var visited []string
	tree.Walk(func(n *Node) bool {
		visited = append(visited, n.Tag)
		return n.Kind != KindStartOfFile
	})
	got := strings.Join(visited, ",")
	want := "document,section,paragraph,#text,start_of_file"
	if got != want {
		t.Errorf("Walk() visited %s, want %s", got, want)
	}
}

func TestNodeHelpers(t *testing.T) {
	p := New(KindParagraph)
	p.Attrs.Classes = []string{"first", "last"}
	item := New(KindListItem, p)
	New(KindBulletList, item)

	if !p.HasClass("last") || p.HasClass("middle") {
		t.Error("HasClass() mismatch")
	}
	if p.Ancestor(KindBulletList, KindEnumeratedList) == nil {
		t.Error("Ancestor() did not find list")
	}
	if p.Ancestor(KindTable) != nil {
		t.Error("Ancestor() found table that does not exist")
	}
	if item.FirstChild(KindParagraph) != p {
		t.Error("FirstChild() mismatch")
	}
	if _, ok := p.Get("width"); ok {
		t.Error("Get() on empty extra returned value")
	}
	p.Set("width", "50%")
	if v, ok := p.Get("width"); !ok || v != "50%" {
		t.Errorf("Get(width) = %q, %v", v, ok)
	}
}

func TestNodeString(t *testing.T) {
	n := New(KindSection, New(KindTitle, NewText("Intro")))
	n.Attrs.IDs = []string{"intro"}
	n.Set("zeta", "1").Set("alpha", "2")

	got := n.String()
	for _, want := range []string{`section ids=[intro] alpha="2" zeta="1"`, "  title", `    #text: "Intro"`} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	var nilNode *Node
	if nilNode.String() != "<nil Node>" {
		t.Error("nil node must be printable")
	}
}

func TestNodeClone(t *testing.T) {
	orig := New(KindSection, New(KindTitle, NewText("Intro")), New(KindParagraph, NewText("body")))
	orig.Attrs.IDs = []string{"intro"}
	orig.Set("x", "1")
	root := New(KindDocument, orig)

	cp := orig.Clone()
	if cp.Parent != nil {
		t.Error("clone must have no parent")
	}
	if root.Children[0] != orig {
		t.Error("clone must not change original tree")
	}
	if cp.AsText() != "Introbody" {
		t.Errorf("AsText() = %q", cp.AsText())
	}
	for i, c := range cp.Children {
		if c == orig.Children[i] || c.Parent != cp {
			t.Errorf("child %d is not a re-parented copy", i)
		}
	}
	cp.Attrs.IDs[0] = "changed"
	cp.Set("x", "2")
	if orig.Attrs.IDs[0] != "intro" {
		t.Error("ids are shared with the clone")
	}
	if v, _ := orig.Get("x"); v != "1" {
		t.Error("extra attributes are shared with the clone")
	}
}

func TestNodeReplace(t *testing.T) {
	old := New(KindToctree)
	root := New(KindDocument, New(KindParagraph), old)
	repl := New(KindCompound)

	if !old.Replace(repl) {
		t.Fatal("Replace() = false")
	}
	if root.Children[1] != repl || repl.Parent != root {
		t.Error("replacement is not in place")
	}
	if old.Parent != nil {
		t.Error("replaced node must be detached")
	}
	if old.Replace(New(KindText)) {
		t.Error("detached node cannot be replaced")
	}
}
