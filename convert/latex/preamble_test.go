package latex

import (
	"slices"
	"testing"
)

func TestSortedDict(t *testing.T) {
	d := sortedDict{}
	d.set("b", "second")
	d.set("a", "first")
	d.set("c", "third")
	d.set("b", "again")
	if got := d.values(); !slices.Equal(got, []string{"first", "again", "third"}) {
		t.Errorf("values() = %v", got)
	}
	if got := d.String(); got != "first\nagain\nthird" {
		t.Errorf("String() = %q", got)
	}
}

func TestRequirements(t *testing.T) {
	tr := New(testOptions(), setupTestLogger(t))
	tr.require(reqMultirow)
	tr.require(reqColor)
	tr.require(reqColor)
	tr.fallback(fbTitle)
	got := tr.requirements.values()
	want := []string{requirementTexts[reqStatic], requirementTexts[reqColor], requirementTexts[reqMultirow]}
	if !slices.Equal(got, want) {
		t.Errorf("requirements = %v, want %v", got, want)
	}
	if len(tr.fallbacks) != 1 {
		t.Errorf("fallbacks = %v", tr.fallbacks)
	}
}
