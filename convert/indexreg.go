package convert

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/maruel/natural"
	yaml "gopkg.in/yaml.v3"

	"dtex/convert/latex"
)

// indexRegistry holds domain indices produced outside of document trees, they
// are read from YAML file:
//
//	indices:
//	  - domain: py
//	    name: modindex
//	    localname: Python Module Index
//	    groups:
//	      - letter: s
//	        entries:
//	          - {name: spam, docname: api, anchor: module-spam}
type indexRegistry struct {
	List []latex.DomainIndex `yaml:"indices"`
}

func (r *indexRegistry) Indices() []latex.DomainIndex {
	return r.List
}

func loadIndexRegistry(path string) (*indexRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read index registry: %w", err)
	}
	reg := &indexRegistry{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(reg); err != nil {
		return nil, fmt.Errorf("unable to decode index registry %q: %w", path, err)
	}
	for i, idx := range reg.List {
		if idx.Domain == "" || idx.Name == "" {
			return nil, fmt.Errorf("index registry %q: index %d must have domain and name", path, i)
		}
		sortIndex(&reg.List[i])
	}
	return reg, nil
}

// sortIndex orders letter groups the way people expect: "2" comes before
// "10". Entries keep file order since sub entries follow their parent.
func sortIndex(idx *latex.DomainIndex) {
	slices.SortStableFunc(idx.Groups, func(a, b latex.IndexGroup) int {
		return compareNatural(a.Letter, b.Letter)
	})
}

func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}
