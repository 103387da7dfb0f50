package convert

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/h2non/filetype"

	"dtex/convert/latex"
)

// checkAdditionalFiles makes sure no two distinct files would end up under
// the same name next to generated sources.
func checkAdditionalFiles(files []string) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		prev, ok := seen[base]
		if !ok {
			seen[base] = f
			continue
		}
		if filepath.Clean(prev) == filepath.Clean(f) {
			continue
		}
		return fmt.Errorf("duplicate base name %q of additional files (%s, %s)", base, prev, f)
	}
	return nil
}

// checkLogo makes sure configured logo exists.
func checkLogo(logo string) error {
	if logo == "" {
		return nil
	}
	fi, err := os.Stat(logo)
	if err != nil {
		return fmt.Errorf("logo file is missing: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("logo %q is not a file", logo)
	}
	return nil
}

// checkImages sniffs content of every image referenced by translation
// result. Nothing here is fatal, images are copied by packaging step which may
// know better.
func checkImages(src Source, res *latex.Result, docname string) []latex.Diagnostic {
	var diags []latex.Diagnostic
	for _, uri := range slices.Sorted(maps.Keys(res.Images)) {
		data, err := src.ReadFile(uri)
		if err != nil {
			diags = append(diags, latex.Diagnostic{DocName: docname, Message: fmt.Sprintf("image file %q not found", uri)})
			continue
		}
		if msg := sniffImage(uri, data); msg != "" {
			diags = append(diags, latex.Diagnostic{DocName: docname, Message: msg})
		}
	}
	return diags
}

func sniffImage(uri string, data []byte) string {
	ext := latex.ImageExt(uri)
	if ext == "eps" {
		// no magic for eps, plain text postscript
		return ""
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return fmt.Sprintf("image %q content is not recognized", uri)
	}
	want := filetype.GetType(ext)
	if want == filetype.Unknown || want.MIME.Value != kind.MIME.Value {
		return fmt.Sprintf("image %q content is %s, not matching its extension", uri, kind.MIME.Value)
	}
	return ""
}
