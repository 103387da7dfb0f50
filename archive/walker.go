// Package archive reads document bundles packed into zip files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is called for every regular file under the walked subtree. Archive
// is the path passed to Walk, rel is the entry name relative to the subtree
// root. Returning an error stops the walk.
type WalkFunc func(archive, rel string, file *zip.File) error

// Walk visits regular files of the archive located under dir (slash
// separated, empty for the whole archive). Subtree is matched by whole path
// segments, "build" never matches "builder/x". Archive with any entry
// escaping extraction root is rejected as a whole.
func Walk(ctx context.Context, archive, dir string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	dir = strings.Trim(dir, "/")
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		rel, ok := under(name, dir)
		if !ok {
			continue
		}
		if err := walkFn(archive, rel, f); err != nil {
			return err
		}
	}
	return nil
}

// under reports whether name is inside dir and returns the remainder.
func under(name, dir string) (string, bool) {
	if dir == "" {
		return name, true
	}
	rest, ok := strings.CutPrefix(name, dir+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || strings.Contains(name, `:\`) {
		return false
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
