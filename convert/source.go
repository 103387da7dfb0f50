package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"dtex/archive"
	"dtex/doctree"
)

// treeExt is extension of serialized document trees, document names never
// carry it.
const treeExt = ".xml"

// Source gives access to serialized document trees and referenced files by
// slash separated path relative to the source root.
type Source interface {
	ReadFile(name string) ([]byte, error)
	String() string
}

type dirSource struct {
	root string
}

func (s *dirSource) ReadFile(name string) ([]byte, error) {
	name = path.Clean("/" + name)[1:]
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
}

func (s *dirSource) String() string {
	return s.root
}

// zipSource keeps content of the archive subtree in memory, archive is closed
// as soon as it is read.
type zipSource struct {
	archive string
	prefix  string
	files   map[string][]byte
}

func (s *zipSource) ReadFile(name string) ([]byte, error) {
	name = path.Clean("/" + name)[1:]
	data, ok := s.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path.Join(s.prefix, name), Err: fs.ErrNotExist}
	}
	return data, nil
}

func (s *zipSource) String() string {
	if s.prefix == "" {
		return s.archive
	}
	return s.archive + ":" + s.prefix
}

func openZipSource(ctx context.Context, file, prefix string, cp encoding.Encoding, log *zap.Logger) (*zipSource, error) {
	s := &zipSource{
		archive: file,
		prefix:  strings.Trim(filepath.ToSlash(prefix), "/"),
		files:   make(map[string][]byte),
	}
	err := archive.Walk(ctx, file, s.prefix, func(arc, rel string, f *zip.File) error {
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(rel); err == nil {
				rel = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", rel), zap.Error(err))
			}
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s in %s: %w", f.FileHeader.Name, arc, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %s in %s: %w", f.FileHeader.Name, arc, err)
		}
		s.files[rel] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(s.files) == 0 {
		return nil, fmt.Errorf("nothing found in archive (%s) under (%s)", file, s.prefix)
	}
	return s, nil
}

// isArchiveFile sniffs file header, extension is ignored.
func isArchiveFile(file string) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// openSource finds out what src points to: directory, archive or directory
// inside archive.
func openSource(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) (Source, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return &dirSource{root: head}, nil
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		ok, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("input was not recognized as directory or zip archive (%s)", head)
		}
		// we need to look inside to see if path makes sense
		tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
		return openZipSource(ctx, head, tail, cp, log)
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

// loadTree reads and parses serialized tree of the document.
func loadTree(src Source, docname string, log *zap.Logger) (*doctree.Node, error) {
	data, err := src.ReadFile(docname + treeExt)
	if err != nil {
		return nil, fmt.Errorf("unable to read document %q: %w", docname, err)
	}
	tree, err := doctree.Load(bytes.NewReader(data), docname+treeExt, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load document %q: %w", docname, err)
	}
	tree.Attrs.DocName = docname
	return tree, nil
}
