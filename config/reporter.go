package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"dtex/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When destination cannot be created
// report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, index: make(map[string]int)}, nil
}

// item is a single report entry. Either path of the file on disk (read when
// report is finalized) or content captured at the time of the call.
type item struct {
	name    string
	path    string
	content []byte
	stamp   time.Time
}

func (it *item) kind() string {
	if it.content != nil {
		return "captured"
	}
	return "file"
}

// Report accumulates translation artifacts: configuration, logs, assembled
// trees and produced sources. Targets are translated in parallel so all
// Store* methods are safe for concurrent use. Nil Report ignores everything,
// this means no report was requested.
type Report struct {
	mu    sync.Mutex
	items []item
	index map[string]int
	file  *os.File
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file to be put into the report when it is closed. The
// same name may only be stored again for the same file.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[name]; ok {
		if r.items[i].path != path {
			panic(fmt.Sprintf("report entry %q already refers to %q, not %q", name, r.items[i].path, path))
		}
		return
	}
	r.add(item{name: name, path: path})
}

// StoreData captures data under name. Names must be unique.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[name]; ok {
		panic(fmt.Sprintf("report entry %q already stored", name))
	}
	r.add(item{name: name, content: append([]byte{}, data...), stamp: time.Now()})
}

// StoreText captures text under name. Repeated names get a time suffix, the
// same document may be assembled for several targets.
func (r *Report) StoreText(name, text string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	it := item{name: name, content: []byte(text), stamp: time.Now()}
	if _, ok := r.index[name]; ok {
		it.name = fmt.Sprintf("%s-%d", name, it.stamp.UnixNano())
	}
	r.add(it)
}

func (r *Report) add(it item) {
	r.index[it.name] = len(r.items)
	r.items = append(r.items, it)
}

// Close writes report archive: MANIFEST first, then entries sorted by name.
// Files which disappeared since they were stored are listed in MANIFEST
// but skipped.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	items := slices.Clone(r.items)
	slices.SortFunc(items, func(a, b item) int { return strings.Compare(a.name, b.name) })

	arc := zip.NewWriter(r.file)
	if err := addEntry(arc, "MANIFEST", time.Now(), strings.NewReader(manifest(items))); err != nil {
		arc.Close()
		return err
	}
	for i := range items {
		if err := items[i].save(arc); err != nil {
			arc.Close()
			return fmt.Errorf("unable to store %q in report: %w", items[i].name, err)
		}
	}
	return arc.Close()
}

func manifest(items []item) string {
	var b strings.Builder
	now := time.Now()
	for i := range items {
		it := &items[i]
		stamp := it.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(&b, "%s\t%s\t%s", stamp.UTC().Format(time.RFC3339), it.kind(), it.name)
		if it.path != "" {
			fmt.Fprintf(&b, "\t%s", it.path)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (it *item) save(arc *zip.Writer) error {
	if it.content != nil {
		return addEntry(arc, it.name, it.stamp, bytes.NewReader(it.content))
	}
	info, err := os.Stat(it.path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(it.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return addEntry(arc, it.name, info.ModTime(), f)
}

func addEntry(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: filepath.ToSlash(name), Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
