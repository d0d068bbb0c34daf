package assembly

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const manifestPath = "META-INF/MANIFEST.MF"

// fixed so that identical inputs give identical archives
var zipTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteJar writes entries to a jar at p, manifest first.
func WriteJar(p string, entries []Entry) error {
	if dir := filepath.Dir(p); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := writeZip(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeZip(f *os.File, entries []Entry) error {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		switch {
		case a.Path == manifestPath:
			return -1
		case b.Path == manifestPath:
			return 1
		}
		return strings.Compare(a.Path, b.Path)
	})
	zw := zip.NewWriter(f)
	for _, e := range sorted {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Path,
			Method:   zip.Deflate,
			Modified: zipTime,
		})
		if err != nil {
			return err
		}
		if _, err := w.Write(e.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// WriteDir uploads entries below dir, keeping their archive paths.
func WriteDir(ctx context.Context, fs afs.Service, dir string, entries []Entry) error {
	for _, e := range entries {
		if err := fs.Upload(ctx, url.Join(dir, e.Path), 0644, bytes.NewReader(e.Data)); err != nil {
			return err
		}
	}
	return nil
}
