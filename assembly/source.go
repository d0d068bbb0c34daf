package assembly

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Entry is one file of an archive.
type Entry struct {
	Path string
	Data []byte
}

func (s *Source) String() string {
	switch {
	case s.Dir != nil:
		return "dir " + *s.Dir
	case s.Jar != nil:
		return "jar " + *s.Jar
	default:
		return "empty source"
	}
}

// Load returns the files of the source sorted by path.
func (s *Source) Load(ctx context.Context, fs afs.Service, cfg *Config) ([]Entry, error) {
	var (
		res []Entry
		err error
	)
	switch {
	case s.Dir != nil:
		res, err = loadDir(ctx, fs, cfg.Path(*s.Dir))
	case s.Jar != nil:
		res, err = loadJar(cfg.Path(*s.Jar))
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", s, err)
	}
	slices.SortFunc(res, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	return res, nil
}

func loadDir(ctx context.Context, fs afs.Service, dir string) ([]Entry, error) {
	var rel []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		rel = append(rel, path.Join(parent, info.Name()))
		return true, nil
	}
	if err := fs.Walk(ctx, dir, visitor); err != nil {
		return nil, err
	}
	res := make([]Entry, 0, len(rel))
	for _, p := range rel {
		data, err := fs.DownloadWithURL(ctx, url.Join(dir, p))
		if err != nil {
			return nil, err
		}
		res = append(res, Entry{Path: p, Data: data})
	}
	return res, nil
}

func loadJar(p string) ([]Entry, error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	res := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		res = append(res, Entry{Path: f.Name, Data: data})
	}
	return res, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
