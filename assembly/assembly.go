package assembly

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/dom"
	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/facesconfig"
	"github.com/signadot/descmerge/mappings"
	"github.com/signadot/descmerge/taglib"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"
)

// Assembler merges the sources of a Config into one archive.
type Assembler struct {
	cfg      *Config
	fs       afs.Service
	log      *slog.Logger
	handlers []Handler
	parallel int
	encOpts  []encode.EncodeOption
}

type Option func(*Assembler)

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// WithParallel bounds the number of sources loaded at once.
func WithParallel(n int) Option {
	return func(a *Assembler) { a.parallel = n }
}

func WithEncodeOptions(opts ...encode.EncodeOption) Option {
	return func(a *Assembler) { a.encOpts = opts }
}

// WithHandlers adds handlers after those the config enables.
func WithHandlers(hs ...Handler) Option {
	return func(a *Assembler) { a.handlers = append(a.handlers, hs...) }
}

func New(cfg *Config, opts ...Option) (*Assembler, error) {
	a := &Assembler{
		cfg:      cfg,
		fs:       afs.New(),
		log:      slog.New(slog.DiscardHandler),
		parallel: 4,
	}
	for _, o := range opts {
		o(a)
	}
	extra := a.handlers
	a.handlers = nil
	if !cfg.FacesConfig.Disabled {
		schema, err := facesconfig.Profile(cfg.FacesConfig.Schema)
		if err != nil {
			return nil, err
		}
		f := facesconfig.New(facesconfig.WithLogger(a.log), facesconfig.WithSchema(schema))
		a.handlers = append(a.handlers, XMLHandler(f, a.encOpts...))
	}
	if !cfg.Taglib.Disabled {
		schema, err := taglib.Profile(cfg.Taglib.Schema)
		if err != nil {
			return nil, err
		}
		f, err := taglib.New(
			taglib.WithLogger(a.log),
			taglib.WithSchema(schema),
			taglib.WithRules(cfg.Taglib.Rules...))
		if err != nil {
			return nil, err
		}
		a.handlers = append(a.handlers, XMLHandler(f, a.encOpts...))
	}
	if !cfg.ResourceMappings.Disabled {
		a.handlers = append(a.handlers, MappingsHandler(mappings.New(mappings.WithPath(cfg.ResourceMappings.Path))))
	}
	a.handlers = append(a.handlers, extra...)
	return a, nil
}

// Result describes an assembled archive.
type Result struct {
	// Entries is every file of the archive, sorted by path.
	Entries []Entry
	// Merged holds the paths produced by handlers.
	Merged []string
	// Inputs counts the files consumed per handler.
	Inputs map[string]int
}

func (r *Result) Entry(path string) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(r.Entries, path, func(e Entry, p string) int {
		return strings.Compare(e.Path, p)
	})
	if !ok {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// Assemble loads every source and merges the handled files.  Nothing is
// written.
func (a *Assembler) Assemble(ctx context.Context) (*Result, error) {
	loaded, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{Inputs: map[string]int{}}
	handled := make([][]Entry, len(a.handlers))
	files := map[string]Entry{}
	origin := map[string]string{}
	for i, entries := range loaded {
		src := a.cfg.Sources[i].String()
		for _, e := range entries {
			if j := a.handlerFor(e.Path); j >= 0 {
				handled[j] = append(handled[j], e)
				continue
			}
			if first, ok := origin[e.Path]; ok {
				a.log.Warn("duplicate entry", "path", e.Path, "kept", first, "dropped", src)
				continue
			}
			files[e.Path] = e
			origin[e.Path] = src
		}
	}
	for j, h := range a.handlers {
		inputs := handled[j]
		sortInputs(inputs)
		for _, e := range inputs {
			if err := h.Add(e.Path, e.Data); err != nil {
				// leave the remaining handlers clean for reuse
				for _, rest := range a.handlers[j:] {
					rest.Finish()
				}
				return nil, fmt.Errorf("%s: %w", h.Name(), err)
			}
		}
		res.Inputs[h.Name()] = len(inputs)
		outs, err := h.Finish()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", h.Name(), err)
		}
		for _, out := range outs {
			if _, ok := files[out.Path]; ok {
				a.log.Warn("merged output replaces entry", "path", out.Path, "handler", h.Name())
			}
			files[out.Path] = out
			res.Merged = append(res.Merged, out.Path)
		}
		if debug.Assembly() {
			debug.Logf("%s: %d inputs, %d outputs\n", h.Name(), len(inputs), len(outs))
		}
	}
	res.Entries = make([]Entry, 0, len(files))
	for _, e := range files {
		res.Entries = append(res.Entries, e)
	}
	slices.SortFunc(res.Entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	slices.Sort(res.Merged)
	return res, nil
}

// Run assembles and writes the output jar and, if configured, the
// descriptor directory.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	res, err := a.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	out := a.cfg.Path(a.cfg.Output)
	if err := WriteJar(out, res.Entries); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", out, err)
	}
	a.log.Info("wrote archive", "path", out, "entries", len(res.Entries), "merged", len(res.Merged))
	if a.cfg.DescriptorDir == "" {
		return res, nil
	}
	dir := a.cfg.Path(a.cfg.DescriptorDir)
	merged := make([]Entry, 0, len(res.Merged))
	for _, p := range res.Merged {
		e, _ := res.Entry(p)
		merged = append(merged, e)
	}
	if err := WriteDir(ctx, a.fs, dir, merged); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", dir, err)
	}
	return res, nil
}

func (a *Assembler) handlerFor(path string) int {
	for i, h := range a.handlers {
		if h.Handles(path) {
			return i
		}
	}
	return -1
}

func (a *Assembler) load(ctx context.Context) ([][]Entry, error) {
	res := make([][]Entry, len(a.cfg.Sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.parallel, 1))
	for i := range a.cfg.Sources {
		src := &a.cfg.Sources[i]
		g.Go(func() error {
			entries, err := src.Load(ctx, a.fs, a.cfg)
			if err != nil {
				return err
			}
			res[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// sortInputs orders handler inputs by path then content so the merge
// result does not depend on source order.
func sortInputs(entries []Entry) {
	type keyed struct {
		Entry
		fp uint64
	}
	ks := make([]keyed, len(entries))
	for i, e := range entries {
		ks[i] = keyed{Entry: e, fp: dom.Fingerprint(e.Data)}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.fp, b.fp)
	})
	for i := range ks {
		entries[i] = ks[i].Entry
	}
}
