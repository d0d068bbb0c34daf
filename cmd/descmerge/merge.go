package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/descmerge/assembly"
	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/parse"

	"github.com/scott-cotton/cli"
	"github.com/viant/afs"
)

func runMerge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	opts := cfg.fileEncOpts()
	if cfg.Dir == "" {
		opts = cfg.encOpts(cc.Out)
	}
	entries, err := mergeFiles(cfg.selection(), cfg.log(), opts, args)
	if err != nil {
		return err
	}
	if cfg.Dir != "" {
		if err := assembly.WriteDir(goContext(cc), afs.New(), cfg.Dir, entries); err != nil {
			return fmt.Errorf("error writing %s: %w", cfg.Dir, err)
		}
		for _, e := range entries {
			fmt.Fprintln(cc.Out, e.Path)
		}
		return nil
	}
	for _, e := range entries {
		if len(entries) > 1 {
			fmt.Fprintf(cc.Out, "==> %s <==\n", e.Path)
		}
		if _, err := cc.Out.Write(e.Data); err != nil {
			return err
		}
	}
	return nil
}

func mergeFiles(sel familySel, log *slog.Logger, opts []encode.EncodeOption, files []string) ([]assembly.Entry, error) {
	if sel.family == "" && len(files) != 0 {
		fam, err := detectFamily(files[0])
		if err != nil {
			return nil, err
		}
		sel.family = fam
	}
	h, err := sel.handler(log, opts)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		d, err := os.ReadFile(f)
		if err == nil {
			err = h.Add(f, d)
		}
		if err != nil {
			h.Finish()
			return nil, err
		}
	}
	entries, err := h.Finish()
	if err != nil {
		return nil, err
	}
	log.Debug("merged", "family", h.Name(), "inputs", len(files), "outputs", len(entries))
	return entries, nil
}

// detectFamily picks the family from the root element of p.
func detectFamily(p string) (string, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	doc, err := parse.Parse(d)
	if err != nil {
		return "", fmt.Errorf("error parsing %s: %w", p, err)
	}
	switch doc.Root.Name.Local {
	case "faces-config":
		return "faces", nil
	case "facelet-taglib":
		return "taglib", nil
	}
	return "", fmt.Errorf("%w: cannot tell the family of %s from <%s>, use -family", cli.ErrUsage, p, doc.Root.Name.Local)
}
