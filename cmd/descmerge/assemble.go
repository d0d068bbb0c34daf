package main

import (
	"fmt"

	"github.com/signadot/descmerge/assembly"

	"github.com/scott-cotton/cli"
)

func assemble(cfg *AssembleConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Assemble.Parse(cc, args)
	if err != nil {
		return err
	}
	dir := "."
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("%w: assemble takes at most one directory", cli.ErrUsage)
	}
	acfg, err := assembly.Open(dir)
	if err != nil {
		return err
	}
	opts := []assembly.Option{
		assembly.WithLogger(cfg.log()),
		assembly.WithEncodeOptions(cfg.fileEncOpts()...),
	}
	if cfg.Parallel > 0 {
		opts = append(opts, assembly.WithParallel(cfg.Parallel))
	}
	a, err := assembly.New(acfg, opts...)
	if err != nil {
		return err
	}
	ctx := goContext(cc)
	if !cfg.DryRun {
		_, err := a.Run(ctx)
		return err
	}
	res, err := a.Assemble(ctx)
	if err != nil {
		return err
	}
	merged := map[string]bool{}
	for _, p := range res.Merged {
		merged[p] = true
	}
	for _, e := range res.Entries {
		mark := " "
		if merged[e.Path] {
			mark = "*"
		}
		fmt.Fprintf(cc.Out, "%s %8d %s\n", mark, len(e.Data), e.Path)
	}
	return nil
}
