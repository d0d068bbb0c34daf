package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/libdiff"
	"github.com/signadot/descmerge/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: check requires an expected file and at least one input", cli.ErrUsage)
	}
	log := cfg.log()
	opts := cfg.fileEncOpts()
	entries, err := mergeFiles(cfg.selection(), log, opts, args[1:])
	if err != nil {
		return err
	}
	if len(entries) != 1 {
		return fmt.Errorf("check requires exactly one merged document, got %d", len(entries))
	}
	d, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	want, err := canonical(args[0], d, opts)
	if err != nil {
		return err
	}
	got, err := canonical(entries[0].Path, entries[0].Data, opts)
	if err != nil {
		return err
	}
	hunks := libdiff.Lines(want, got)
	if !libdiff.Changed(hunks) {
		log.Info("merge matches", "expected", args[0])
		return nil
	}
	if err := libdiff.Write(cc.Out, hunks, libdiff.WriteColors(cfg.useColor(cc.Out))); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// canonical re-encodes the document d named p so that only content
// differences show up in the diff.
func canonical(p string, d []byte, opts []encode.EncodeOption) (string, error) {
	doc, err := parse.Parse(d)
	if err != nil {
		return "", fmt.Errorf("error parsing %s: %w", p, err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
