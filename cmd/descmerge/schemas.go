package main

import (
	"fmt"

	"github.com/signadot/descmerge/facesconfig"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/taglib"

	"github.com/scott-cotton/cli"
)

func schemas(cfg *SchemasConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schemas.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: schemas takes no arguments", cli.ErrUsage)
	}
	for _, fam := range []struct {
		name    string
		schemas []merge.Schema
	}{
		{"faces-config", facesconfig.Schemas},
		{"taglib", taglib.Schemas},
	} {
		for i, s := range fam.schemas {
			def := ""
			if i == 0 {
				def = " (default)"
			}
			fmt.Fprintf(cc.Out, "%s\t%s\tversion %s%s\n\t%s\n", fam.name, s.Name, s.Version, def, s.SchemaLocation())
		}
	}
	return nil
}
