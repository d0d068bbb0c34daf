package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/descmerge/assembly"
	"github.com/signadot/descmerge/encode"
	"github.com/signadot/descmerge/facesconfig"
	"github.com/signadot/descmerge/merge"
	"github.com/signadot/descmerge/taglib"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Quiet  bool `cli:"name=q desc='only log warnings and errors'"`
	Indent int  `cli:"name=indent desc='indentation width of merged documents'"`
	NoDecl bool `cli:"name=nodecl desc='omit the xml declaration'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// fileEncOpts are used for documents not written to a terminal.
func (cfg *MainConfig) fileEncOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeDeclaration(!cfg.NoDecl),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.fileEncOpts()
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) log() *slog.Logger {
	return newLog(os.Stderr, cfg.Quiet)
}

// familySel selects and configures a descriptor family.
type familySel struct {
	family string
	schema string
	rules  string
}

func (fs familySel) handler(log *slog.Logger, opts []encode.EncodeOption) (assembly.Handler, error) {
	var f merge.Family
	switch fs.family {
	case "", "faces", "faces-config", "f":
		schema, err := facesconfig.Profile(fs.schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		if fs.rules != "" {
			return nil, fmt.Errorf("%w: -rules only applies to taglib", cli.ErrUsage)
		}
		f = facesconfig.New(facesconfig.WithLogger(log), facesconfig.WithSchema(schema))
	case "taglib", "t":
		schema, err := taglib.Profile(fs.schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		rules, err := readRules(fs.rules)
		if err != nil {
			return nil, err
		}
		tf, err := taglib.New(taglib.WithLogger(log), taglib.WithSchema(schema), taglib.WithRules(rules...))
		if err != nil {
			return nil, err
		}
		f = tf
	default:
		return nil, fmt.Errorf("%w: unknown family %q", cli.ErrUsage, fs.family)
	}
	return assembly.XMLHandler(f, opts...), nil
}

func readRules(p string) ([]taglib.Rule, error) {
	if p == "" {
		return nil, nil
	}
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var rules []taglib.Rule
	if err := yaml.UnmarshalWithOptions(d, &rules, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("error decoding rules %s: %w", p, err)
	}
	return rules, nil
}

type MergeConfig struct {
	*MainConfig

	Family string `cli:"name=family desc='descriptor family: faces or taglib'"`
	Schema string `cli:"name=schema desc='output schema profile'"`
	Rules  string `cli:"name=rules desc='yaml file of taglib namespace rules'"`
	Dir    string `cli:"name=d desc='directory to write merged documents to'"`

	Merge *cli.Command
}

func (cfg *MergeConfig) selection() familySel {
	return familySel{family: cfg.Family, schema: cfg.Schema, rules: cfg.Rules}
}

type CheckConfig struct {
	*MainConfig

	Family string `cli:"name=family desc='descriptor family: faces or taglib'"`
	Schema string `cli:"name=schema desc='output schema profile'"`
	Rules  string `cli:"name=rules desc='yaml file of taglib namespace rules'"`

	Check *cli.Command
}

func (cfg *CheckConfig) selection() familySel {
	return familySel{family: cfg.Family, schema: cfg.Schema, rules: cfg.Rules}
}

type AssembleConfig struct {
	*MainConfig

	DryRun   bool `cli:"name=n desc='list the archive entries without writing'"`
	Parallel int  `cli:"name=j desc='number of sources loaded at once'"`

	Assemble *cli.Command
}

type SchemasConfig struct {
	*MainConfig

	Schemas *cli.Command
}
