package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 4}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "descmerge").
		WithSynopsis("descmerge [opts] command [opts]").
		WithDescription("descmerge merges faces-config and facelet taglib descriptors.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return descMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			CheckCommand(cfg),
			AssembleCommand(cfg),
			SchemasCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [-family faces|taglib] [-schema name] [-d dir] files...").
		WithDescription(mergeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runMerge(cfg, cc, args)
		})
}

const mergeDescription = `merge merges descriptor files of one family.

With one merged document and no -d, the result is written to the command
output.  Tag libraries merge into one document per library namespace; with
more than one result, each is preceded by a '==> path <==' header unless -d
names a directory to write them to.`

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-family faces|taglib] <expected> files...").
		WithDescription("check that merging files gives the expected document, printing a diff and exiting 1 if not").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func AssembleCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AssembleConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Assemble, "assemble").
		WithAliases("a").
		WithSynopsis("assemble [-n] [dir]").
		WithDescription(assembleDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return assemble(cfg, cc, args)
		})
}

const assembleDescription = `assemble builds a merged archive.

Assemble operates on a directory, which defaults to the current directory,
containing 'assembly.{yaml,yml,json}':

  output: target/richfaces.jar
  # optional copy of the merged descriptors
  descriptorDir: target/descriptors
  sources:
  - dir: core/target/classes
  - jar: ui/target/richfaces-ui.jar
  facesConfig:
    schema: javaee-2.0
  taglib:
    rules:
    - pattern: http://richfaces.org/(a4j|rich)
      when: file != ""
      target: http://richfaces.org/$1
  resourceMappings:
    path: META-INF/richfaces/resource-mappings.properties

Descriptors from all sources are merged per family.  Other files are copied,
the first source providing a path wins.`

func SchemasCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemasConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Schemas, "schemas").
		WithSynopsis("schemas").
		WithDescription("list the schema profiles of each family").
		WithRun(func(cc *cli.Context, args []string) error {
			return schemas(cfg, cc, args)
		})
}
