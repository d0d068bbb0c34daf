// Package assembly runs descriptor merging over a package build: it
// collects the files of every configured source, routes descriptors to
// their merge handlers and writes the merged artifact.
package assembly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/descmerge/debug"
	"github.com/signadot/descmerge/taglib"

	"github.com/goccy/go-yaml"
)

var ErrConfig = errors.New("assembly config error")

// ConfigNames are the file names Open looks for, in order.
var ConfigNames = []string{"assembly.yaml", "assembly.yml", "assembly.json"}

type Config struct {
	Root string `yaml:"-"`

	// Output is the jar to write.
	Output string `yaml:"output"`
	// DescriptorDir, if set, also receives a copy of every merged
	// descriptor.
	DescriptorDir    string           `yaml:"descriptorDir,omitempty"`
	Sources          []Source         `yaml:"sources"`
	FacesConfig      FacesConfig      `yaml:"facesConfig,omitempty"`
	Taglib           Taglib           `yaml:"taglib,omitempty"`
	ResourceMappings ResourceMappings `yaml:"resourceMappings,omitempty"`
}

// Source is one input of the assembly: a directory tree or a jar.
type Source struct {
	Dir *string `yaml:"dir,omitempty"`
	Jar *string `yaml:"jar,omitempty"`
}

type FacesConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Schema   string `yaml:"schema,omitempty"`
}

type Taglib struct {
	Disabled bool          `yaml:"disabled,omitempty"`
	Schema   string        `yaml:"schema,omitempty"`
	Rules    []taglib.Rule `yaml:"rules,omitempty"`
}

type ResourceMappings struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

// Open reads the assembly file in dir.
func Open(dir string) (*Config, error) {
	for _, name := range ConfigNames {
		p := filepath.Join(dir, name)
		d, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("could not read %q: %w", p, err)
		}
		cfg, err := Decode(d, dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if debug.Assembly() {
			debug.Logf("loaded %s: %d sources, output %s\n", p, len(cfg.Sources), cfg.Output)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: could not find assembly.{yaml,yml,json} in %q", ErrConfig, dir)
}

// Decode decodes an assembly file; relative paths in it are relative to
// root.  JSON is accepted as YAML.
func Decode(d []byte, root string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg.Root = root
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrConfig)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: no sources", ErrConfig)
	}
	for i := range c.Sources {
		src := &c.Sources[i]
		if (src.Dir == nil) == (src.Jar == nil) {
			return fmt.Errorf("%w: source %d: exactly one of dir or jar must be set", ErrConfig, i)
		}
	}
	return nil
}

// Path resolves p against the config root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
