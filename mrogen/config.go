package mrogen

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/sreenathkrishnan/martian-go/mro"
)

// OutputConfig is the `output` block: the destination of the generated file.
type OutputConfig struct {
	Path      string `hcl:"path"`
	Overwrite bool   `hcl:"overwrite,optional"`
}

// StageOverride is a `stage` block keyed by stage key. Its attributes are
// the using knobs and are decoded generically so that the block reads like
// the using section it configures.
type StageOverride struct {
	Key  string   `hcl:"stage_key,label"`
	Body hcl.Body `hcl:",remain"`
}

// Config is the root of a generator configuration file:
//
//	adapter = "sum_squares"
//	output {
//	  path      = "pipeline.mro"
//	  overwrite = true
//	}
//	stage "sort_items" {
//	  mem_gb   = 4
//	  threads  = 8
//	  volatile = "strict"
//	}
type Config struct {
	Adapter string           `hcl:"adapter,optional"`
	Output  *OutputConfig    `hcl:"output,block"`
	Stages  []*StageOverride `hcl:"stage,block"`
}

// LoadConfig parses one generator configuration file.
func LoadConfig(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("mrogen: failed to parse %s: %w", path, diags)
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("mrogen: failed to decode %s: %w", path, diags)
	}
	return &cfg, nil
}

// Using decodes the override block's attributes into a using section.
// Unknown attributes are configuration errors, never silently dropped.
func (s *StageOverride) Using() (mro.Using, error) {
	var using mro.Using
	attrs, diags := s.Body.JustAttributes()
	if diags.HasErrors() {
		return using, fmt.Errorf("mrogen: stage %q: %w", s.Key, diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return using, fmt.Errorf("mrogen: stage %q, attribute %s: %w", s.Key, name, diags)
		}
		switch name {
		case "mem_gb":
			if err := intoKnob(val, &using.MemGB); err != nil {
				return using, fmt.Errorf("mrogen: stage %q: mem_gb: %w", s.Key, err)
			}
		case "vmem_gb":
			if err := intoKnob(val, &using.VmemGB); err != nil {
				return using, fmt.Errorf("mrogen: stage %q: vmem_gb: %w", s.Key, err)
			}
		case "threads":
			if err := intoKnob(val, &using.Threads); err != nil {
				return using, fmt.Errorf("mrogen: stage %q: threads: %w", s.Key, err)
			}
		case "volatile":
			if !val.Type().Equals(cty.String) {
				return using, fmt.Errorf("mrogen: stage %q: volatile must be a string", s.Key)
			}
			v, err := mro.ParseVolatile(val.AsString())
			if err != nil {
				return using, fmt.Errorf("mrogen: stage %q: %w", s.Key, err)
			}
			using.Volatile = &v
		default:
			return using, fmt.Errorf("mrogen: stage %q: unsupported using attribute %q", s.Key, name)
		}
	}
	return using, nil
}

// intoKnob converts a numeric cty value into a present knob.
func intoKnob(val cty.Value, knob **int) error {
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return err
	}
	*knob = &n
	return nil
}

// Apply rewrites the using sections of any stage in the batch that has an
// override block, matching by stage key. An override for an unknown stage is
// a configuration error.
func (c *Config) Apply(stages []*mro.StageMro) error {
	byKey := make(map[string]*mro.StageMro, len(stages))
	for _, s := range stages {
		byKey[s.StageKey] = s
	}
	for _, override := range c.Stages {
		stage, ok := byKey[override.Key]
		if !ok {
			return fmt.Errorf("mrogen: override for unknown stage %q", override.Key)
		}
		using, err := override.Using()
		if err != nil {
			return err
		}
		stage.Using = using
	}
	return nil
}

// Generate applies the configuration to the batch and writes the declaration
// file it names, or standard output when no output block is present.
func (c *Config) Generate(stages []*mro.StageMro) error {
	if err := c.Apply(stages); err != nil {
		return err
	}
	path := ""
	overwrite := false
	if c.Output != nil {
		path = c.Output.Path
		overwrite = c.Output.Overwrite
	}
	return mro.MakeMroFile(path, overwrite, stages)
}
