package mrogen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreenathkrishnan/martian-go/mro"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mrogen.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
adapter = "sum_squares"

output {
  path      = "pipeline.mro"
  overwrite = true
}

stage "sort_items" {
  mem_gb   = 4
  threads  = 8
  volatile = "strict"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sum_squares", cfg.Adapter)
	require.NotNil(t, cfg.Output)
	assert.Equal(t, "pipeline.mro", cfg.Output.Path)
	assert.True(t, cfg.Output.Overwrite)
	require.Len(t, cfg.Stages, 1)
	assert.Equal(t, "sort_items", cfg.Stages[0].Key)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
		assert.Error(t, err)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `output {`))
		assert.ErrorContains(t, err, "failed to parse")
	})
}

func TestStageOverrideUsing(t *testing.T) {
	t.Run("decodes every knob", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
stage "sort_items" {
  mem_gb   = 4
  vmem_gb  = 8
  threads  = 16
  volatile = "strict"
}
`))
		require.NoError(t, err)
		require.Len(t, cfg.Stages, 1)

		using, err := cfg.Stages[0].Using()
		require.NoError(t, err)
		require.NotNil(t, using.MemGB)
		assert.Equal(t, 4, *using.MemGB)
		require.NotNil(t, using.VmemGB)
		assert.Equal(t, 8, *using.VmemGB)
		require.NotNil(t, using.Threads)
		assert.Equal(t, 16, *using.Threads)
		require.NotNil(t, using.Volatile)
		assert.Equal(t, mro.VolatileStrict, *using.Volatile)
	})

	t.Run("unknown attribute is rejected", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
stage "sort_items" {
  special_disk = true
}
`))
		require.NoError(t, err)
		_, err = cfg.Stages[0].Using()
		assert.ErrorContains(t, err, `unsupported using attribute "special_disk"`)
	})

	t.Run("bad volatile value is rejected", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
stage "sort_items" {
  volatile = "sometimes"
}
`))
		require.NoError(t, err)
		_, err = cfg.Stages[0].Using()
		assert.ErrorContains(t, err, "expected strict")
	})
}

func TestConfigApplyAndGenerate(t *testing.T) {
	newBatch := func(t *testing.T) []*mro.StageMro {
		s, err := mro.NewStageMro("sort_items", "my_stage", mro.InAndOut{
			Inputs:  []mro.Field{mro.MustField("unsorted", mro.Array(mro.Int))},
			Outputs: []mro.Field{mro.MustField("sorted", mro.Array(mro.Int))},
		}, nil, mro.Using{})
		require.NoError(t, err)
		return []*mro.StageMro{s}
	}

	t.Run("override replaces the stage's using section", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
stage "sort_items" {
  mem_gb = 4
}
`))
		require.NoError(t, err)

		batch := newBatch(t)
		require.NoError(t, cfg.Apply(batch))
		require.NotNil(t, batch[0].Using.MemGB)
		assert.Equal(t, 4, *batch[0].Using.MemGB)
		assert.Contains(t, batch[0].MroString(), ") using (\n    mem_gb = 4,\n)\n")
	})

	t.Run("override for an unknown stage fails", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
stage "no_such_stage" {
  mem_gb = 4
}
`))
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Apply(newBatch(t)), `unknown stage "no_such_stage"`)
	})

	t.Run("generate writes the configured destination", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "pipeline.mro")
		cfg := &Config{Output: &OutputConfig{Path: out}}
		require.NoError(t, cfg.Generate(newBatch(t)))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(content), "stage SORT_ITEMS(")
	})
}
