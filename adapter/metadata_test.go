package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata(t *testing.T) *Metadata {
	t.Helper()
	dir := t.TempDir()
	md, err := NewMetadata([]string{
		"sum_squares", "main",
		dir,
		filepath.Join(dir, "files"),
		filepath.Join(dir, "journal"),
	})
	require.NoError(t, err)
	return md
}

func TestNewMetadata(t *testing.T) {
	t.Run("parses the scheduler argument vector", func(t *testing.T) {
		md := testMetadata(t)
		assert.Equal(t, "sum_squares", md.StageName)
		assert.Equal(t, "main", md.StageType)
	})

	t.Run("rejects a short argument vector", func(t *testing.T) {
		_, err := NewMetadata([]string{"sum_squares", "main"})
		assert.ErrorContains(t, err, "expected 5 arguments")
	})
}

func TestMetadataJobInfo(t *testing.T) {
	md := testMetadata(t)
	require.NoError(t, os.WriteFile(md.makePath("jobinfo"),
		[]byte(`{"threads": 4, "memGB": 2}`), 0o644))

	require.NoError(t, md.UpdateJobInfo())
	assert.Equal(t, float64(4), md.JobInfo("threads"))
	assert.Equal(t, float64(2), md.JobInfo("memGB"))
	assert.Nil(t, md.JobInfo("vmemGB"))

	t.Run("missing jobinfo is an error", func(t *testing.T) {
		fresh := testMetadata(t)
		assert.ErrorContains(t, fresh.UpdateJobInfo(), "read jobinfo")
	})
}

func TestMetadataExchange(t *testing.T) {
	md := testMetadata(t)

	t.Run("write journals a notification", func(t *testing.T) {
		require.NoError(t, md.Write("outs", map[string]any{"sum": 14.0}))

		raw, err := os.ReadFile(md.makePath("outs"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"sum": 14}`, string(raw))

		_, err = os.Stat(md.runFilePrefix + ".outs")
		assert.NoError(t, err, "journal notification missing")
	})

	t.Run("round trip through ReadInto", func(t *testing.T) {
		type outs struct {
			Sum float64 `json:"sum"`
		}
		require.NoError(t, md.Write("outs", outs{Sum: 14}))
		var got outs
		require.NoError(t, md.ReadInto("outs", &got))
		assert.Equal(t, outs{Sum: 14}, got)
	})

	t.Run("complete marks the phase", func(t *testing.T) {
		require.NoError(t, md.Complete())
		raw, err := os.ReadFile(md.makePath("complete"))
		require.NoError(t, err)
		assert.Equal(t, "complete\n", string(raw))
	})
}
