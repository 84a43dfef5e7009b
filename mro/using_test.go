package mro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func volatilePtr(v Volatile) *Volatile { return &v }

func TestParseVolatile(t *testing.T) {
	v, err := ParseVolatile("strict")
	require.NoError(t, err)
	assert.Equal(t, VolatileStrict, v)

	_, err = ParseVolatile("foo")
	assert.ErrorContains(t, err, "expected strict")
}

func TestVolatileDisplay(t *testing.T) {
	v := VolatileStrict
	assert.Equal(t, "strict", v.MroString())
	assert.Equal(t, 6, v.MinWidth())
	assert.Equal(t, "strict    ", v.MroStringWidth(10))
	assert.Panics(t, func() { Volatile(0).MroString() })
}

func TestUsingNeedUsing(t *testing.T) {
	assert.False(t, Using{}.NeedUsing())
	assert.True(t, Using{MemGB: intPtr(1)}.NeedUsing())
	assert.True(t, Using{MemGB: intPtr(1), Threads: intPtr(3)}.NeedUsing())
	assert.True(t, Using{Volatile: volatilePtr(VolatileStrict)}.NeedUsing())
}

func TestUsingDisplay(t *testing.T) {
	t.Run("empty block renders as nothing at all", func(t *testing.T) {
		assert.Equal(t, "", Using{}.MroString())
		assert.Equal(t, "", Using{}.MroStringWidth(8))
	})

	t.Run("single knob", func(t *testing.T) {
		got := Using{MemGB: intPtr(1)}.MroString()
		assert.Equal(t, "using (\n    mem_gb = 1,\n)\n", got)
	})

	t.Run("keys align to the widest present key", func(t *testing.T) {
		got := Using{
			MemGB:    intPtr(1),
			VmemGB:   intPtr(4),
			Volatile: volatilePtr(VolatileStrict),
		}.MroString()
		want := "using (\n" +
			"    mem_gb   = 1,\n" +
			"    vmem_gb  = 4,\n" +
			"    volatile = strict,\n" +
			")\n"
		assert.Equal(t, want, got)
	})

	t.Run("outer width indents knobs and the closing paren", func(t *testing.T) {
		got := Using{Threads: intPtr(2)}.MroStringWidth(8)
		want := "using (\n" +
			"            threads = 2,\n" +
			"        )\n"
		assert.Equal(t, want, got)
	})

	t.Run("absent knobs are skipped, order is declaration order", func(t *testing.T) {
		got := Using{Threads: intPtr(16), MemGB: intPtr(4)}.MroString()
		want := "using (\n" +
			"    mem_gb  = 4,\n" +
			"    threads = 16,\n" +
			")\n"
		assert.Equal(t, want, got)
	})
}
