package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	var nilCfg *VMConfig
	cfg := nilCfg.Sanitize()
	assert.Equal(t, MaxMemorySize, cfg.MemoryLimit)

	cfg = (&VMConfig{TraceLimit: 5}).Sanitize()
	assert.Equal(t, MaxMemorySize, cfg.MemoryLimit)
	assert.Equal(t, 5, cfg.TraceLimit)

	cfg = (&VMConfig{MemoryLimit: 1024}).Sanitize()
	assert.Equal(t, uint64(1024), cfg.MemoryLimit)

	// Sanitize must not hand out the shared default.
	cfg.MemoryLimit = 64
	assert.Equal(t, MaxMemorySize, DefaultVMConfig.MemoryLimit)
}

func TestCheckSanity(t *testing.T) {
	require.NoError(t, DefaultVMConfig.CheckSanity())
	assert.Error(t, (&VMConfig{MemoryLimit: MaxMemorySize + 32}).CheckSanity())
	assert.Error(t, (&VMConfig{MemoryLimit: 33}).CheckSanity())
	assert.Error(t, (&VMConfig{MemoryLimit: 64, TraceLimit: -1}).CheckSanity())
}

func TestHashDistinguishesLimits(t *testing.T) {
	a := &VMConfig{MemoryLimit: 64}
	b := &VMConfig{MemoryLimit: 128}
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), (&VMConfig{MemoryLimit: 64}).Hash())
}

func TestString(t *testing.T) {
	s := (&VMConfig{MemoryLimit: 64, TraceLimit: 3}).String()
	assert.Contains(t, s, "Stack limit:  1024 words")
	assert.Contains(t, s, "Memory limit: 64 bytes")
	assert.Contains(t, s, "Trace limit:  3 steps")
}
