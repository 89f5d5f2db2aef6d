package config

import (
	"encoding/binary"
	"fmt"

	"github.com/entropyio/cubipods/common"
	"golang.org/x/crypto/sha3"
)

// DefaultVMConfig is the interpreter configuration used when a run does not
// supply its own.
var DefaultVMConfig = &VMConfig{
	MemoryLimit: MaxMemorySize,
	TraceLimit:  0,
}

// VMConfig holds the resource limits of a single interpreter run.
//
// A zero value is not usable; start from DefaultVMConfig or pass the value
// through Sanitize.
type VMConfig struct {
	MemoryLimit uint64 `json:"memoryLimit"` // highest memory size in bytes an access may require
	TraceLimit  int    `json:"traceLimit"`  // max number of trace steps kept, 0 = unlimited
}

// String implements the fmt.Stringer interface.
func (c *VMConfig) String() string {
	var banner string
	banner += fmt.Sprintf("Stack limit:  %d words\n", StackLimit)
	banner += fmt.Sprintf("Memory limit: %d bytes\n", c.MemoryLimit)
	if c.TraceLimit == 0 {
		banner += "Trace limit:  unlimited\n"
	} else {
		banner += fmt.Sprintf("Trace limit:  %d steps\n", c.TraceLimit)
	}
	return banner
}

// Sanitize returns a copy of c with unset fields filled from DefaultVMConfig.
func (c *VMConfig) Sanitize() *VMConfig {
	cfg := *DefaultVMConfig
	if c == nil {
		return &cfg
	}
	if c.MemoryLimit != 0 {
		cfg.MemoryLimit = c.MemoryLimit
	}
	cfg.TraceLimit = c.TraceLimit
	return &cfg
}

// CheckSanity reports limits the interpreter cannot honour.
func (c *VMConfig) CheckSanity() error {
	if c.MemoryLimit > MaxMemorySize {
		return fmt.Errorf("memory limit %d exceeds addressable maximum %d", c.MemoryLimit, MaxMemorySize)
	}
	if c.MemoryLimit%WordSize != 0 {
		return fmt.Errorf("memory limit %d is not a multiple of the word size %d", c.MemoryLimit, WordSize)
	}
	if c.TraceLimit < 0 {
		return fmt.Errorf("negative trace limit %d", c.TraceLimit)
	}
	return nil
}

// Hash returns a fingerprint of the limits, so that two reports can tell
// whether they were produced under the same configuration.
func (c *VMConfig) Hash() common.Hash {
	var buf [8]byte
	w := sha3.NewLegacyKeccak256()

	binary.BigEndian.PutUint64(buf[:], StackLimit)
	w.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], c.MemoryLimit)
	w.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(c.TraceLimit))
	w.Write(buf[:])

	var h common.Hash
	w.Sum(h[:0])
	return h
}
