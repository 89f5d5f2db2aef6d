package config

const (
	StackLimit    uint64 = 1024 // Maximum size of VM stack allowed.
	WordSize      uint64 = 32   // Width in bytes of a stack word; memory grows in units of it.
	MaxPushWidth  int    = 32   // Widest immediate carried by a PUSH instruction (PUSH32).
	MaxStackDepth int    = 16   // Deepest element reachable by DUP/SWAP.

	// MaxMemorySize is the ceiling on addressable memory. Any access whose end
	// lies past it is a memory overflow rather than an allocation.
	MaxMemorySize uint64 = 32 << 20
)
