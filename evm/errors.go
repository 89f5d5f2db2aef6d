package evm

import (
	"errors"
	"fmt"
)

// List evm execution errors. Every failing run surfaces exactly one of these,
// usually wrapped with detail; match with errors.Is.
var (
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrMemoryOverflow = errors.New("memory overflow")
)

func errStackUnderflow(stackLen, required int) error {
	return fmt.Errorf("%w (%d <=> %d)", ErrStackUnderflow, stackLen, required)
}

func errStackOverflow(stackLen, limit int) error {
	return fmt.Errorf("%w (%d > %d)", ErrStackOverflow, stackLen, limit)
}

func errInvalidOpcode(op OpCode) error {
	return fmt.Errorf("%w: %#x", ErrInvalidOpcode, byte(op))
}

func errMemoryOverflow(offset, size uint64) error {
	return fmt.Errorf("%w: offset %d, size %d", ErrMemoryOverflow, offset, size)
}

// errMemoryRange reports an offset or size that does not fit 64 bits, keeping
// the full stack words in the message.
func errMemoryRange(offset, size *Word) error {
	return fmt.Errorf("%w: offset %s, size %s", ErrMemoryOverflow, offset.Hex(), size.Hex())
}
