package evm

import (
	"github.com/entropyio/cubipods/common"
	"github.com/holiman/uint256"
)

// Word is the 256-bit unsigned machine word. All arithmetic on it wraps
// modulo 2^256.
type Word = uint256.Int

func wordFromBool(b bool) Word {
	var w Word
	if b {
		w.SetOne()
	}
	return w
}

// wordFromBytes interprets b as a big-endian number. Longer inputs keep their
// low-order 32 bytes.
func wordFromBytes(b []byte) Word {
	var w Word
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	w.SetBytes(b)
	return w
}

func wordToHash(w *Word) common.Hash {
	return common.Hash(w.Bytes32())
}

// wordOffset converts a memory offset or length taken off the stack. It
// reports false when the value does not fit in 64 bits.
func wordOffset(w *Word) (uint64, bool) {
	v, overflow := w.Uint64WithOverflow()
	return v, !overflow
}
