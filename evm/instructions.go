package evm

import (
	"github.com/entropyio/cubipods/common/crypto"
	"github.com/entropyio/cubipods/config"
	"github.com/holiman/uint256"
)

// popPeek pops the top operand and returns it with a pointer to the new top,
// where binary operations accumulate their result.
func popPeek(st *Stack) (Word, *Word, error) {
	x, err := st.Pop()
	if err != nil {
		return x, nil, err
	}
	y, err := st.Peek(0)
	return x, y, err
}

var (
	wordLen = uint256.NewInt(config.WordSize)
	byteLen = uint256.NewInt(1)
)

// memoryRange converts an offset and size taken off the stack into a memory
// range, failing when either does not fit 64 bits.
func memoryRange(offset, size *Word) (uint64, uint64, error) {
	off, ok := wordOffset(offset)
	n, ok2 := wordOffset(size)
	if !ok || !ok2 {
		return 0, 0, errMemoryRange(offset, size)
	}
	return off, n, nil
}

func opAdd(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Add(&x, y)
	return nil
}

func opSub(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Sub(&x, y)
	return nil
}

func opMul(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Mul(&x, y)
	return nil
}

// opDiv leaves zero on division by zero, as does the uint256 library.
func opDiv(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Div(&x, y)
	return nil
}

func opSdiv(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.SDiv(&x, y)
	return nil
}

func opMod(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Mod(&x, y)
	return nil
}

func opSmod(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.SMod(&x, y)
	return nil
}

func opExp(st *Stack) error {
	base, exponent, err := popPeek(st)
	if err != nil {
		return err
	}
	exponent.Exp(&base, exponent)
	return nil
}

func opLt(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	*y = wordFromBool(x.Lt(y))
	return nil
}

func opGt(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	*y = wordFromBool(x.Gt(y))
	return nil
}

func opEq(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	*y = wordFromBool(x.Eq(y))
	return nil
}

func opIszero(st *Stack) error {
	x, err := st.Peek(0)
	if err != nil {
		return err
	}
	*x = wordFromBool(x.IsZero())
	return nil
}

func opAnd(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.And(&x, y)
	return nil
}

func opOr(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Or(&x, y)
	return nil
}

func opXor(st *Stack) error {
	x, y, err := popPeek(st)
	if err != nil {
		return err
	}
	y.Xor(&x, y)
	return nil
}

func opNot(st *Stack) error {
	x, err := st.Peek(0)
	if err != nil {
		return err
	}
	x.Not(x)
	return nil
}

// opByte replaces the value with its th-th byte, 0 being the most
// significant; th >= 32 yields zero.
func opByte(st *Stack) error {
	th, val, err := popPeek(st)
	if err != nil {
		return err
	}
	val.Byte(&th)
	return nil
}

// opSHL implements Shift Left
// The SHL instruction (shift left) pops 2 values from the stack, first arg1 and then arg2,
// and pushes on the stack arg2 shifted to the left by arg1 number of bits.
func opSHL(st *Stack) error {
	shift, value, err := popPeek(st)
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

// opSHR implements Logical Shift Right
func opSHR(st *Stack) error {
	shift, value, err := popPeek(st)
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

// opSAR implements Arithmetic Shift Right
func opSAR(st *Stack) error {
	shift, value, err := popPeek(st)
	if err != nil {
		return err
	}
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			// Max negative shift: all bits set
			value.SetAllOne()
		}
		return nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil
}

// opKeccak256 leaves its operands on the stack until the memory range has
// been read, so a failing range does not consume them.
func opKeccak256(evm *EVM) error {
	offset, err := evm.stack.Peek(0)
	if err != nil {
		return err
	}
	size, err := evm.stack.Peek(1)
	if err != nil {
		return err
	}
	var data []byte
	if !size.IsZero() {
		off, n, err := memoryRange(offset, size)
		if err != nil {
			return err
		}
		if data, err = evm.memory.ReadRange(off, n); err != nil {
			return err
		}
	}

	if evm.hasher == nil {
		evm.hasher = crypto.NewKeccakState()
	} else {
		evm.hasher.Reset()
	}
	evm.hasher.Write(data)
	evm.hasher.Read(evm.hasherBuf[:])

	evm.stack.drop(1)
	size.SetBytes(evm.hasherBuf[:])
	return nil
}

func opMload(st *Stack, mem *Memory) error {
	v, err := st.Peek(0)
	if err != nil {
		return err
	}
	offset, _, err := memoryRange(v, wordLen)
	if err != nil {
		return err
	}
	word, err := mem.LoadWord(offset)
	if err != nil {
		return err
	}
	*v = word
	return nil
}

func opMstore(st *Stack, mem *Memory) error {
	mStart, err := st.Peek(0)
	if err != nil {
		return err
	}
	val, err := st.Peek(1)
	if err != nil {
		return err
	}
	offset, _, err := memoryRange(mStart, wordLen)
	if err != nil {
		return err
	}
	if err := mem.StoreWord(offset, val); err != nil {
		return err
	}
	st.drop(2)
	return nil
}

// opMstore8 writes the low-order byte of the value.
func opMstore8(st *Stack, mem *Memory) error {
	off, err := st.Peek(0)
	if err != nil {
		return err
	}
	val, err := st.Peek(1)
	if err != nil {
		return err
	}
	offset, _, err := memoryRange(off, byteLen)
	if err != nil {
		return err
	}
	if err := mem.StoreByte(offset, byte(val.Uint64())); err != nil {
		return err
	}
	st.drop(2)
	return nil
}

func opSload(st *Stack, storage *Storage) error {
	loc, err := st.Peek(0)
	if err != nil {
		return err
	}
	*loc = storage.Load(loc)
	return nil
}

func opSstore(st *Stack, storage *Storage) error {
	loc, err := st.Pop()
	if err != nil {
		return err
	}
	val, err := st.Pop()
	if err != nil {
		return err
	}
	storage.Store(&loc, &val)
	return nil
}

func opMsize(st *Stack, mem *Memory) error {
	var size Word
	size.SetUint64(uint64(mem.Len()))
	return st.Push(&size)
}
