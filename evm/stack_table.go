package evm

import (
	"github.com/entropyio/cubipods/config"
)

// stackBounds is the stack requirement of one opcode: the depth must be at
// least min before it runs and at most max, so that it cannot overflow.
type stackBounds struct {
	min, max int
}

// stackTable holds the bounds of every defined opcode, indexed by opcode.
var stackTable [256]stackBounds

func init() {
	set := func(pops, pushes int, ops ...OpCode) {
		for _, op := range ops {
			stackTable[op] = stackBounds{minStack(pops, pushes), maxStack(pops, pushes)}
		}
	}
	set(0, 0, STOP)
	set(2, 1, ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, EXP, LT, GT, EQ, AND, OR, XOR, BYTE, SHL, SHR, SAR, KECCAK256)
	set(1, 1, ISZERO, NOT, MLOAD, SLOAD)
	set(1, 0, POP)
	set(2, 0, MSTORE, MSTORE8, SSTORE)
	set(0, 1, MSIZE)
	for op := PUSH0; op <= PUSH32; op++ {
		set(0, 1, op)
	}
	for i := 1; i <= config.MaxStackDepth; i++ {
		op := DUP1 + OpCode(i-1)
		stackTable[op] = stackBounds{minDupStack(i), maxDupStack(i)}
		op = SWAP1 + OpCode(i-1)
		stackTable[op] = stackBounds{minSwapStack(i), maxSwapStack(i)}
	}
}

// checkStack reports the underflow or overflow op would cause on st.
func checkStack(op OpCode, st *Stack) error {
	b := stackTable[op]
	if err := st.Require(b.min); err != nil {
		return err
	}
	if sLen := st.Len(); sLen > b.max {
		return errStackOverflow(sLen, b.max)
	}
	return nil
}

func minSwapStack(n int) int {
	return minStack(n+1, n+1)
}
func maxSwapStack(n int) int {
	return maxStack(n+1, n+1)
}

func minDupStack(n int) int {
	return minStack(n, n+1)
}
func maxDupStack(n int) int {
	return maxStack(n, n+1)
}

func maxStack(pop, push int) int {
	return int(config.StackLimit) + pop - push
}
func minStack(pops, _ int) int {
	return pops
}
