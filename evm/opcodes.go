package evm

import (
	"fmt"

	"github.com/entropyio/cubipods/config"
)

// OpCode is an EVM opcode
type OpCode byte

// IsPush specifies if an opcode is a PUSH opcode.
func (op OpCode) IsPush() bool {
	return op >= PUSH0 && op <= PUSH32
}

// PushWidth returns the number of immediate bytes following a PUSH opcode,
// zero for anything else.
func (op OpCode) PushWidth() int {
	if op.IsPush() {
		return int(op - PUSH0)
	}
	return 0
}

// IsDup specifies if an opcode is a DUP opcode.
func (op OpCode) IsDup() bool {
	return op >= DUP1 && op <= DUP16
}

// IsSwap specifies if an opcode is a SWAP opcode.
func (op OpCode) IsSwap() bool {
	return op >= SWAP1 && op <= SWAP16
}

// Defined reports whether the interpreter knows how to execute op.
func (op OpCode) Defined() bool {
	_, ok := opCodeToString[op]
	return ok
}

// 0x0 range - arithmetic ops.
const (
	STOP OpCode = 0x0
	ADD  OpCode = 0x1
	MUL  OpCode = 0x2
	SUB  OpCode = 0x3
	DIV  OpCode = 0x4
	SDIV OpCode = 0x5
	MOD  OpCode = 0x6
	SMOD OpCode = 0x7
	EXP  OpCode = 0xa
)

// 0x10 range - comparison ops.
const (
	LT     OpCode = 0x10
	GT     OpCode = 0x11
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16
	OR     OpCode = 0x17
	XOR    OpCode = 0x18
	NOT    OpCode = 0x19
	BYTE   OpCode = 0x1a
	SHL    OpCode = 0x1b
	SHR    OpCode = 0x1c
	SAR    OpCode = 0x1d
)

// 0x20 range - crypto.
const (
	KECCAK256 OpCode = 0x20
)

// 0x50 range - 'storage' and execution.
const (
	POP     OpCode = 0x50
	MLOAD   OpCode = 0x51
	MSTORE  OpCode = 0x52
	MSTORE8 OpCode = 0x53
	SLOAD   OpCode = 0x54
	SSTORE  OpCode = 0x55
	MSIZE   OpCode = 0x59
	PUSH0   OpCode = 0x5f
)

// 0x60 range - pushes.
const (
	PUSH1 OpCode = 0x60 + iota
	PUSH2
	PUSH3
	PUSH4
	PUSH5
	PUSH6
	PUSH7
	PUSH8
	PUSH9
	PUSH10
	PUSH11
	PUSH12
	PUSH13
	PUSH14
	PUSH15
	PUSH16
	PUSH17
	PUSH18
	PUSH19
	PUSH20
	PUSH21
	PUSH22
	PUSH23
	PUSH24
	PUSH25
	PUSH26
	PUSH27
	PUSH28
	PUSH29
	PUSH30
	PUSH31
	PUSH32
)

// 0x80 range - dups.
const (
	DUP1 OpCode = 0x80 + iota
	DUP2
	DUP3
	DUP4
	DUP5
	DUP6
	DUP7
	DUP8
	DUP9
	DUP10
	DUP11
	DUP12
	DUP13
	DUP14
	DUP15
	DUP16
)

// 0x90 range - swaps.
const (
	SWAP1 OpCode = 0x90 + iota
	SWAP2
	SWAP3
	SWAP4
	SWAP5
	SWAP6
	SWAP7
	SWAP8
	SWAP9
	SWAP10
	SWAP11
	SWAP12
	SWAP13
	SWAP14
	SWAP15
	SWAP16
)

var opCodeToString = map[OpCode]string{
	STOP: "STOP",
	ADD:  "ADD",
	MUL:  "MUL",
	SUB:  "SUB",
	DIV:  "DIV",
	SDIV: "SDIV",
	MOD:  "MOD",
	SMOD: "SMOD",
	EXP:  "EXP",

	LT:     "LT",
	GT:     "GT",
	EQ:     "EQ",
	ISZERO: "ISZERO",
	AND:    "AND",
	OR:     "OR",
	XOR:    "XOR",
	NOT:    "NOT",
	BYTE:   "BYTE",
	SHL:    "SHL",
	SHR:    "SHR",
	SAR:    "SAR",

	KECCAK256: "KECCAK256",

	POP:     "POP",
	MLOAD:   "MLOAD",
	MSTORE:  "MSTORE",
	MSTORE8: "MSTORE8",
	SLOAD:   "SLOAD",
	SSTORE:  "SSTORE",
	MSIZE:   "MSIZE",
	PUSH0:   "PUSH0",
}

func init() {
	for i := 1; i <= config.MaxPushWidth; i++ {
		opCodeToString[PUSH0+OpCode(i)] = fmt.Sprintf("PUSH%d", i)
	}
	for i := 0; i < config.MaxStackDepth; i++ {
		opCodeToString[DUP1+OpCode(i)] = fmt.Sprintf("DUP%d", i+1)
		opCodeToString[SWAP1+OpCode(i)] = fmt.Sprintf("SWAP%d", i+1)
	}
}

func (op OpCode) String() string {
	if str, ok := opCodeToString[op]; ok {
		return str
	}
	return fmt.Sprintf("opcode %#x not defined", int(op))
}
