package evm

import (
	"fmt"
	"strings"

	"github.com/entropyio/cubipods/logger"
)

var log = logger.NewLogger("[evm]")

// Instruction is a single decoded opcode together with its immediate data.
type Instruction struct {
	Op        OpCode
	Immediate []byte // exactly Op.PushWidth() bytes for PUSH1..PUSH32, nil otherwise
	Offset    uint64 // byte offset of the opcode in the source code
	Truncated bool   // the code ended inside the immediate, missing bytes are zero
}

// Value returns the word pushed by a PUSH instruction.
func (in Instruction) Value() Word {
	return wordFromBytes(in.Immediate)
}

func (in Instruction) String() string {
	if !in.Op.Defined() {
		return fmt.Sprintf("INVALID(0x%02x)", byte(in.Op))
	}
	if in.Op.IsPush() && in.Op != PUSH0 {
		return fmt.Sprintf("%v 0x%x", in.Op, in.Immediate)
	}
	return in.Op.String()
}

// Program is the decoded form of a piece of bytecode, in code order. The
// program counter of the EVM indexes into it.
type Program []Instruction

// Decode splits code into instructions in a single linear pass. It never
// fails: unknown bytes become instructions whose opcode is not Defined, and
// a PUSH running past the end of code is zero-extended and marked Truncated.
func Decode(code []byte) Program {
	prog := make(Program, 0, len(code))
	for i := uint64(0); i < uint64(len(code)); {
		op := OpCode(code[i])
		in := Instruction{Op: op, Offset: i}
		i++

		if n := op.PushWidth(); n > 0 {
			in.Immediate = make([]byte, n)
			end := i + uint64(n)
			if end > uint64(len(code)) {
				end = uint64(len(code))
				in.Truncated = true
				log.Warningf("decode truncated: %v at offset %d has %d of %d immediate bytes", op, in.Offset, end-i, n)
			}
			copy(in.Immediate, code[i:end])
			i = end
		}
		prog = append(prog, in)
	}
	return prog
}

// Len returns the number of instructions in the program.
func (p Program) Len() int {
	return len(p)
}

// At returns the instruction at pc and false if pc is past the end.
func (p Program) At(pc uint64) (Instruction, bool) {
	if pc >= uint64(len(p)) {
		return Instruction{}, false
	}
	return p[pc], true
}

// Validate returns an ErrInvalidOpcode for the first instruction the
// interpreter cannot execute.
func (p Program) Validate() error {
	for pc, in := range p {
		if !in.Op.Defined() {
			return fmt.Errorf("%w at pc %d (offset %d)", errInvalidOpcode(in.Op), pc, in.Offset)
		}
	}
	return nil
}

// String disassembles the program, one instruction per line.
func (p Program) String() string {
	var b strings.Builder
	for pc, in := range p {
		fmt.Fprintf(&b, "%05d [0x%04x] %v", pc, in.Offset, in)
		if in.Truncated {
			b.WriteString(" (truncated)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
