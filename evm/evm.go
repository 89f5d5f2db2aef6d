package evm

import (
	"github.com/entropyio/cubipods/common"
	"github.com/entropyio/cubipods/common/crypto"
	"github.com/entropyio/cubipods/config"
)

// Status is the state of a run.
type Status int

const (
	Running Status = iota // more instructions to execute
	Halted                // stopped normally, by STOP or end of program
	Failed                // stopped by an execution error
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Config are the configuration options for the Interpreter
type Config struct {
	Debug  bool   // Enables tracing; a StructLogger is installed if Tracer is nil
	Tracer Tracer // Opcode logger
}

// EVM is the execution state of a single run: the program counter over a
// decoded Program together with the stack, memory and storage it mutates.
//
// An EVM runs exactly once and should not be reused.
type EVM struct {
	Config   Config
	vmConfig *config.VMConfig

	program Program
	pc      uint64
	stack   *Stack
	memory  *Memory
	storage *Storage

	status Status
	err    error

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes
}

// NewEVM returns a new EVM ready to run prog on empty state.
func NewEVM(prog Program, vmConfig *config.VMConfig, cfg Config) *EVM {
	vmConfig = vmConfig.Sanitize()
	if cfg.Debug && cfg.Tracer == nil {
		cfg.Tracer = NewStructLogger(&LogConfig{Limit: vmConfig.TraceLimit})
	}
	return &EVM{
		Config:   cfg,
		vmConfig: vmConfig,
		program:  prog,
		stack:    newstack(),
		memory:   NewMemory(vmConfig.MemoryLimit),
		storage:  NewStorage(),
	}
}

// Run steps through the program until it halts and returns the error that
// failed the run, if any. State up to the failing instruction is kept.
func (evm *EVM) Run() error {
	if evm.Config.Tracer != nil {
		evm.Config.Tracer.CaptureStart(evm.program)
	}
	log.Debugf("run start: %d instructions", evm.program.Len())

	for evm.status == Running {
		evm.Step()
	}

	if evm.Config.Tracer != nil {
		evm.Config.Tracer.CaptureEnd(evm.err)
	}
	log.Debugf("run %v at pc %d, stack depth %d, memory %d bytes, %d storage slots, err: %v",
		evm.status, evm.pc, evm.stack.Len(), evm.memory.Len(), evm.storage.Len(), evm.err)
	return evm.err
}

// Step executes the instruction at the program counter. Stepping a halted
// EVM is a no-op that returns the error the run ended with.
func (evm *EVM) Step() error {
	if evm.status != Running {
		return evm.err
	}
	in, ok := evm.program.At(evm.pc)
	if !ok {
		evm.status = Halted
		return nil
	}

	if err := evm.execute(in); err != nil {
		evm.status, evm.err = Failed, err
		if evm.Config.Tracer != nil {
			evm.Config.Tracer.CaptureFault(evm.pc, in, evm.stack, evm.memory, err)
		}
		log.Debugf("pc %d: %v failed: %v", evm.pc, in, err)
		return err
	}
	if evm.Config.Tracer != nil {
		evm.Config.Tracer.CaptureState(evm.pc, in, evm.stack, evm.memory)
	}

	if in.Op == STOP {
		evm.status = Halted
		return nil
	}
	evm.pc++
	return nil
}

// execute dispatches a single instruction.
func (evm *EVM) execute(in Instruction) error {
	if !in.Op.Defined() {
		return errInvalidOpcode(in.Op)
	}
	if err := checkStack(in.Op, evm.stack); err != nil {
		return err
	}

	switch op := in.Op; {
	case op == STOP:
		return nil
	case op == ADD:
		return opAdd(evm.stack)
	case op == MUL:
		return opMul(evm.stack)
	case op == SUB:
		return opSub(evm.stack)
	case op == DIV:
		return opDiv(evm.stack)
	case op == SDIV:
		return opSdiv(evm.stack)
	case op == MOD:
		return opMod(evm.stack)
	case op == SMOD:
		return opSmod(evm.stack)
	case op == EXP:
		return opExp(evm.stack)
	case op == LT:
		return opLt(evm.stack)
	case op == GT:
		return opGt(evm.stack)
	case op == EQ:
		return opEq(evm.stack)
	case op == ISZERO:
		return opIszero(evm.stack)
	case op == AND:
		return opAnd(evm.stack)
	case op == OR:
		return opOr(evm.stack)
	case op == XOR:
		return opXor(evm.stack)
	case op == NOT:
		return opNot(evm.stack)
	case op == BYTE:
		return opByte(evm.stack)
	case op == SHL:
		return opSHL(evm.stack)
	case op == SHR:
		return opSHR(evm.stack)
	case op == SAR:
		return opSAR(evm.stack)
	case op == KECCAK256:
		return opKeccak256(evm)
	case op == POP:
		_, err := evm.stack.Pop()
		return err
	case op == MLOAD:
		return opMload(evm.stack, evm.memory)
	case op == MSTORE:
		return opMstore(evm.stack, evm.memory)
	case op == MSTORE8:
		return opMstore8(evm.stack, evm.memory)
	case op == SLOAD:
		return opSload(evm.stack, evm.storage)
	case op == SSTORE:
		return opSstore(evm.stack, evm.storage)
	case op == MSIZE:
		return opMsize(evm.stack, evm.memory)
	case op.IsPush():
		v := in.Value()
		return evm.stack.Push(&v)
	case op.IsDup():
		return evm.stack.Dup(int(op-DUP1) + 1)
	case op.IsSwap():
		return evm.stack.Swap(int(op-SWAP1) + 1)
	}
	return errInvalidOpcode(in.Op)
}

// Program returns the decoded program being executed.
func (evm *EVM) Program() Program { return evm.program }

// PC returns the program counter, an index into Program.
func (evm *EVM) PC() uint64 { return evm.pc }

// Stack returns the operand stack.
func (evm *EVM) Stack() *Stack { return evm.stack }

// Memory returns the memory of the run.
func (evm *EVM) Memory() *Memory { return evm.memory }

// Storage returns the storage of the run.
func (evm *EVM) Storage() *Storage { return evm.storage }

// Status returns the state of the run.
func (evm *EVM) Status() Status { return evm.status }

// Err returns the error that failed the run, nil otherwise.
func (evm *EVM) Err() error { return evm.err }

// VMConfig returns the limits the run was configured with.
func (evm *EVM) VMConfig() *config.VMConfig { return evm.vmConfig }

// Trace returns the recorded steps once the run has halted. It is nil while
// the run is in progress or when no StructLogger is installed.
func (evm *EVM) Trace() []StructLog {
	if evm.status == Running {
		return nil
	}
	if l, ok := evm.Config.Tracer.(*StructLogger); ok {
		return l.StructLogs()
	}
	return nil
}
