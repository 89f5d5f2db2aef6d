package evm

import (
	"encoding/hex"
	"fmt"
	"io"
)

// LogConfig are the configuration options for structured logger the EVM
type LogConfig struct {
	DisableStack bool // disable stack capture
	Limit        int  // maximum length of output, but zero means unlimited
}

// StructLog is emitted to the EVM each cycle and lists information about the
// current internal state after the instruction has executed.
type StructLog struct {
	Pc         uint64 `json:"pc"`
	Offset     uint64 `json:"offset"`
	Op         OpCode `json:"op"`
	Immediate  []byte `json:"immediate,omitempty"`
	Stack      []Word `json:"stack"`
	MemorySize int    `json:"memSize"`
	Err        error  `json:"-"`
}

// OpName formats the operand name in a human-readable format.
func (s *StructLog) OpName() string {
	return s.Op.String()
}

// ErrorString formats the log's error as a string.
func (s *StructLog) ErrorString() string {
	if s.Err != nil {
		return s.Err.Error()
	}
	return ""
}

// Tracer is used to collect execution traces from an EVM run. CaptureState
// is called after every instruction that completed, CaptureFault for the
// instruction that failed the run, and CaptureEnd once the run halted.
type Tracer interface {
	CaptureStart(prog Program)
	CaptureState(pc uint64, in Instruction, stack *Stack, memory *Memory)
	CaptureFault(pc uint64, in Instruction, stack *Stack, memory *Memory, err error)
	CaptureEnd(err error)
}

// StructLogger is an EVM state logger and implements Tracer.
//
// StructLogger keeps a StructLog per executed instruction. The logs are only
// meant to be read once the run has halted.
type StructLogger struct {
	cfg LogConfig

	logs      []StructLog
	fault     *StructLog
	err       error
	truncated bool
}

// NewStructLogger returns a new logger
func NewStructLogger(cfg *LogConfig) *StructLogger {
	logger := &StructLogger{}
	if cfg != nil {
		logger.cfg = *cfg
	}
	return logger
}

// CaptureStart implements the Tracer interface to initialize the tracing operation.
func (l *StructLogger) CaptureStart(prog Program) {
	l.logs = make([]StructLog, 0, prog.Len())
	l.fault, l.err, l.truncated = nil, nil, false
}

// CaptureState logs a new structured log message and pushes it out to the environment
func (l *StructLogger) CaptureState(pc uint64, in Instruction, stack *Stack, memory *Memory) {
	if l.cfg.Limit != 0 && l.cfg.Limit <= len(l.logs) {
		l.truncated = true
		return
	}
	l.logs = append(l.logs, l.newLog(pc, in, stack, memory, nil))
}

// CaptureFault records the instruction that failed the run.
func (l *StructLogger) CaptureFault(pc uint64, in Instruction, stack *Stack, memory *Memory, err error) {
	fault := l.newLog(pc, in, stack, memory, err)
	l.fault = &fault
}

// CaptureEnd is called after the run halted.
func (l *StructLogger) CaptureEnd(err error) {
	l.err = err
}

func (l *StructLogger) newLog(pc uint64, in Instruction, stack *Stack, memory *Memory, err error) StructLog {
	var stck []Word
	if !l.cfg.DisableStack {
		stck = stack.Snapshot()
	}
	return StructLog{
		Pc:         pc,
		Offset:     in.Offset,
		Op:         in.Op,
		Immediate:  in.Immediate,
		Stack:      stck,
		MemorySize: memory.Len(),
		Err:        err,
	}
}

// StructLogs returns the captured log entries.
func (l *StructLogger) StructLogs() []StructLog { return l.logs }

// Fault returns the entry of the failing instruction, nil if the run halted normally.
func (l *StructLogger) Fault() *StructLog { return l.fault }

// Error returns the VM error captured by the trace.
func (l *StructLogger) Error() error { return l.err }

// Truncated reports whether entries were dropped because of the limit.
func (l *StructLogger) Truncated() bool { return l.truncated }

// WriteTrace writes a formatted trace to the given writer
func WriteTrace(writer io.Writer, logs []StructLog) {
	for _, log := range logs {
		fmt.Fprintf(writer, "%-16spc=%08d offset=0x%04x", log.Op, log.Pc, log.Offset)
		if len(log.Immediate) > 0 {
			fmt.Fprintf(writer, " data=0x%x", log.Immediate)
		}
		if log.Err != nil {
			fmt.Fprintf(writer, " ERROR: %v", log.Err)
		}
		fmt.Fprintln(writer)

		if len(log.Stack) > 0 {
			fmt.Fprintln(writer, "Stack:")
			for i := len(log.Stack) - 1; i >= 0; i-- {
				h := wordToHash(&log.Stack[i])
				fmt.Fprintf(writer, "%08d  %x\n", len(log.Stack)-i-1, h.Bytes())
			}
		}
		fmt.Fprintln(writer)
	}
}

// WriteMemory writes a hex dump of memory to the given writer.
func WriteMemory(writer io.Writer, mem []byte) {
	if len(mem) == 0 {
		return
	}
	fmt.Fprint(writer, hex.Dump(mem))
}
