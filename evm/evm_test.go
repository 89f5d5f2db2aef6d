package evm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/entropyio/cubipods/common"
	"github.com/entropyio/cubipods/config"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEVM(code string, vmConfig *config.VMConfig, cfg Config) *EVM {
	return NewEVM(Decode(common.Hex2Bytes(code)), vmConfig, cfg)
}

// stackValues returns the stack bottom first as uint64s.
func stackValues(evm *EVM) []uint64 {
	vals := make([]uint64, 0, evm.Stack().Len())
	for _, w := range evm.Stack().Data() {
		vals = append(vals, w.Uint64())
	}
	return vals
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		stack  []uint64
		status Status
		err    error
	}{
		{"push push add", "6003600201", []uint64{5}, Halted, nil},
		{"signed div then stop", "600660020500", []uint64{0}, Halted, nil},
		{"end of stream", "6004", []uint64{4}, Halted, nil},
		{"unknown opcode", "0b", []uint64{}, Failed, ErrInvalidOpcode},
		{"empty program", "", []uint64{}, Halted, nil},
		{"stop skips rest", "600100600260030b", []uint64{1}, Halted, nil},
		{"sub wraps", "6001600003", nil, Halted, nil},
		{"mod order", "6002600606", []uint64{0}, Halted, nil},
		{"mod order reversed", "6006600206", []uint64{2}, Halted, nil},
		{"dup", "600180", []uint64{1, 1}, Halted, nil},
		{"swap", "6001600290", []uint64{2, 1}, Halted, nil},
		{"pop", "6001600250", []uint64{1}, Halted, nil},
		{"underflow keeps stack", "600101", []uint64{1}, Failed, ErrStackUnderflow},
		{"pop empty", "50", []uint64{}, Failed, ErrStackUnderflow},
		{"swap too shallow", "600190", []uint64{1}, Failed, ErrStackUnderflow},
		{"iszero", "600015", []uint64{1}, Halted, nil},
		{"lt", "6002600110", []uint64{1}, Halted, nil},
		{"gt", "6002600111", []uint64{0}, Halted, nil},
		{"eq", "6002600214", []uint64{1}, Halted, nil},
		{"byte", "61abcd601e1a", []uint64{0xab}, Halted, nil},
		{"exp", "600860020a", []uint64{256}, Halted, nil},
		{"shl", "600160041b", []uint64{16}, Halted, nil},
		{"push0", "5f", []uint64{0}, Halted, nil},
		{"msize", "600160005259", []uint64{32}, Halted, nil},
		{"invalid after work", "6001600201600b0b", []uint64{3, 11}, Failed, ErrInvalidOpcode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evm := newTestEVM(tt.code, nil, Config{})
			err := evm.Run()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, evm.Err(), tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.status, evm.Status())
			if tt.stack != nil {
				assert.Equal(t, tt.stack, stackValues(evm))
			}
		})
	}
}

func TestRunSubWraps(t *testing.T) {
	evm := newTestEVM("6001600003", nil, Config{})
	require.NoError(t, evm.Run())
	top, err := evm.Stack().Peek(0)
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).SetAllOne(), top)
}

func TestRunKeccakEmpty(t *testing.T) {
	evm := newTestEVM("6000600020", nil, Config{})
	require.NoError(t, evm.Run())
	top, err := evm.Stack().Peek(0)
	require.NoError(t, err)
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", top.Hex())
	assert.Equal(t, 0, evm.Memory().Len())
}

func TestRunKeccakMemory(t *testing.T) {
	// mstore(0, 0x68656c6c6f20776f726c64) then keccak256(21, 11) == keccak256("hello world")
	evm := newTestEVM("6a68656c6c6f20776f726c64600052600b601520", nil, Config{})
	require.NoError(t, evm.Run())
	top, err := evm.Stack().Peek(0)
	require.NoError(t, err)
	assert.Equal(t, "0x47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad", top.Hex())
	assert.Equal(t, 32, evm.Memory().Len())
}

func TestRunMemoryAndStorage(t *testing.T) {
	evm := newTestEVM("60206040526002600155", nil, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, 0, evm.Stack().Len())

	assert.Equal(t, 96, evm.Memory().Len())
	word, err := evm.Memory().LoadWord(0x40)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x20), word.Uint64())

	v := evm.Storage().Load(uint256.NewInt(1))
	assert.Equal(t, uint64(2), v.Uint64())
	assert.Equal(t, 1, evm.Storage().Len())
}

func TestRunMstoreMloadRoundTrip(t *testing.T) {
	// mstore(7, 0xff..ff) ; mload(7)
	code := "7f" + strings.Repeat("ff", 32) + "600752" + "600751"
	evm := newTestEVM(code, nil, Config{})
	require.NoError(t, evm.Run())
	top, err := evm.Stack().Peek(0)
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).SetAllOne(), top)
	assert.Equal(t, 64, evm.Memory().Len())
}

func TestRunMstore8(t *testing.T) {
	evm := newTestEVM("61abff600153", nil, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, []byte{0x00, 0xff}, evm.Memory().Data()[:2])
	assert.Equal(t, 32, evm.Memory().Len())
}

func TestRunSloadSstore(t *testing.T) {
	// sstore(1, 42) ; sload(1) ; sload(1) ; sload(2)
	evm := newTestEVM("602a600155600154600154600254", nil, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, []uint64{42, 42, 0}, stackValues(evm))
}

func TestRunFailureKeepsState(t *testing.T) {
	// sstore(0, 1) ; mstore(0, 2) ; invalid ; push1 9
	evm := newTestEVM("60016000556002600052fe6009", nil, Config{})
	err := evm.Run()
	assert.ErrorIs(t, err, ErrInvalidOpcode)
	assert.Equal(t, uint64(6), evm.PC())
	v := evm.Storage().Load(uint256.NewInt(0))
	assert.Equal(t, uint64(1), v.Uint64())
	word, _ := evm.Memory().LoadWord(0)
	assert.Equal(t, uint64(2), word.Uint64())
	assert.Equal(t, 0, evm.Stack().Len())
}

func TestRunStackOverflow(t *testing.T) {
	code := bytes.Repeat([]byte{byte(PUSH0)}, int(config.StackLimit)+1)
	evm := NewEVM(Decode(code), nil, Config{})
	err := evm.Run()
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, int(config.StackLimit), evm.Stack().Len())
	assert.Equal(t, config.StackLimit, evm.PC())

	evm = NewEVM(Decode(code[:config.StackLimit]), nil, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, int(config.StackLimit), evm.Stack().Len())
}

func TestRunMemoryLimit(t *testing.T) {
	evm := newTestEVM("604051", &config.VMConfig{MemoryLimit: 64}, Config{})
	assert.ErrorIs(t, evm.Run(), ErrMemoryOverflow)
	assert.Equal(t, Failed, evm.Status())
	assert.Equal(t, 0, evm.Memory().Len())

	evm = newTestEVM("602051", &config.VMConfig{MemoryLimit: 64}, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, 64, evm.Memory().Len())

	// offset does not fit in 64 bits
	evm = newTestEVM("690100000000000000000051", nil, Config{})
	assert.ErrorIs(t, evm.Run(), ErrMemoryOverflow)
}

func TestRunTrace(t *testing.T) {
	evm := newTestEVM("6003600201", nil, Config{Debug: true})
	assert.Nil(t, evm.Trace())
	require.NoError(t, evm.Run())

	trace := evm.Trace()
	require.Len(t, trace, 3)
	assert.Equal(t, PUSH1, trace[0].Op)
	assert.Equal(t, []byte{0x03}, trace[0].Immediate)
	assert.Equal(t, uint64(0), trace[0].Pc)
	assert.Len(t, trace[0].Stack, 1)
	assert.Len(t, trace[1].Stack, 2)
	assert.Equal(t, ADD, trace[2].Op)
	assert.Equal(t, uint64(2), trace[2].Pc)
	assert.Equal(t, uint64(4), trace[2].Offset)
	require.Len(t, trace[2].Stack, 1)
	assert.Equal(t, uint64(5), trace[2].Stack[0].Uint64())
}

func TestRunTraceFault(t *testing.T) {
	logger := NewStructLogger(nil)
	evm := newTestEVM("600101", nil, Config{Tracer: logger})
	assert.ErrorIs(t, evm.Run(), ErrStackUnderflow)

	assert.Len(t, logger.StructLogs(), 1)
	require.NotNil(t, logger.Fault())
	assert.Equal(t, ADD, logger.Fault().Op)
	assert.ErrorIs(t, logger.Fault().Err, ErrStackUnderflow)
	assert.ErrorIs(t, logger.Error(), ErrStackUnderflow)
	assert.Len(t, evm.Trace(), 1)
}

func TestRunTraceLimit(t *testing.T) {
	evm := newTestEVM("5f5f5f5f", &config.VMConfig{TraceLimit: 2}, Config{Debug: true})
	require.NoError(t, evm.Run())
	assert.Len(t, evm.Trace(), 2)
	assert.True(t, evm.Config.Tracer.(*StructLogger).Truncated())
}

func TestStepAfterHalt(t *testing.T) {
	evm := newTestEVM("600100", nil, Config{})
	require.NoError(t, evm.Step())
	assert.Equal(t, Running, evm.Status())
	require.NoError(t, evm.Step())
	assert.Equal(t, Halted, evm.Status())
	assert.Equal(t, uint64(1), evm.PC())
	require.NoError(t, evm.Step())
	assert.Equal(t, []uint64{1}, stackValues(evm))

	evm = newTestEVM("0b", nil, Config{})
	err := evm.Step()
	assert.ErrorIs(t, err, ErrInvalidOpcode)
	assert.Equal(t, err, evm.Step())
}

func TestRunMemoryFailureKeepsOperands(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		depth int
		msg   string
	}{
		// push 1 ; push 2^72 ; mstore
		{"mstore far offset", "6001690100000000000000000052", 2, "offset 0x1000000000000000000, size 0x20"},
		// push 1 ; push 2^72 ; mstore8
		{"mstore8 far offset", "6001690100000000000000000053", 2, "offset 0x1000000000000000000, size 0x1"},
		// push 2^72 ; push 0 ; keccak256
		{"keccak256 huge size", "6901000000000000000000600020", 2, "offset 0x0, size 0x1000000000000000000"},
		// push 1 ; push 0xffffffe0 ; mstore
		{"mstore past ceiling", "600163ffffffe052", 2, "offset 4294967264"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evm := newTestEVM(tt.code, nil, Config{})
			err := evm.Run()
			assert.ErrorIs(t, err, ErrMemoryOverflow)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, tt.depth, evm.Stack().Len())
			assert.Equal(t, 0, evm.Memory().Len())
		})
	}
}

func TestRunDefaultMemoryCeiling(t *testing.T) {
	// mload(0xffffffe0)
	evm := newTestEVM("63ffffffe051", nil, Config{})
	assert.ErrorIs(t, evm.Run(), ErrMemoryOverflow)
	assert.Equal(t, 0, evm.Memory().Len())
	assert.Equal(t, 1, evm.Stack().Len())

	// the last word below the ceiling is still reachable
	last := config.MaxMemorySize - config.WordSize
	code := append([]byte{byte(PUSH4)}, wordToHash(uint256.NewInt(last)).Bytes()[28:]...)
	code = append(code, byte(MLOAD))
	evm = NewEVM(Decode(code), nil, Config{})
	require.NoError(t, evm.Run())
	assert.Equal(t, int(config.MaxMemorySize), evm.Memory().Len())
}
