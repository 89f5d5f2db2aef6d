package runtime

import (
	"github.com/entropyio/cubipods/common"
	"github.com/entropyio/cubipods/common/crypto"
	"github.com/entropyio/cubipods/config"
	"github.com/entropyio/cubipods/evm"
	"github.com/entropyio/cubipods/logger"
)

var log = logger.NewLogger("[runtime]")

// Config is a basic type specifying certain configuration flags for running
// the EVM.
type Config struct {
	VMConfig  *config.VMConfig
	EVMConfig evm.Config
	Debug     bool // record a trace of every executed instruction
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	cfg.VMConfig = cfg.VMConfig.Sanitize()
}

// Execute executes the code on a fresh stack, memory and storage.
//
// The returned EVM is always non-nil once the configuration is valid and holds
// the final state, including state written before a failing instruction. The
// error is the one that failed the run.
func Execute(code []byte, cfg *Config) (*evm.EVM, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)
	if err := cfg.VMConfig.CheckSanity(); err != nil {
		return nil, err
	}

	vmenv := NewEnv(code, cfg)
	log.Debugf("execute code:%s, hash:%v, instructions:%d", common.Bytes2Hex(code), crypto.Keccak256Hash(code), vmenv.Program().Len())

	err := vmenv.Run()
	if err != nil {
		log.Infof("execution failed at pc %d: %v", vmenv.PC(), err)
	}
	return vmenv, err
}

// ExecuteHex parses hex encoded bytecode and executes it. Malformed input is
// rejected before anything runs, with a nil EVM.
func ExecuteHex(input string, cfg *Config) (*evm.EVM, error) {
	code, err := common.ParseHex(input)
	if err != nil {
		return nil, err
	}
	return Execute(code, cfg)
}
