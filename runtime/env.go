package runtime

import (
	"github.com/entropyio/cubipods/evm"
)

// NewEnv decodes code and returns an EVM on fresh state configured by cfg.
func NewEnv(code []byte, cfg *Config) *evm.EVM {
	evmConfig := cfg.EVMConfig
	evmConfig.Debug = evmConfig.Debug || cfg.Debug

	return evm.NewEVM(evm.Decode(code), cfg.VMConfig, evmConfig)
}
