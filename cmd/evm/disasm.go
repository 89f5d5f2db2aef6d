package main

import (
	"fmt"

	"github.com/entropyio/cubipods/evm"
	"gopkg.in/urfave/cli.v1"
)

var disasmCommand = cli.Command{
	Action:    disasmCmd,
	Name:      "disasm",
	Usage:     "disassembles bytecode",
	ArgsUsage: "[<bytecode>]",
	Flags: []cli.Flag{
		BytecodeFlag,
	},
}

func disasmCmd(ctx *cli.Context) error {
	code, err := parseBytecode(ctx)
	if err != nil {
		return err
	}
	prog := evm.Decode(code)
	fmt.Fprint(ctx.App.Writer, prog.String())
	return prog.Validate()
}
