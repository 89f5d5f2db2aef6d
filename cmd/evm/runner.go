package main

import (
	"fmt"

	"github.com/entropyio/cubipods/common"
	"github.com/entropyio/cubipods/config"
	"github.com/entropyio/cubipods/runtime"
	"gopkg.in/urfave/cli.v1"
)

var runCommand = cli.Command{
	Action:    runCmd,
	Name:      "run",
	Usage:     "executes the given bytecode",
	ArgsUsage: "[<bytecode>]",
	Flags: []cli.Flag{
		BytecodeFlag,
		VerboseFlag,
	},
}

// bytecodeArg returns the bytecode given as flag, command flag or first
// argument, in that order of preference.
func bytecodeArg(ctx *cli.Context) (string, error) {
	switch {
	case ctx.IsSet(BytecodeFlag.Name):
		return ctx.String(BytecodeFlag.Name), nil
	case ctx.GlobalIsSet(BytecodeFlag.Name):
		return ctx.GlobalString(BytecodeFlag.Name), nil
	case len(ctx.Args().First()) > 0:
		return ctx.Args().First(), nil
	}
	return "", fmt.Errorf("%w: missing --%s value", errUsage, BytecodeFlag.Name)
}

func parseBytecode(ctx *cli.Context) ([]byte, error) {
	input, err := bytecodeArg(ctx)
	if err != nil {
		return nil, err
	}
	code, err := common.ParseHex(input)
	if err != nil {
		return nil, fmt.Errorf("%w: bytecode: %v", errUsage, err)
	}
	return code, nil
}

func runCmd(ctx *cli.Context) error {
	code, err := parseBytecode(ctx)
	if err != nil {
		return err
	}
	verbose := ctx.Bool(VerboseFlag.Name) || ctx.GlobalBool(VerboseFlag.Name)

	cfg := &runtime.Config{
		VMConfig: &config.VMConfig{
			MemoryLimit: ctx.GlobalUint64(MemoryLimitFlag.Name),
			TraceLimit:  ctx.GlobalInt(TraceLimitFlag.Name),
		},
		Debug: verbose,
	}
	vmenv, err := runtime.Execute(code, cfg)
	if vmenv == nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	r := &reporter{out: ctx.App.Writer}
	if verbose {
		r.verbose(vmenv)
	} else {
		r.stack(vmenv.Stack().Data())
	}
	return err
}
