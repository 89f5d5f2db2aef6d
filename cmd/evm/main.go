// evm executes cubipods bytecode and prints the resulting machine state.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/entropyio/cubipods/logger"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"
)

var gitCommit = ""

// errUsage marks errors in the command line itself, as opposed to failed runs.
var errUsage = errors.New("usage error")

var (
	BytecodeFlag = cli.StringFlag{
		Name:  "bytecode",
		Usage: "hex encoded bytecode, 0x prefix optional",
	}
	VerboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print the execution trace, memory and storage along with the stack",
	}
	MemoryLimitFlag = cli.Uint64Flag{
		Name:  "memlimit",
		Usage: "highest memory size in bytes the code may touch, 0 = default",
	}
	TraceLimitFlag = cli.IntFlag{
		Name:  "tracelimit",
		Usage: "max number of trace steps kept in verbose mode, 0 = unlimited",
	}
	LogLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level: critical, error, warning, notice, info or debug",
		Value: "warning",
	}
)

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "evm"
	app.Usage = "run a linear EVM subset over bytecode"
	app.Version = "0.1.0"
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}
	app.Writer = out
	app.Flags = []cli.Flag{
		BytecodeFlag,
		VerboseFlag,
		MemoryLimitFlag,
		TraceLimitFlag,
		LogLevelFlag,
	}
	app.Commands = []cli.Command{
		runCommand,
		disasmCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		if err := logger.SetLevel(ctx.GlobalString(LogLevelFlag.Name)); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
	app.Action = runCmd
	return app
}

func main() {
	logger.SetOutput(colorable.NewColorableStderr())
	app := newApp(colorable.NewColorableStdout())
	if err := app.Run(os.Args); err != nil {
		code := 1
		if errors.Is(err, errUsage) {
			code = 2
		}
		printError(err)
		os.Exit(code)
	}
}

func printError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(colorable.NewColorableStderr(), "\x1b[31merror:\x1b[0m %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
