package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/entropyio/cubipods/evm"
	"github.com/olekukonko/tablewriter"
)

// reporter renders the final state of a run. Stacks are always printed top
// first.
type reporter struct {
	out io.Writer
}

func (r *reporter) verbose(vmenv *evm.EVM) {
	fmt.Fprintf(r.out, "Status: %v at pc %d of %d instructions\n",
		vmenv.Status(), vmenv.PC(), vmenv.Program().Len())
	fmt.Fprintf(r.out, "Config: %v\n", vmenv.VMConfig().Hash())
	fmt.Fprintln(r.out)

	logs := vmenv.Trace()
	var fault *evm.StructLog
	if l, ok := vmenv.Config.Tracer.(*evm.StructLogger); ok {
		fault = l.Fault()
	}
	if fault != nil {
		logs = append(logs[:len(logs):len(logs)], *fault)
	}
	r.trace(logs)
	if fault != nil {
		fmt.Fprintln(r.out, "Fault:")
		evm.WriteTrace(r.out, []evm.StructLog{*fault})
	}
	r.stack(vmenv.Stack().Data())
	r.memory(vmenv.Memory().Data())
	r.storage(vmenv.Storage().Entries())
}

func (r *reporter) trace(logs []evm.StructLog) {
	fmt.Fprintln(r.out, "Trace:")
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Pc", "Offset", "Op", "Data", "Stack", "Error"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, log := range logs {
		data := ""
		if len(log.Immediate) > 0 {
			data = fmt.Sprintf("0x%x", log.Immediate)
		}
		table.Append([]string{
			fmt.Sprintf("%d", log.Pc),
			fmt.Sprintf("0x%04x", log.Offset),
			log.OpName(),
			data,
			stackLine(log.Stack),
			log.ErrorString(),
		})
	}
	table.Render()
	fmt.Fprintln(r.out)
}

func (r *reporter) stack(data []evm.Word) {
	fmt.Fprintf(r.out, "Stack (%d items, top first):\n", len(data))
	for i := len(data) - 1; i >= 0; i-- {
		fmt.Fprintf(r.out, "%4d: %s\n", len(data)-1-i, data[i].Hex())
	}
	fmt.Fprintln(r.out)
}

func (r *reporter) memory(mem []byte) {
	fmt.Fprintf(r.out, "Memory (%d bytes):\n", len(mem))
	evm.WriteMemory(r.out, mem)
	fmt.Fprintln(r.out)
}

func (r *reporter) storage(entries []evm.StorageEntry) {
	fmt.Fprintf(r.out, "Storage (%d slots):\n", len(entries))
	if len(entries) == 0 {
		return
	}
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Slot", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{e.Key.Hex(), e.Value.Hex()})
	}
	table.Render()
}

// stackLine renders a stack snapshot on one line, top first.
func stackLine(data []evm.Word) string {
	items := make([]string, 0, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		items = append(items, data[i].Hex())
	}
	return "[" + strings.Join(items, " ") + "]"
}
