package cpu

import (
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/micro8/cmd/settings"
	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/spf13/cobra"
)

var (
	disasmStart  int
	disasmLength int
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <binary>",
	Short: "Disassemble a micro8 binary",
	Long: `Loads a binary program at address 0 and prints the instruction found
at each address. Bytes that do not decode are printed as "??" and skipped
one at a time. Use the global --slot-size flag for binaries laid out in
fixed size slots.

Example:
  micro8 cpu disasm program.bin
  micro8 cpu disasm --start 4 --length 8 program.bin`,
	Args: cobra.ExactArgs(1),
	Run:  runDisasm,
}

func init() {
	CpuCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().IntVarP(&disasmStart, "start", "s", 0, "First address to disassemble")
	disasmCmd.Flags().IntVarP(&disasmLength, "length", "n", 0, "Number of bytes to disassemble (default: up to the end of the program)")
}

func runDisasm(cmd *cobra.Command, args []string) {
	if err := disassemble(args[0], disasmStart, disasmLength, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func disassemble(path string, start int, length int, stdout io.Writer) error {
	binary, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	machine := bios.NewMachine(settings.Current().Machine(), settings.Logger(), io.Discard)
	if err := machine.Interpreter.LoadBinary(binary); err != nil {
		return err
	}

	end := len(binary)
	if length > 0 {
		end = start + length
	}

	listing := machine.Debugger.DisassembleRange(start, end)
	fmt.Fprint(stdout, interpreter.NewTraceFormatter(terminalStyle(stdout)).FormatDisassembly(listing))
	return nil
}
