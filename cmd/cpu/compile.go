package cpu

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/micro8/cmd/settings"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc"
	"github.com/spf13/cobra"
)

var (
	compileOutputPath string
	compileListing    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <input.asm>",
	Short: "Assemble a text program into a micro8 binary",
	Long: `Assembles a text program into packed machine code.

Only instructions with a binary encoding can be assembled:
LOAD, STORE, ADD, AND, OR, XOR, NOT, JUMP and HALT. JUMP targets may be
absolute addresses ([12] or 12) or labels declared with "name:".

By default instructions are packed back to back. Use the global --slot-size
flag to place every instruction in a fixed size slot instead.

Examples:
  # Assemble to program.bin
  micro8 cpu compile program.asm

  # Specify output path and print the listing
  micro8 cpu compile -o out.bin --listing program.asm`,
	Args: cobra.ExactArgs(1),
	Run:  runCompile,
}

func init() {
	CpuCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutputPath, "output", "o", "", "Output file path (default: input with .bin extension)")
	compileCmd.Flags().BoolVarP(&compileListing, "listing", "l", false, "Print the assembly listing")
}

func defaultBinaryPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".bin"
}

func runCompile(cmd *cobra.Command, args []string) {
	if err := compile(args[0], compileOutputPath, compileListing, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
}

func compile(input string, output string, listing bool, stdout io.Writer) error {
	if output == "" {
		output = defaultBinaryPath(input)
	}

	assembler := mc.NewAssembler(
		mc.WithSlotSize(settings.Current().CPU.SlotSize),
		mc.WithLogger(settings.Logger()))

	program, err := assembler.AssembleFile(input, output)
	if err != nil {
		return err
	}

	if listing {
		fmt.Fprint(stdout, program.Listing())
	}

	fmt.Fprintf(stdout, "%s: %d instructions, %d bytes\n", output, len(program.Instructions), program.Size())
	return nil
}
