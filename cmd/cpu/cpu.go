package cpu

import (
	"github.com/spf13/cobra"
)

// CpuCmd groups the commands that assemble, run and inspect programs
var CpuCmd = &cobra.Command{
	Use:   "cpu",
	Short: "Micro8 CPU tools",
	Long: `Commands to run, assemble and inspect micro8 programs.

Text programs (.asm) are interpreted line by line. Binary programs are raw
machine code loaded at address 0 and executed from there.`,
}
