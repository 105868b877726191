package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/micro8/cmd/settings"
	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shellPrompt = "(micro8) "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive machine shell",
	Long: `Powers on the machine and reads shell commands from stdin.

Type 'help' at the prompt for the list of commands. When stdin is a terminal
the prompt supports line editing, tab completion and history.`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

// BootCmd is a top level alias of "cpu shell"
var BootCmd = &cobra.Command{
	Use:   "boot",
	Short: "Power on the machine and start its shell",
	Args:  cobra.NoArgs,
	Run:   runShell,
}

func init() {
	CpuCmd.AddCommand(shellCmd)
}

// getHistoryFilePath returns the path to the shell history file
func getHistoryFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".micro8_history"
	}
	return filepath.Join(homeDir, ".micro8_history")
}

func runShell(cmd *cobra.Command, args []string) {
	ui := newCliUI(os.Stdout)
	machine := bios.NewMachine(settings.Current().Machine(), settings.Logger(), os.Stdout)
	controller := machine.PowerOn(ui)
	controller.SetTraceStyle(terminalStyle(os.Stdout))

	var err error
	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = interactiveLoop(controller)
	} else {
		err = scriptLoop(controller, os.Stdin)
	}

	if err != nil {
		colorError.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// scriptLoop executes one command per input line until exit or end of input
func scriptLoop(controller *bios.Controller, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	for controller.IsRunning() && scanner.Scan() {
		controller.Execute(scanner.Text())
	}

	return scanner.Err()
}

func completer(names []string) liner.Completer {
	return func(input string) []string {
		var completions []string
		for _, name := range names {
			if strings.HasPrefix(name, strings.ToLower(input)) {
				completions = append(completions, name)
			}
		}
		return completions
	}
}

func interactiveLoop(controller *bios.Controller) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(false)
	line.SetCompleter(completer(bios.CommandNames()))

	historyFile := getHistoryFilePath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	colorSuccess.Println("Type 'help' for available commands.")

	var loopErr error
	for controller.IsRunning() {
		input, err := line.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				break
			}
			if errors.Is(err, liner.ErrPromptAborted) {
				colorWarning.Println("Use 'exit' to leave the shell.")
				continue
			}
			loopErr = err
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		controller.Execute(input)
	}

	if f, err := os.Create(historyFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}

	return loopErr
}
