package cpu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/Manu343726/micro8/pkg/utils"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	colorAddr    = color.New(color.FgCyan)
	colorReg     = color.New(color.FgGreen)
	colorValue   = color.New(color.FgWhite, color.Bold)
	colorHex     = color.New(color.FgMagenta)
	colorError   = color.New(color.FgRed, color.Bold)
	colorSuccess = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow)
	colorHeader  = color.New(color.FgWhite, color.Bold, color.Underline)
	colorInstr   = color.New(color.FgYellow)
)

// terminalStyle picks colored output only when w is a terminal
func terminalStyle(w io.Writer) interpreter.FormatStyle {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return interpreter.StyleColored
	}

	return interpreter.StylePlain
}

// cliUI implements bios.UI on top of a terminal
type cliUI struct {
	out io.Writer
}

var _ bios.UI = (*cliUI)(nil)

func newCliUI(out io.Writer) *cliUI {
	return &cliUI{out: out}
}

func (ui *cliUI) ShowMessage(level bios.MessageLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	switch level {
	case bios.LevelError:
		colorError.Fprintln(ui.out, message)
	case bios.LevelWarning:
		colorWarning.Fprintln(ui.out, message)
	case bios.LevelSuccess:
		colorSuccess.Fprintln(ui.out, message)
	default:
		fmt.Fprintln(ui.out, message)
	}
}

// ShowMemoryDump prints one cell per line
func (ui *cliUI) ShowMemoryDump(start int, cells []string) {
	for i, cell := range cells {
		fmt.Fprintf(ui.out, "%s  %s\n", colorAddr.Sprint(utils.FormatHex(uint(start+i), 2)), colorValue.Sprint(cell))
	}
}

func (ui *cliUI) ShowRegisters(values [cpu.TotalRegisters]uint8) {
	for r, value := range values {
		fmt.Fprintf(ui.out, "%s = %s (%s, %s)\n",
			colorReg.Sprint(cpu.Register(r)),
			colorValue.Sprintf("%3d", value),
			colorHex.Sprint(utils.FormatHex(value, 2)),
			utils.FormatByte(value))
	}
}

func (ui *cliUI) ShowText(text string) {
	fmt.Fprint(ui.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(ui.out)
	}
}

func (ui *cliUI) ShowHelp(commands []bios.CommandHelp) {
	colorHeader.Fprintln(ui.out, "Commands:")
	for _, cmd := range commands {
		aliases := ""
		if len(cmd.Aliases) > 0 {
			aliases = ", " + strings.Join(cmd.Aliases, ", ")
		}
		fmt.Fprintf(ui.out, "  %s%s - %s\n",
			colorInstr.Sprint(cmd.Name),
			colorInstr.Sprint(aliases),
			cmd.Description)
		fmt.Fprintf(ui.out, "      usage: %s\n", cmd.Usage)
	}
}
