package interpreter

import (
	"fmt"
	"sort"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/memory"
)

// ExecutionEvent represents events that can occur during execution
type ExecutionEvent int

const (
	// EventStep is fired after each instruction execution
	EventStep ExecutionEvent = iota
	// EventBreakpoint is fired when a breakpoint is hit
	EventBreakpoint
	// EventHalt is fired when the CPU halts
	EventHalt
	// EventError is fired when an execution error occurs
	EventError
)

func (e ExecutionEvent) String() string {
	switch e {
	case EventStep:
		return "step"
	case EventBreakpoint:
		return "breakpoint"
	case EventHalt:
		return "halt"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", e)
	}
}

// StopReason indicates why execution stopped
type StopReason int

const (
	// StopNone indicates execution has not stopped
	StopNone StopReason = iota
	// StopStep indicates execution stopped after a single step, or because
	// the event callback asked to stop
	StopStep
	// StopBreakpoint indicates execution stopped at a breakpoint
	StopBreakpoint
	// StopHalt indicates the CPU executed HALT
	StopHalt
	// StopError indicates an execution error occurred
	StopError
	// StopMaxSteps indicates max steps limit was reached
	StopMaxSteps
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopStep:
		return "step"
	case StopBreakpoint:
		return "breakpoint"
	case StopHalt:
		return "halt"
	case StopError:
		return "error"
	case StopMaxSteps:
		return "max_steps"
	default:
		return fmt.Sprintf("unknown(%d)", r)
	}
}

// Breakpoint stops execution before the instruction at Address runs
type Breakpoint struct {
	ID       int
	Address  int
	Enabled  bool
	HitCount int
}

// ExecutionResult describes how a run ended
type ExecutionResult struct {
	StopReason    StopReason
	StepsExecuted int
	// Error is set when StopReason is StopError
	Error error
	// PC of the last instruction executed, or of the instruction that failed
	LastPC          int
	LastInstruction *cpu.Instruction
	BreakpointID    int
}

// EventCallback is called on execution events. Returning false from an
// EventStep callback stops the run.
type EventCallback func(event ExecutionEvent, result *ExecutionResult) bool

// Debugger adds breakpoints and execution events on top of an interpreter
type Debugger struct {
	interp          *Interpreter
	breakpoints     map[int]*Breakpoint
	breakpointAddrs map[int]*Breakpoint
	nextID          int
	callback        EventCallback
	lastResult      *ExecutionResult
}

func NewDebugger(interp *Interpreter) *Debugger {
	return &Debugger{
		interp:          interp,
		breakpoints:     make(map[int]*Breakpoint),
		breakpointAddrs: make(map[int]*Breakpoint),
		nextID:          1,
	}
}

func (d *Debugger) Interpreter() *Interpreter {
	return d.interp
}

func (d *Debugger) SetEventCallback(callback EventCallback) {
	d.callback = callback
}

func (d *Debugger) LastResult() *ExecutionResult {
	return d.lastResult
}

// AddBreakpoint adds a breakpoint, or returns the existing one at that address
func (d *Debugger) AddBreakpoint(address int) *Breakpoint {
	if bp, exists := d.breakpointAddrs[address]; exists {
		return bp
	}

	bp := &Breakpoint{ID: d.nextID, Address: address, Enabled: true}
	d.nextID++
	d.breakpoints[bp.ID] = bp
	d.breakpointAddrs[address] = bp
	return bp
}

func (d *Debugger) RemoveBreakpoint(id int) bool {
	bp, exists := d.breakpoints[id]
	if !exists {
		return false
	}

	delete(d.breakpoints, id)
	delete(d.breakpointAddrs, bp.Address)
	return true
}

// ListBreakpoints returns all breakpoints sorted by ID
func (d *Debugger) ListBreakpoints() []*Breakpoint {
	result := make([]*Breakpoint, 0, len(d.breakpoints))
	for _, bp := range d.breakpoints {
		result = append(result, bp)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (d *Debugger) ClearBreakpoints() {
	d.breakpoints = make(map[int]*Breakpoint)
	d.breakpointAddrs = make(map[int]*Breakpoint)
}

func (d *Debugger) fireEvent(event ExecutionEvent, result *ExecutionResult) bool {
	if d.callback == nil {
		return true
	}

	return d.callback(event, result)
}

// Step executes a single instruction, ignoring breakpoints
func (d *Debugger) Step() *ExecutionResult {
	result := &ExecutionResult{LastPC: d.interp.PC()}
	d.step(result)

	if result.StopReason == StopNone {
		result.StopReason = StopStep
		d.fireEvent(EventStep, result)
	}

	d.lastResult = result
	return result
}

// step executes one instruction and sets a stop reason if execution cannot go on
func (d *Debugger) step(result *ExecutionResult) {
	if d.interp.Halted() {
		result.StopReason = StopHalt
		d.fireEvent(EventHalt, result)
		return
	}

	result.LastPC = d.interp.PC()

	step, err := d.interp.Step()
	if err != nil {
		result.StopReason = StopError
		result.Error = err
		d.fireEvent(EventError, result)
		return
	}

	result.StepsExecuted++
	result.LastInstruction = step.Instruction

	if step.Halted {
		result.StopReason = StopHalt
		d.fireEvent(EventHalt, result)
	}
}

// Continue runs until a stop condition is met
func (d *Debugger) Continue() *ExecutionResult {
	return d.Run(0)
}

// Run executes up to maxSteps instructions (0 = unlimited)
func (d *Debugger) Run(maxSteps int) *ExecutionResult {
	result := &ExecutionResult{LastPC: d.interp.PC()}

	for result.StopReason == StopNone {
		if maxSteps > 0 && result.StepsExecuted >= maxSteps {
			result.StopReason = StopMaxSteps
			break
		}

		// a breakpoint at the starting PC does not stop a resumed run
		if result.StepsExecuted > 0 {
			if bp := d.breakpointAddrs[d.interp.PC()]; bp != nil && bp.Enabled {
				bp.HitCount++
				result.StopReason = StopBreakpoint
				result.BreakpointID = bp.ID
				result.LastPC = d.interp.PC()
				d.fireEvent(EventBreakpoint, result)
				break
			}
		}

		d.step(result)

		if result.StopReason == StopNone && !d.fireEvent(EventStep, result) {
			result.StopReason = StopStep
		}
	}

	d.lastResult = result
	return result
}

// DisassembleAt decodes the instruction stored at the given address
func (d *Debugger) DisassembleAt(address int) (*cpu.Instruction, error) {
	return cpu.DisassembleBinary(d.interp.Engine().Memory(), address)
}

// Disassembly is one decoded memory location
type Disassembly struct {
	Address     int
	Instruction *cpu.Instruction
	Error       error
}

// DisassembleRange decodes consecutive instructions in [start, end). Bytes
// that do not decode are reported one at a time.
func (d *Debugger) DisassembleRange(start int, end int) []Disassembly {
	end = min(end, memory.Size)
	var result []Disassembly

	for address := start; address < end; {
		instr, err := d.DisassembleAt(address)
		result = append(result, Disassembly{Address: address, Instruction: instr, Error: err})

		if err != nil {
			address++
		} else {
			address += d.interp.Advance(instr)
		}
	}

	return result
}
