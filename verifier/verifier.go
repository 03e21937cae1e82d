package verifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpsamaroo/ubpf/ebpf"
	"github.com/jpsamaroo/ubpf/log"
)

// Offense identifies a verification failure kind.
type Offense int

const (
	JumpToSelf Offense = iota
	JumpOutOfBounds
	LoopDetected
	DeadInstruction
	UninitializedRegister
)

func (o Offense) String() string {
	switch o {
	case JumpToSelf:
		return "jump-to-self"
	case JumpOutOfBounds:
		return "jump-out-of-bounds"
	case LoopDetected:
		return "loop"
	case DeadInstruction:
		return "dead-instruction"
	case UninitializedRegister:
		return "uninitialized-register"
	default:
		return fmt.Sprintf("offense(%d)", int(o))
	}
}

// Violation is one verification failure. Target is meaningful for jump
// offenses, Register for uninitialized-register reads.
type Violation struct {
	Offense  Offense
	Offset   int
	Target   int
	Register uint8
}

func (v Violation) Error() string {
	switch v.Offense {
	case JumpToSelf:
		return fmt.Sprintf("jump to self at offset %d", v.Offset)
	case JumpOutOfBounds:
		return fmt.Sprintf("jump out-of-bounds at offset %d to %d", v.Offset, v.Target)
	case LoopDetected:
		return fmt.Sprintf("loop detected at offset %d", v.Offset)
	case DeadInstruction:
		return fmt.Sprintf("dead instruction at offset %d", v.Offset)
	case UninitializedRegister:
		return fmt.Sprintf("uninitialized register r%d accessed at offset %d", v.Register, v.Offset)
	default:
		return fmt.Sprintf("%s at offset %d", v.Offense, v.Offset)
	}
}

// Result aggregates every violation a failing pass reported.
type Result struct {
	Violations []Violation
}

func (r *Result) Error() string {
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = v.Error()
	}
	return strings.Join(lines, "\n")
}

// Verify checks prog and returns nil when it is safe to execute. A non-nil
// error is always a rejection; when it is a *Result it carries the structured
// violations. The control-flow pass runs first and a control-flow failure
// suppresses the register pass: register facts are meaningless on a program
// whose flow is already broken.
func Verify(prog ebpf.Program) error {
	if len(prog) == 0 {
		return errors.New("empty program")
	}
	if len(prog) > ebpf.MaxInsts {
		return fmt.Errorf("program has %d instructions, limit is %d", len(prog), ebpf.MaxInsts)
	}
	for off, inst := range prog {
		if inst.Dst >= ebpf.NumRegisters || inst.Src >= ebpf.NumRegisters {
			return fmt.Errorf("invalid register field at offset %d", off)
		}
	}
	if vs := verifyNoLoopsOrDeadInsts(prog); len(vs) > 0 {
		log.Debug(log.VerifierModule, "control-flow pass rejected program", "violations", len(vs))
		return &Result{Violations: vs}
	}
	if vs := verifyNoUninitRegs(prog); len(vs) > 0 {
		log.Debug(log.VerifierModule, "register pass rejected program", "violations", len(vs))
		return &Result{Violations: vs}
	}
	return nil
}
