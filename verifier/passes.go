package verifier

import (
	"github.com/jpsamaroo/ubpf/ebpf"
	"github.com/jpsamaroo/ubpf/log"
)

// verifyNoLoopsOrDeadInsts runs the combined loop / dead-code pass. A jump
// whose target is both lower than the current offset and already visited is
// a cycle; a forward jump into visited territory is a legitimate merge. Dead
// instructions are collected from the visited set after the walk, even when
// the walk stopped on a loop, so the caller gets the full picture.
func verifyNoLoopsOrDeadInsts(prog ebpf.Program) []Violation {
	var violations []Violation
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		if IsJump(inst) {
			target := off + 1 + int(inst.Offset)
			if target >= 0 && target < off && visited[target] {
				log.Error(log.VerifierModule, "loop detected", "offset", off, "target", target)
				violations = append(violations, Violation{Offense: LoopDetected, Offset: off, Target: target})
				return actionStop
			}
		}
		return actionContinue
	})
	if w.run() == actionInvalid {
		violations = append(violations, *w.fault)
	}
	for off, seen := range w.visited {
		if !seen {
			log.Error(log.VerifierModule, "dead instruction", "offset", off)
			violations = append(violations, Violation{Offense: DeadInstruction, Offset: off})
		}
	}
	return violations
}

// verifyNoUninitRegs runs the register definite-assignment pass. One bitmap
// is threaded through the whole walk rather than forked per path, so a
// register initialized on the first-explored branch of a diamond counts as
// initialized on the other. r1 (first argument) and r10 (frame pointer) are
// live on entry by the calling convention.
func verifyNoUninitRegs(prog ebpf.Program) []Violation {
	var regInit [16]bool
	regInit[ebpf.R1] = true
	regInit[ebpf.R10] = true

	var violations []Violation
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		zeroIdiom := (inst.Opcode == ebpf.OP_XOR_REG || inst.Opcode == ebpf.OP_XOR64_REG) &&
			inst.Dst == inst.Src
		switch {
		case zeroIdiom:
			// xor r, r zeroes r; the self-read must not be flagged
			regInit[inst.Dst] = true
		case ReadsSource(inst) && !regInit[inst.Src]:
			log.Error(log.VerifierModule, "uninitialized register read", "register", inst.Src, "offset", off)
			violations = append(violations, Violation{Offense: UninitializedRegister, Offset: off, Register: inst.Src})
			return actionStop
		case WritesDest(inst):
			regInit[inst.Dst] = true
		}
		if inst.Opcode == ebpf.OP_CALL {
			regInit[ebpf.R0] = true // helper return value
		}
		return actionContinue
	})
	if w.run() == actionInvalid {
		violations = append(violations, *w.fault)
	}
	return violations
}
