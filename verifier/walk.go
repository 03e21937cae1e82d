package verifier

import (
	"github.com/jpsamaroo/ubpf/ebpf"
	"github.com/jpsamaroo/ubpf/log"
)

type action int

const (
	actionContinue action = iota
	actionStop
	actionInvalid
)

// visitFunc observes one instruction during the walk. On an offset's first
// visit the visited set does not yet include the offset itself; passes fold
// their state into closed-over variables.
type visitFunc func(inst ebpf.Instruction, off int, visited []bool) action

// walker performs a depth-first pre-order traversal of the control-flow
// graph: the branch edge of a jump is explored fully before its fall-through
// edge. Branch edges are descended at most once per target, guarded by the
// visited set. Fall-through edges are NOT guarded: re-entering an already
// visited offset by falling into it is what lets the loop pass observe a back
// edge whose target was reached after the jump's own first visit. Re-descent
// only ever moves forward one offset at a time, so the walk still terminates.
//
// The traversal is iterative with an owned stack; the input is untrusted and
// its length must not translate into call-stack depth.
type walker struct {
	prog    ebpf.Program
	visit   visitFunc
	visited []bool
	fault   *Violation // structural malformation, set when run returns actionInvalid
}

func newWalker(prog ebpf.Program, visit visitFunc) *walker {
	return &walker{
		prog:    prog,
		visit:   visit,
		visited: make([]bool, len(prog)),
	}
}

// run walks every path from offset 0. The first non-continue verdict from
// the visitor, or the first structural fault, aborts the whole walk.
func (w *walker) run() action {
	last := len(w.prog) - 1
	stack := make([]int, 0, len(w.prog))
	stack = append(stack, 0)
	for len(stack) > 0 {
		off := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		inst := w.prog[off]
		log.Trace(log.WalkerModule, "visit", "offset", off, "inst", inst.String())
		act := w.visit(inst, off, w.visited)
		w.visited[off] = true
		if act != actionContinue {
			return act
		}
		if inst.Opcode == ebpf.OP_EXIT {
			continue // this path terminates
		}
		// Fall-through goes under the branch target so the target subtree
		// is explored first, matching recursive pre-order.
		if off != last {
			stack = append(stack, off+1)
		}
		if IsJump(inst) {
			target := off + 1 + int(inst.Offset)
			if target == off {
				log.Error(log.VerifierModule, "jump to self", "offset", off)
				w.fault = &Violation{Offense: JumpToSelf, Offset: off, Target: target}
				return actionInvalid
			}
			if target < 0 || target > last {
				log.Error(log.VerifierModule, "jump out-of-bounds", "offset", off, "target", target)
				w.fault = &Violation{Offense: JumpOutOfBounds, Offset: off, Target: target}
				return actionInvalid
			}
			if !w.visited[target] {
				stack = append(stack, target)
			}
		}
	}
	return actionContinue
}
