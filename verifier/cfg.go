package verifier

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/jpsamaroo/ubpf/ebpf"
)

// ControlFlowTree renders prog's control-flow graph as a spanning tree in
// depth-first order: each offset becomes a node under the edge that first
// reached it, and edges into already-placed offsets become "goto" leaves.
// Structural faults surface as Violation errors, the same values Verify
// would report.
func ControlFlowTree(prog ebpf.Program) (treeprint.Tree, error) {
	if len(prog) == 0 {
		return nil, errors.New("empty program")
	}
	tree := treeprint.New()
	tree.SetValue("entry")
	visited := make([]bool, len(prog))
	if err := addFlowNode(prog, 0, visited, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func addFlowNode(prog ebpf.Program, off int, visited []bool, parent treeprint.Tree) error {
	visited[off] = true
	inst := prog[off]
	branch := parent.AddBranch(fmt.Sprintf("%d: %s", off, inst.String()))
	if inst.Opcode == ebpf.OP_EXIT {
		return nil
	}
	if IsJump(inst) {
		target := off + 1 + int(inst.Offset)
		if target == off {
			return Violation{Offense: JumpToSelf, Offset: off, Target: target}
		}
		if target < 0 || target >= len(prog) {
			return Violation{Offense: JumpOutOfBounds, Offset: off, Target: target}
		}
		if visited[target] {
			branch.AddNode(fmt.Sprintf("goto %d", target))
		} else if err := addFlowNode(prog, target, visited, branch); err != nil {
			return err
		}
	}
	if off == len(prog)-1 {
		return nil
	}
	if visited[off+1] {
		branch.AddNode(fmt.Sprintf("goto %d", off+1))
		return nil
	}
	return addFlowNode(prog, off+1, visited, branch)
}
