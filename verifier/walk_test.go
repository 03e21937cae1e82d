package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsamaroo/ubpf/ebpf"
)

func TestWalkOrderExploresBranchBeforeFallThrough(t *testing.T) {
	prog := ebpf.Program{
		ebpf.JumpEqImm(ebpf.R1, 0, 2), // -> 3
		ebpf.Mov64Imm(2, 1),
		ebpf.JumpAlways(1), // -> 4
		ebpf.Mov64Imm(0, 0),
		ebpf.Exit(),
	}
	var order []int
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		order = append(order, off)
		return actionContinue
	})
	assert.Equal(t, actionContinue, w.run())
	// 3 and 4 are re-entered when the fall-through arm falls into them
	assert.Equal(t, []int{0, 3, 4, 1, 2, 3, 4}, order)
}

func TestWalkDescendsBranchTargetOnce(t *testing.T) {
	prog := ebpf.Program{
		ebpf.JumpEqImm(ebpf.R1, 0, 1), // -> 2, also reached by fall-through
		ebpf.Mov64Imm(0, 1),
		ebpf.Mov64Imm(0, 2),
		ebpf.Exit(),
	}
	seen := make(map[int]int)
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		seen[off]++
		return actionContinue
	})
	require.Equal(t, actionContinue, w.run())
	assert.Equal(t, 1, seen[0])
	assert.Equal(t, 1, seen[1])
	// the merge point and the tail behind it are revisited by fall-through,
	// never re-descended through the branch edge
	assert.Equal(t, 2, seen[2])
	assert.Equal(t, 2, seen[3])
}

func TestWalkVisitorSeesOwnOffsetUnmarked(t *testing.T) {
	prog := ebpf.Program{
		ebpf.Mov64Imm(0, 0),
		ebpf.Exit(),
	}
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		assert.False(t, visited[off], "offset %d marked before its visitor ran", off)
		return actionContinue
	})
	assert.Equal(t, actionContinue, w.run())
}

func TestWalkRevisitObservesLaterVisitedTarget(t *testing.T) {
	// The back edge at 5 targets an offset that is unvisited when 5 is first
	// entered through the jump at 0. Only the fall-through re-entry of 5
	// sees the target as visited; the loop pass depends on this.
	prog := ebpf.Program{
		ebpf.JumpAlways(4), // -> 5
		ebpf.Mov64Imm(0, 0),
		ebpf.Mov64Imm(1, 1),
		ebpf.Mov64Imm(2, 2),
		ebpf.Mov64Imm(3, 3),
		ebpf.JumpAlways(-4), // -> 2
	}
	var targetVisible []bool
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		if off == 5 {
			targetVisible = append(targetVisible, visited[2])
		}
		return actionContinue
	})
	require.Equal(t, actionContinue, w.run())
	// first entry via the jump at 0, then twice more by falling in from 4
	assert.Equal(t, []bool{false, true, true}, targetVisible)
}

func TestWalkStopPropagates(t *testing.T) {
	prog := ebpf.Program{
		ebpf.Mov64Imm(0, 0),
		ebpf.Mov64Imm(1, 0),
		ebpf.Mov64Imm(2, 0),
		ebpf.Exit(),
	}
	var order []int
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		order = append(order, off)
		if off == 1 {
			return actionStop
		}
		return actionContinue
	})
	assert.Equal(t, actionStop, w.run())
	assert.Equal(t, []int{0, 1}, order)
	assert.False(t, w.visited[2])
	assert.False(t, w.visited[3])
}

func TestWalkSelfJump(t *testing.T) {
	prog := ebpf.Program{ebpf.JumpAlways(-1)}
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		return actionContinue
	})
	assert.Equal(t, actionInvalid, w.run())
	require.NotNil(t, w.fault)
	assert.Equal(t, JumpToSelf, w.fault.Offense)
	assert.Equal(t, 0, w.fault.Offset)
}

func TestWalkOutOfBounds(t *testing.T) {
	prog := ebpf.Program{ebpf.JumpAlways(100), ebpf.Exit()}
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		return actionContinue
	})
	assert.Equal(t, actionInvalid, w.run())
	require.NotNil(t, w.fault)
	assert.Equal(t, JumpOutOfBounds, w.fault.Offense)
	assert.Equal(t, 0, w.fault.Offset)
	assert.Equal(t, 101, w.fault.Target)
}

func TestWalkExitEndsPath(t *testing.T) {
	// nothing after an exit is entered through it
	prog := ebpf.Program{
		ebpf.Mov64Imm(0, 0),
		ebpf.Exit(),
		ebpf.Mov64Imm(1, 0),
	}
	w := newWalker(prog, func(inst ebpf.Instruction, off int, visited []bool) action {
		return actionContinue
	})
	require.Equal(t, actionContinue, w.run())
	assert.True(t, w.visited[0])
	assert.True(t, w.visited[1])
	assert.False(t, w.visited[2])
}
