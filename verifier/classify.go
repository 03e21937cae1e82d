// Package verifier statically checks eBPF programs before execution: every
// control-flow edge must stay in bounds and be loop-free, every instruction
// must be reachable from offset 0, and no instruction may read a register
// that has not been written on the path explored to it.
package verifier

import "github.com/jpsamaroo/ubpf/ebpf"

// IsJump reports whether inst branches to a relative target. CALL shares the
// jump class but has call semantics; treating it as a branch would read a
// garbage displacement out of its offset field.
func IsJump(inst ebpf.Instruction) bool {
	return inst.Class() == ebpf.CLS_JMP && inst.Opcode != ebpf.OP_CALL
}

// ReadsSource reports whether inst consumes its source register. EXIT counts
// as a read: its src field is r0 and the return-value convention demands r0
// be live. The exception set covers opcodes whose SRC_REG bit encodes
// something other than a register operand (be reuses it for byte order; neg,
// lddw, ja and call simply take no source register).
func ReadsSource(inst ebpf.Instruction) bool {
	if inst.Opcode == ebpf.OP_EXIT {
		return true
	}
	switch inst.Class() {
	case ebpf.CLS_STX, ebpf.CLS_LDX:
		return true
	case ebpf.CLS_ALU, ebpf.CLS_ALU64, ebpf.CLS_JMP:
		if inst.Opcode&ebpf.SRC_REG == 0 {
			return false
		}
		switch inst.Opcode {
		case ebpf.OP_NEG, ebpf.OP_NEG64, ebpf.OP_LE, ebpf.OP_BE,
			ebpf.OP_LDDW, ebpf.OP_JA, ebpf.OP_CALL:
			return false
		}
		return true
	}
	return false
}

// WritesDest reports whether inst assigns its destination register. Stores
// and jumps never write a general-purpose register as their primary effect.
func WritesDest(inst ebpf.Instruction) bool {
	switch inst.Class() {
	case ebpf.CLS_ST, ebpf.CLS_STX, ebpf.CLS_JMP:
		return false
	}
	return true
}
