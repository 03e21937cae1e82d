package ebpf

import "fmt"

// Architectural registers. r1..r5 carry call arguments, r0 the return value,
// r10 is the read-only frame pointer.
const (
	R0  = 0
	R1  = 1
	R10 = 10

	NumRegisters = 11
)

// MaxInsts caps the number of instructions a program may carry.
const MaxInsts = 65536

// Instruction is one decoded eBPF instruction. Dst and Src are 4-bit register
// indices on the wire; Offset is a signed branch displacement in instruction
// units, meaningful only for jump-class opcodes.
type Instruction struct {
	Opcode uint8
	Dst    uint8
	Src    uint8
	Offset int16
	Imm    int32
}

// Program is an ordered instruction sequence addressed by zero-based offset.
type Program []Instruction

// Class returns the instruction class bits of the opcode.
func (i Instruction) Class() uint8 {
	return i.Opcode & CLS_MASK
}

func (i Instruction) String() string {
	name, ok := OpcodeNames[i.Opcode]
	if !ok {
		return fmt.Sprintf("unknown_opcode_%#02x", i.Opcode)
	}
	switch i.Opcode {
	case OP_EXIT:
		return name
	case OP_CALL:
		return fmt.Sprintf("%s %d", name, i.Imm)
	case OP_JA:
		return fmt.Sprintf("%s %+d", name, i.Offset)
	case OP_NEG, OP_NEG64:
		return fmt.Sprintf("%s r%d", name, i.Dst)
	case OP_LE, OP_BE:
		return fmt.Sprintf("%s%d r%d", name, i.Imm, i.Dst)
	case OP_LDDW:
		return fmt.Sprintf("%s r%d, %#x", name, i.Dst, uint32(i.Imm))
	}
	switch i.Class() {
	case CLS_ALU, CLS_ALU64:
		if i.Opcode&SRC_REG != 0 {
			return fmt.Sprintf("%s r%d, r%d", name, i.Dst, i.Src)
		}
		return fmt.Sprintf("%s r%d, %d", name, i.Dst, i.Imm)
	case CLS_JMP:
		if i.Opcode&SRC_REG != 0 {
			return fmt.Sprintf("%s r%d, r%d, %+d", name, i.Dst, i.Src, i.Offset)
		}
		return fmt.Sprintf("%s r%d, %d, %+d", name, i.Dst, i.Imm, i.Offset)
	case CLS_LDX:
		return fmt.Sprintf("%s r%d, [r%d%+d]", name, i.Dst, i.Src, i.Offset)
	case CLS_ST:
		return fmt.Sprintf("%s [r%d%+d], %d", name, i.Dst, i.Offset, i.Imm)
	case CLS_STX:
		return fmt.Sprintf("%s [r%d%+d], r%d", name, i.Dst, i.Offset, i.Src)
	case CLS_LD:
		return fmt.Sprintf("%s r%d, %d", name, i.Dst, i.Imm)
	}
	return name
}

// Disassemble renders every instruction in the program, one line per slot.
func (p Program) Disassemble() []string {
	lines := make([]string, len(p))
	for off, inst := range p {
		lines[off] = fmt.Sprintf("%4d: %s", off, inst.String())
	}
	return lines
}
