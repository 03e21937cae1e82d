package ebpf

import (
	"encoding/binary"
	"fmt"
)

// InstSize is the wire size of one instruction slot in bytes.
const InstSize = 8

// Decode parses little-endian eBPF bytecode into a Program. Every 8-byte slot
// becomes one Instruction; the trailing slot of an lddw pair is kept as its
// own zero-opcode instruction so that branch offsets keep their slot-based
// meaning.
func Decode(code []byte) (Program, error) {
	if len(code)%InstSize != 0 {
		return nil, fmt.Errorf("code size %d is not a multiple of %d", len(code), InstSize)
	}
	n := len(code) / InstSize
	if n == 0 {
		return nil, fmt.Errorf("empty program")
	}
	if n > MaxInsts {
		return nil, fmt.Errorf("program has %d instructions, limit is %d", n, MaxInsts)
	}
	prog := make(Program, n)
	for off := 0; off < n; off++ {
		b := code[off*InstSize:]
		inst := Instruction{
			Opcode: b[0],
			Dst:    b[1] & 0x0f,
			Src:    b[1] >> 4,
			Offset: int16(binary.LittleEndian.Uint16(b[2:4])),
			Imm:    int32(binary.LittleEndian.Uint32(b[4:8])),
		}
		if inst.Dst >= NumRegisters {
			return nil, fmt.Errorf("invalid destination register r%d at offset %d", inst.Dst, off)
		}
		if inst.Src >= NumRegisters {
			return nil, fmt.Errorf("invalid source register r%d at offset %d", inst.Src, off)
		}
		prog[off] = inst
	}
	for off := 0; off < n; off++ {
		if prog[off].Opcode == OP_LDDW {
			if off == n-1 {
				return nil, fmt.Errorf("lddw at offset %d is missing its second slot", off)
			}
			off++ // second slot is data, not an opcode to check
		}
	}
	return prog, nil
}

// Encode serializes one instruction into its 8-byte wire form.
func (i Instruction) Encode() []byte {
	b := make([]byte, InstSize)
	b[0] = i.Opcode
	b[1] = i.Src<<4 | i.Dst&0x0f
	binary.LittleEndian.PutUint16(b[2:4], uint16(i.Offset))
	binary.LittleEndian.PutUint32(b[4:8], uint32(i.Imm))
	return b
}

// Encode serializes the whole program.
func (p Program) Encode() []byte {
	out := make([]byte, 0, len(p)*InstSize)
	for _, inst := range p {
		out = append(out, inst.Encode()...)
	}
	return out
}
