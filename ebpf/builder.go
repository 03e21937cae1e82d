package ebpf

// Instruction constructors so programs in tests and tools read like assembly
// listings.

func Mov64Imm(dst uint8, imm int32) Instruction {
	return Instruction{Opcode: OP_MOV64_IMM, Dst: dst, Imm: imm}
}

func Mov64Reg(dst, src uint8) Instruction {
	return Instruction{Opcode: OP_MOV64_REG, Dst: dst, Src: src}
}

func Mov32Imm(dst uint8, imm int32) Instruction {
	return Instruction{Opcode: OP_MOV_IMM, Dst: dst, Imm: imm}
}

func Add64Imm(dst uint8, imm int32) Instruction {
	return Instruction{Opcode: OP_ADD64_IMM, Dst: dst, Imm: imm}
}

func Add64Reg(dst, src uint8) Instruction {
	return Instruction{Opcode: OP_ADD64_REG, Dst: dst, Src: src}
}

func Xor64Reg(dst, src uint8) Instruction {
	return Instruction{Opcode: OP_XOR64_REG, Dst: dst, Src: src}
}

func Xor32Reg(dst, src uint8) Instruction {
	return Instruction{Opcode: OP_XOR_REG, Dst: dst, Src: src}
}

func Neg64(dst uint8) Instruction {
	return Instruction{Opcode: OP_NEG64, Dst: dst}
}

func LoadDoubleImm(dst uint8, imm int64) []Instruction {
	return []Instruction{
		{Opcode: OP_LDDW, Dst: dst, Imm: int32(imm)},
		{Imm: int32(imm >> 32)},
	}
}

func LoadXDoubleWord(dst, src uint8, offset int16) Instruction {
	return Instruction{Opcode: OP_LDXDW, Dst: dst, Src: src, Offset: offset}
}

func StoreXDoubleWord(dst, src uint8, offset int16) Instruction {
	return Instruction{Opcode: OP_STXDW, Dst: dst, Src: src, Offset: offset}
}

func JumpAlways(offset int16) Instruction {
	return Instruction{Opcode: OP_JA, Offset: offset}
}

func JumpEqImm(dst uint8, imm int32, offset int16) Instruction {
	return Instruction{Opcode: OP_JEQ_IMM, Dst: dst, Imm: imm, Offset: offset}
}

func JumpEqReg(dst, src uint8, offset int16) Instruction {
	return Instruction{Opcode: OP_JEQ_REG, Dst: dst, Src: src, Offset: offset}
}

func JumpGtImm(dst uint8, imm int32, offset int16) Instruction {
	return Instruction{Opcode: OP_JGT_IMM, Dst: dst, Imm: imm, Offset: offset}
}

func Call(imm int32) Instruction {
	return Instruction{Opcode: OP_CALL, Imm: imm}
}

func Exit() Instruction {
	return Instruction{Opcode: OP_EXIT}
}
