package ebpf

// Instruction classes, encoded in the low three bits of the opcode.
const (
	CLS_MASK = 0x07

	CLS_LD    = 0x00
	CLS_LDX   = 0x01
	CLS_ST    = 0x02
	CLS_STX   = 0x03
	CLS_ALU   = 0x04
	CLS_JMP   = 0x05
	CLS_ALU64 = 0x07
)

// Source-operand addressing bit for ALU and JMP class opcodes.
const (
	SRC_IMM = 0x00
	SRC_REG = 0x08
)

// Memory access width and mode bits for LD/LDX/ST/STX class opcodes.
const (
	SIZE_W  = 0x00
	SIZE_H  = 0x08
	SIZE_B  = 0x10
	SIZE_DW = 0x18

	MODE_IMM = 0x00
	MODE_ABS = 0x20
	MODE_IND = 0x40
	MODE_MEM = 0x60
)

// 32-bit ALU opcodes.
const (
	OP_ADD_IMM  = 0x04
	OP_ADD_REG  = 0x0c
	OP_SUB_IMM  = 0x14
	OP_SUB_REG  = 0x1c
	OP_MUL_IMM  = 0x24
	OP_MUL_REG  = 0x2c
	OP_DIV_IMM  = 0x34
	OP_DIV_REG  = 0x3c
	OP_OR_IMM   = 0x44
	OP_OR_REG   = 0x4c
	OP_AND_IMM  = 0x54
	OP_AND_REG  = 0x5c
	OP_LSH_IMM  = 0x64
	OP_LSH_REG  = 0x6c
	OP_RSH_IMM  = 0x74
	OP_RSH_REG  = 0x7c
	OP_NEG      = 0x84
	OP_MOD_IMM  = 0x94
	OP_MOD_REG  = 0x9c
	OP_XOR_IMM  = 0xa4
	OP_XOR_REG  = 0xac
	OP_MOV_IMM  = 0xb4
	OP_MOV_REG  = 0xbc
	OP_ARSH_IMM = 0xc4
	OP_ARSH_REG = 0xcc
	OP_LE       = 0xd4
	OP_BE       = 0xdc // byte-width lives in imm; SRC_REG bit is part of the encoding
)

// 64-bit ALU opcodes.
const (
	OP_ADD64_IMM  = 0x07
	OP_ADD64_REG  = 0x0f
	OP_SUB64_IMM  = 0x17
	OP_SUB64_REG  = 0x1f
	OP_MUL64_IMM  = 0x27
	OP_MUL64_REG  = 0x2f
	OP_DIV64_IMM  = 0x37
	OP_DIV64_REG  = 0x3f
	OP_OR64_IMM   = 0x47
	OP_OR64_REG   = 0x4f
	OP_AND64_IMM  = 0x57
	OP_AND64_REG  = 0x5f
	OP_LSH64_IMM  = 0x67
	OP_LSH64_REG  = 0x6f
	OP_RSH64_IMM  = 0x77
	OP_RSH64_REG  = 0x7f
	OP_NEG64      = 0x87
	OP_MOD64_IMM  = 0x97
	OP_MOD64_REG  = 0x9f
	OP_XOR64_IMM  = 0xa7
	OP_XOR64_REG  = 0xaf
	OP_MOV64_IMM  = 0xb7
	OP_MOV64_REG  = 0xbf
	OP_ARSH64_IMM = 0xc7
	OP_ARSH64_REG = 0xcf
)

// Load opcodes. LDDW is the only two-slot instruction: the following slot
// carries the high 32 bits of the immediate in its imm field.
const (
	OP_LDDW      = 0x18
	OP_LDABS_W   = 0x20
	OP_LDABS_H   = 0x28
	OP_LDABS_B   = 0x30
	OP_LDABS_DW  = 0x38
	OP_LDIND_W   = 0x40
	OP_LDIND_H   = 0x48
	OP_LDIND_B   = 0x50
	OP_LDIND_DW  = 0x58
	OP_LDXW      = 0x61
	OP_LDXH      = 0x69
	OP_LDXB      = 0x71
	OP_LDXDW     = 0x79
)

// Store opcodes.
const (
	OP_STW   = 0x62
	OP_STH   = 0x6a
	OP_STB   = 0x72
	OP_STDW  = 0x7a
	OP_STXW  = 0x63
	OP_STXH  = 0x6b
	OP_STXB  = 0x73
	OP_STXDW = 0x7b
)

// Jump opcodes. CALL and EXIT share the jump class but are not branches.
const (
	OP_JA       = 0x05
	OP_JEQ_IMM  = 0x15
	OP_JEQ_REG  = 0x1d
	OP_JGT_IMM  = 0x25
	OP_JGT_REG  = 0x2d
	OP_JGE_IMM  = 0x35
	OP_JGE_REG  = 0x3d
	OP_JSET_IMM = 0x45
	OP_JSET_REG = 0x4d
	OP_JNE_IMM  = 0x55
	OP_JNE_REG  = 0x5d
	OP_JSGT_IMM = 0x65
	OP_JSGT_REG = 0x6d
	OP_JSGE_IMM = 0x75
	OP_JSGE_REG = 0x7d
	OP_CALL     = 0x85
	OP_EXIT     = 0x95
	OP_JLT_IMM  = 0xa5
	OP_JLT_REG  = 0xad
	OP_JLE_IMM  = 0xb5
	OP_JLE_REG  = 0xbd
	OP_JSLT_IMM = 0xc5
	OP_JSLT_REG = 0xcd
	OP_JSLE_IMM = 0xd5
	OP_JSLE_REG = 0xdd
)

// OpcodeNames maps opcode values to their mnemonics
var OpcodeNames = map[uint8]string{
	OP_ADD_IMM: "add32", OP_ADD_REG: "add32",
	OP_SUB_IMM: "sub32", OP_SUB_REG: "sub32",
	OP_MUL_IMM: "mul32", OP_MUL_REG: "mul32",
	OP_DIV_IMM: "div32", OP_DIV_REG: "div32",
	OP_OR_IMM: "or32", OP_OR_REG: "or32",
	OP_AND_IMM: "and32", OP_AND_REG: "and32",
	OP_LSH_IMM: "lsh32", OP_LSH_REG: "lsh32",
	OP_RSH_IMM: "rsh32", OP_RSH_REG: "rsh32",
	OP_NEG:     "neg32",
	OP_MOD_IMM: "mod32", OP_MOD_REG: "mod32",
	OP_XOR_IMM: "xor32", OP_XOR_REG: "xor32",
	OP_MOV_IMM: "mov32", OP_MOV_REG: "mov32",
	OP_ARSH_IMM: "arsh32", OP_ARSH_REG: "arsh32",
	OP_LE: "le", OP_BE: "be",

	OP_ADD64_IMM: "add", OP_ADD64_REG: "add",
	OP_SUB64_IMM: "sub", OP_SUB64_REG: "sub",
	OP_MUL64_IMM: "mul", OP_MUL64_REG: "mul",
	OP_DIV64_IMM: "div", OP_DIV64_REG: "div",
	OP_OR64_IMM: "or", OP_OR64_REG: "or",
	OP_AND64_IMM: "and", OP_AND64_REG: "and",
	OP_LSH64_IMM: "lsh", OP_LSH64_REG: "lsh",
	OP_RSH64_IMM: "rsh", OP_RSH64_REG: "rsh",
	OP_NEG64:     "neg",
	OP_MOD64_IMM: "mod", OP_MOD64_REG: "mod",
	OP_XOR64_IMM: "xor", OP_XOR64_REG: "xor",
	OP_MOV64_IMM: "mov", OP_MOV64_REG: "mov",
	OP_ARSH64_IMM: "arsh", OP_ARSH64_REG: "arsh",

	OP_LDDW:     "lddw",
	OP_LDABS_W:  "ldabsw",
	OP_LDABS_H:  "ldabsh",
	OP_LDABS_B:  "ldabsb",
	OP_LDABS_DW: "ldabsdw",
	OP_LDIND_W:  "ldindw",
	OP_LDIND_H:  "ldindh",
	OP_LDIND_B:  "ldindb",
	OP_LDIND_DW: "ldinddw",
	OP_LDXW:     "ldxw",
	OP_LDXH:     "ldxh",
	OP_LDXB:     "ldxb",
	OP_LDXDW:    "ldxdw",

	OP_STW: "stw", OP_STH: "sth", OP_STB: "stb", OP_STDW: "stdw",
	OP_STXW: "stxw", OP_STXH: "stxh", OP_STXB: "stxb", OP_STXDW: "stxdw",

	OP_JA:       "ja",
	OP_JEQ_IMM:  "jeq",
	OP_JEQ_REG:  "jeq",
	OP_JGT_IMM:  "jgt",
	OP_JGT_REG:  "jgt",
	OP_JGE_IMM:  "jge",
	OP_JGE_REG:  "jge",
	OP_JSET_IMM: "jset",
	OP_JSET_REG: "jset",
	OP_JNE_IMM:  "jne",
	OP_JNE_REG:  "jne",
	OP_JSGT_IMM: "jsgt",
	OP_JSGT_REG: "jsgt",
	OP_JSGE_IMM: "jsge",
	OP_JSGE_REG: "jsge",
	OP_CALL:     "call",
	OP_EXIT:     "exit",
	OP_JLT_IMM:  "jlt",
	OP_JLT_REG:  "jlt",
	OP_JLE_IMM:  "jle",
	OP_JLE_REG:  "jle",
	OP_JSLT_IMM: "jslt",
	OP_JSLT_REG: "jslt",
	OP_JSLE_IMM: "jsle",
	OP_JSLE_REG: "jsle",
}
