package ebpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	code := []byte{
		0xb7, 0x02, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, // mov r2, 5
		0x0f, 0x21, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // add r1, r2
		0x15, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, // jeq r1, 0, +1
		0xbf, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // mov r0, r1
		0x95, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // exit
	}
	prog, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, prog, 5)

	assert.Equal(t, Mov64Imm(2, 5), prog[0])
	assert.Equal(t, Add64Reg(1, 2), prog[1])
	assert.Equal(t, JumpEqImm(1, 0, 1), prog[2])
	assert.Equal(t, Mov64Reg(0, 1), prog[3])
	assert.Equal(t, Exit(), prog[4])
}

func TestDecodeNegativeOffset(t *testing.T) {
	code := Instruction{Opcode: OP_JA, Offset: -1}.Encode()
	code = append(code, Exit().Encode()...)
	prog, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, int16(-1), prog[0].Offset)
}

func TestDecodeLddwPair(t *testing.T) {
	pair := LoadDoubleImm(1, 0x1122334455667788)
	code := append(pair[0].Encode(), pair[1].Encode()...)
	code = append(code, Exit().Encode()...)
	prog, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, prog, 3)
	assert.Equal(t, uint8(OP_LDDW), prog[0].Opcode)
	assert.Equal(t, int32(0x55667788), prog[0].Imm)
	assert.Equal(t, uint8(0), prog[1].Opcode)
	assert.Equal(t, int32(0x11223344), prog[1].Imm)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		code []byte
	}{
		{"empty", nil},
		{"ragged", make([]byte, 12)},
		{"truncated lddw", Instruction{Opcode: OP_LDDW, Dst: 1}.Encode()},
		{"bad dst register", []byte{0xb7, 0x0b, 0, 0, 0, 0, 0, 0}},
		{"bad src register", []byte{0x0f, 0xb0, 0, 0, 0, 0, 0, 0}},
		{"too long", make([]byte, (MaxInsts+1)*InstSize)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.code)
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	prog := Program{
		Mov64Imm(2, -5),
		Xor64Reg(3, 3),
		JumpEqReg(2, 3, -2),
		StoreXDoubleWord(R10, 2, -8),
		Call(6),
		Exit(),
	}
	decoded, err := Decode(prog.Encode())
	require.NoError(t, err)
	assert.Equal(t, prog, decoded)
}
