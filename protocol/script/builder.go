package script

import "encoding/binary"

// Builder assembles a locking program instruction by instruction.
type Builder struct {
	program []byte
}

// NewBuilder returns an empty program builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddOp appends the single opcode op.
func (b *Builder) AddOp(op Op) *Builder {
	b.program = append(b.program, byte(op))
	return b
}

// AddData appends a push of data using the minimal encoding for its
// length.
func (b *Builder) AddData(data []byte) *Builder {
	b.program = append(b.program, PushDataBytes(data)...)
	return b
}

// AddRawBytes appends data verbatim, with no opcode wrapping.
func (b *Builder) AddRawBytes(data []byte) *Builder {
	b.program = append(b.program, data...)
	return b
}

// Build returns the assembled program.
func (b *Builder) Build() []byte {
	return b.program
}

// PushDataBytes returns the push instruction for in, choosing the
// shortest form that fits its length.
func PushDataBytes(in []byte) []byte {
	l := len(in)
	if l == 0 {
		return []byte{byte(OP_0)}
	}
	if l <= 75 {
		return append([]byte{byte(OP_DATA_1) + uint8(l) - 1}, in...)
	}
	if l < 1<<8 {
		return append([]byte{byte(OP_PUSHDATA1), uint8(l)}, in...)
	}
	if l < 1<<16 {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(l))
		return append([]byte{byte(OP_PUSHDATA2), b[0], b[1]}, in...)
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(l))
	return append([]byte{byte(OP_PUSHDATA4), b[0], b[1], b[2], b[3]}, in...)
}
