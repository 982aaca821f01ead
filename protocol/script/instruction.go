package script

import (
	"encoding/binary"

	"github.com/tokenizando/covenant/errors"
)

// ErrShortProgram is returned when a program ends in the middle of an
// instruction.
var ErrShortProgram = errors.New("program terminates early")

// Instruction is one parsed opcode together with the data it pushes.
type Instruction struct {
	Op   Op
	Len  uint32
	Data []byte
}

// IsPushdata tells whether the instruction pushes data on its own.
func (inst *Instruction) IsPushdata() bool {
	return inst.Op <= OP_16 && inst.Op != OP_1NEGATE
}

// ParseProgram parses prog into its instruction sequence.
func ParseProgram(prog []byte) ([]Instruction, error) {
	var result []Instruction
	for pc := uint32(0); pc < uint32(len(prog)); {
		inst, err := ParseOp(prog, pc)
		if err != nil {
			return nil, err
		}
		result = append(result, inst)
		pc += inst.Len
	}
	return result, nil
}

// ParseOp parses the instruction at offset pc of prog.
func ParseOp(prog []byte, pc uint32) (inst Instruction, err error) {
	l := uint32(len(prog))
	if pc >= l {
		return inst, ErrShortProgram
	}

	opcode := Op(prog[pc])
	inst.Op = opcode
	inst.Len = 1

	if opcode >= OP_1 && opcode <= OP_16 {
		inst.Data = []byte{uint8(opcode-OP_1) + 1}
		return inst, nil
	}

	if opcode >= OP_DATA_1 && opcode <= OP_DATA_75 {
		inst.Len += uint32(opcode) - uint32(OP_DATA_1) + 1
		end := uint64(pc) + uint64(inst.Len)
		if end > uint64(l) {
			return inst, ErrShortProgram
		}
		inst.Data = prog[pc+1 : end]
		return inst, nil
	}

	switch opcode {
	case OP_PUSHDATA1:
		if pc == l-1 {
			return inst, ErrShortProgram
		}
		n := uint64(prog[pc+1])
		inst.Len += 1 + uint32(n)
		end := uint64(pc) + 2 + n
		if end > uint64(l) {
			return inst, ErrShortProgram
		}
		inst.Data = prog[pc+2 : end]

	case OP_PUSHDATA2:
		if uint64(pc)+3 > uint64(l) {
			return inst, ErrShortProgram
		}
		n := uint64(binary.LittleEndian.Uint16(prog[pc+1 : pc+3]))
		inst.Len += 2 + uint32(n)
		end := uint64(pc) + 3 + n
		if end > uint64(l) {
			return inst, ErrShortProgram
		}
		inst.Data = prog[pc+3 : end]

	case OP_PUSHDATA4:
		if uint64(pc)+5 > uint64(l) {
			return inst, ErrShortProgram
		}
		n := uint64(binary.LittleEndian.Uint32(prog[pc+1 : pc+5]))
		inst.Len += 4 + uint32(n)
		end := uint64(pc) + 5 + n
		if end > uint64(l) {
			return inst, ErrShortProgram
		}
		inst.Data = prog[pc+5 : end]
	}

	return inst, nil
}
