package ir

import (
	"fmt"
	"strings"

	"github.com/coord-e/ccc-sub000/internal/ops"
)

// Opcode identifies the operation an Instruction performs (spec.md §3).
type Opcode uint8

const (
	Mov Opcode = iota
	Imm
	Bin
	BinImm
	Una
	Cmp
	CmpImm
	Br
	BrCmp
	BrCmpImm
	Jump
	Label
	Ret
	Call
	Load
	Store
	StackAddr
	Trunc
	Zext
)

func (op Opcode) String() string {
	switch op {
	case Mov:
		return "MOV"
	case Imm:
		return "IMM"
	case Bin:
		return "BIN"
	case BinImm:
		return "BIN_IMM"
	case Una:
		return "UNA"
	case Cmp:
		return "CMP"
	case CmpImm:
		return "CMP_IMM"
	case Br:
		return "BR"
	case BrCmp:
		return "BR_CMP"
	case BrCmpImm:
		return "BR_CMP_IMM"
	case Jump:
		return "JUMP"
	case Label:
		return "LABEL"
	case Ret:
		return "RET"
	case Call:
		return "CALL"
	case Load:
		return "LOAD"
	case Store:
		return "STORE"
	case StackAddr:
		return "STACK_ADDR"
	case Trunc:
		return "TRUNC"
	case Zext:
		return "ZEXT"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(op))
	}
}

// IsTerminator reports whether op may only appear as a block's last
// instruction (spec.md §3's terminator-discipline invariant).
func (op Opcode) IsTerminator() bool {
	switch op {
	case Jump, Br, BrCmp, BrCmpImm, Ret:
		return true
	default:
		return false
	}
}

// StackSlotID names a stack slot referenced by STACK_ADDR/LOAD/STORE before
// mem2reg rewrites whole-slot accesses away.
type StackSlotID uint32

// Instruction is a single operation in a BasicBlock: a local id (dense per
// Function), a global id (dense per IR), an opcode, an optional destination
// register, ordered source-register operands, and opcode-specific fields.
// Instructions form a doubly-linked list within their owning block so that
// insertion and removal at an iterator are O(1) (spec.md §4.1).
//
// Grounded on wazevo/ssa/instructions.go's flattened Instruction struct.
type Instruction struct {
	localID  int
	globalID int

	opcode Opcode

	hasDest bool
	dest    Register
	srcs    []Register

	imm   int64       // Imm, BinImm, CmpImm, BrCmpImm
	slot  StackSlotID // StackAddr
	size  Size        // Load, Store, Trunc, Zext
	arith ops.ArithOp // Bin, BinImm
	unary ops.UnaryOp // Una
	cmp   ops.CompareOp

	jumpTarget *BasicBlock // Jump
	thenBlock  *BasicBlock // Br, BrCmp, BrCmpImm
	elseBlock  *BasicBlock // Br, BrCmp, BrCmpImm

	callName string // Call

	block      *BasicBlock
	prev, next *Instruction

	// Analysis payload (spec.md §3), invalidated implicitly whenever the
	// IR changes; see Function's version token (function.go) for how
	// stale reads are detected.
	liveIn, liveOut   BitSet
	reachIn, reachOut BitSet
}

// LocalID returns the per-function dense id assigned by the reorder pass.
func (i *Instruction) LocalID() int { return i.localID }

// GlobalID returns the per-IR dense id assigned once at construction.
func (i *Instruction) GlobalID() int { return i.globalID }

// Opcode returns the instruction's opcode.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// Block returns the owning block.
func (i *Instruction) Block() *BasicBlock { return i.block }

// Next returns the next instruction in the owning block, or nil at the tail.
func (i *Instruction) Next() *Instruction { return i.next }

// Prev returns the previous instruction in the owning block, or nil at the
// head.
func (i *Instruction) Prev() *Instruction { return i.prev }

// Dest returns the destination register and whether the instruction has
// one.
func (i *Instruction) Dest() (Register, bool) { return i.dest, i.hasDest }

// SetDest assigns the destination register.
func (i *Instruction) SetDest(r Register) {
	i.hasDest = true
	i.dest = r
}

// ClearDest drops the destination, used by DCE to keep a CALL's side
// effects while discarding its unused result (spec.md §4.8).
func (i *Instruction) ClearDest() {
	i.hasDest = false
	i.dest = Register{}
}

// Srcs returns the ordered source-register operands.
func (i *Instruction) Srcs() []Register { return i.srcs }

// SetSrcs replaces the source operands.
func (i *Instruction) SetSrcs(srcs []Register) { i.srcs = srcs }

// ReplaceSrc substitutes the operand at index idx.
func (i *Instruction) ReplaceSrc(idx int, r Register) { i.srcs[idx] = r }

// Imm returns the immediate operand of Imm/BinImm/CmpImm/BrCmpImm.
func (i *Instruction) Imm() int64 { return i.imm }

// SetImm sets the immediate operand.
func (i *Instruction) SetImm(v int64) { i.imm = v }

// Slot returns the stack slot referenced by a StackAddr instruction.
func (i *Instruction) Slot() StackSlotID { return i.slot }

// DataSize returns the data size of a Load/Store/Trunc/Zext instruction.
func (i *Instruction) DataSize() Size { return i.size }

// ArithOp returns the arithmetic operator of a Bin/BinImm instruction.
func (i *Instruction) ArithOp() ops.ArithOp { return i.arith }

// UnaryOp returns the unary operator of a Una instruction.
func (i *Instruction) UnaryOp() ops.UnaryOp { return i.unary }

// CompareOp returns the comparison predicate of a
// Cmp/CmpImm/BrCmp/BrCmpImm instruction.
func (i *Instruction) CompareOp() ops.CompareOp { return i.cmp }

// SetCompareOp sets the comparison predicate, used when propagation fuses a
// CMP into a BR_CMP (spec.md §4.6).
func (i *Instruction) SetCompareOp(op ops.CompareOp) { i.cmp = op }

// JumpTarget returns the target of a Jump instruction.
func (i *Instruction) JumpTarget() *BasicBlock { return i.jumpTarget }

// SetJumpTarget sets the target of a Jump instruction, used by branch
// folding (spec.md §4.6).
func (i *Instruction) SetJumpTarget(b *BasicBlock) { i.jumpTarget = b }

// ThenElse returns the then/else targets of a conditional branch.
func (i *Instruction) ThenElse() (then, els *BasicBlock) { return i.thenBlock, i.elseBlock }

// SetThenElse sets the then/else targets of a conditional branch.
func (i *Instruction) SetThenElse(then, els *BasicBlock) {
	i.thenBlock, i.elseBlock = then, els
}

// CallName returns the callee name of a Call instruction.
func (i *Instruction) CallName() string { return i.callName }

// LiveIn, LiveOut, ReachIn, ReachOut expose the analysis payload.
func (i *Instruction) LiveIn() BitSet   { return i.liveIn }
func (i *Instruction) LiveOut() BitSet  { return i.liveOut }
func (i *Instruction) ReachIn() BitSet  { return i.reachIn }
func (i *Instruction) ReachOut() BitSet { return i.reachOut }

func (i *Instruction) setOpcode(op Opcode) { i.opcode = op }

// String formats the instruction for debugging, analogous to
// wazevo/ssa.Instruction.String / FormatHeader.
func (i *Instruction) String() string {
	var b strings.Builder
	if i.hasDest {
		fmt.Fprintf(&b, "%s <- ", i.dest)
	}
	b.WriteString(i.opcode.String())
	switch i.opcode {
	case Imm:
		fmt.Fprintf(&b, " %d", i.imm)
	case Bin:
		fmt.Fprintf(&b, ".%s %s, %s", i.arith, i.srcs[0], i.srcs[1])
	case BinImm:
		fmt.Fprintf(&b, ".%s %s, %d", i.arith, i.srcs[0], i.imm)
	case Una:
		fmt.Fprintf(&b, ".%s %s", i.unary, i.srcs[0])
	case Cmp:
		fmt.Fprintf(&b, ".%s %s, %s", i.cmp, i.srcs[0], i.srcs[1])
	case CmpImm:
		fmt.Fprintf(&b, ".%s %s, %d", i.cmp, i.srcs[0], i.imm)
	case Mov, Trunc, Zext:
		fmt.Fprintf(&b, " %s", i.srcs[0])
	case Br:
		fmt.Fprintf(&b, " %s -> %s, %s", i.srcs[0], i.thenBlock.Name(), i.elseBlock.Name())
	case BrCmp:
		fmt.Fprintf(&b, ".%s %s, %s -> %s, %s", i.cmp, i.srcs[0], i.srcs[1], i.thenBlock.Name(), i.elseBlock.Name())
	case BrCmpImm:
		fmt.Fprintf(&b, ".%s %s, %d -> %s, %s", i.cmp, i.srcs[0], i.imm, i.thenBlock.Name(), i.elseBlock.Name())
	case Jump:
		fmt.Fprintf(&b, " %s", i.jumpTarget.Name())
	case Label:
		fmt.Fprintf(&b, " %s", i.block.Name())
	case Call:
		fmt.Fprintf(&b, " %s(%s)", i.callName, formatRegs(i.srcs))
	case Load:
		fmt.Fprintf(&b, ".%s [%s]", i.size, i.srcs[0])
	case Store:
		fmt.Fprintf(&b, ".%s [%s], %s", i.size, i.srcs[0], i.srcs[1])
	case StackAddr:
		fmt.Fprintf(&b, " slot%d", i.slot)
	case Ret:
		if len(i.srcs) > 0 {
			fmt.Fprintf(&b, " %s", i.srcs[0])
		}
	}
	return b.String()
}

func formatRegs(rs []Register) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
