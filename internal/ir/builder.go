package ir

import "github.com/coord-e/ccc-sub000/internal/ops"

// Builder is a convenience wrapper over Function's edit primitives for
// constructing IR instruction-by-instruction, analogous to
// wazevo/ssa.Builder. It is mainly used by tests and by a future front-end
// lowering pass; the primitives on Function/IR remain the authoritative
// low-level API (spec.md §4.1).
type Builder struct {
	ir *IR
	f  *Function
}

// NewBuilder creates a fresh Function in ir and returns a Builder over it.
func NewBuilder(irc *IR, name string, params []Param) (*Builder, *Function) {
	f := irc.CreateFunction(name, params)
	return &Builder{ir: irc, f: f}, f
}

// Func returns the function being built.
func (b *Builder) Func() *Function { return b.f }

// NewBlock creates a new block with its LABEL instruction already emitted,
// satisfying the "first instruction is LABEL" invariant (spec.md §3).
func (b *Builder) NewBlock() *BasicBlock {
	blk := b.f.AppendBlock()
	b.f.AppendInstruction(blk, Label)
	return blk
}

// Imm emits `dest <- IMM v`.
func (b *Builder) Imm(blk *BasicBlock, dest Register, v int64) *Instruction {
	inst := b.f.AppendInstruction(blk, Imm)
	inst.SetDest(dest)
	inst.SetImm(v)
	return inst
}

// Mov emits `dest <- MOV src`.
func (b *Builder) Mov(blk *BasicBlock, dest, src Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Mov)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{src})
	return inst
}

// Bin emits `dest <- BIN lhs op rhs`.
func (b *Builder) Bin(blk *BasicBlock, dest Register, op ops.ArithOp, lhs, rhs Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Bin)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{lhs, rhs})
	inst.arith = op
	return inst
}

// BinImm emits `dest <- BIN_IMM lhs op imm`.
func (b *Builder) BinImm(blk *BasicBlock, dest Register, op ops.ArithOp, lhs Register, imm int64) *Instruction {
	inst := b.f.AppendInstruction(blk, BinImm)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{lhs})
	inst.arith = op
	inst.imm = imm
	return inst
}

// Una emits `dest <- UNA op src`.
func (b *Builder) Una(blk *BasicBlock, dest Register, op ops.UnaryOp, src Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Una)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{src})
	inst.unary = op
	return inst
}

// Cmp emits `dest <- CMP lhs op rhs`.
func (b *Builder) Cmp(blk *BasicBlock, dest Register, op ops.CompareOp, lhs, rhs Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Cmp)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{lhs, rhs})
	inst.cmp = op
	return inst
}

// CmpImm emits `dest <- CMP_IMM lhs op imm`.
func (b *Builder) CmpImm(blk *BasicBlock, dest Register, op ops.CompareOp, lhs Register, imm int64) *Instruction {
	inst := b.f.AppendInstruction(blk, CmpImm)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{lhs})
	inst.cmp = op
	inst.imm = imm
	return inst
}

// Jump emits an unconditional JUMP and connects blk -> target.
func (b *Builder) Jump(blk, target *BasicBlock) *Instruction {
	inst := b.f.AppendInstruction(blk, Jump)
	inst.jumpTarget = target
	b.f.Connect(blk, target)
	return inst
}

// Br emits `BR cond -> then, else` and connects blk to both targets.
func (b *Builder) Br(blk *BasicBlock, cond Register, then, els *BasicBlock) *Instruction {
	inst := b.f.AppendInstruction(blk, Br)
	inst.SetSrcs([]Register{cond})
	inst.thenBlock, inst.elseBlock = then, els
	b.f.Connect(blk, then)
	b.f.Connect(blk, els)
	return inst
}

// BrCmp emits `BR_CMP lhs op rhs -> then, else` and connects blk to both
// targets.
func (b *Builder) BrCmp(blk *BasicBlock, op ops.CompareOp, lhs, rhs Register, then, els *BasicBlock) *Instruction {
	inst := b.f.AppendInstruction(blk, BrCmp)
	inst.SetSrcs([]Register{lhs, rhs})
	inst.cmp = op
	inst.thenBlock, inst.elseBlock = then, els
	b.f.Connect(blk, then)
	b.f.Connect(blk, els)
	return inst
}

// BrCmpImm emits `BR_CMP_IMM lhs op imm -> then, else` and connects blk to
// both targets.
func (b *Builder) BrCmpImm(blk *BasicBlock, op ops.CompareOp, lhs Register, imm int64, then, els *BasicBlock) *Instruction {
	inst := b.f.AppendInstruction(blk, BrCmpImm)
	inst.SetSrcs([]Register{lhs})
	inst.cmp = op
	inst.imm = imm
	inst.thenBlock, inst.elseBlock = then, els
	b.f.Connect(blk, then)
	b.f.Connect(blk, els)
	return inst
}

// Ret emits a RET, optionally carrying one return value, and designates blk
// as the function's exit.
func (b *Builder) Ret(blk *BasicBlock, src *Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Ret)
	if src != nil {
		inst.SetSrcs([]Register{*src})
	}
	b.f.SetExit(blk)
	return inst
}

// Call emits `[dest <-] CALL name(args...)`.
func (b *Builder) Call(blk *BasicBlock, dest *Register, name string, args []Register) *Instruction {
	inst := b.f.AppendInstruction(blk, Call)
	if dest != nil {
		inst.SetDest(*dest)
	}
	inst.SetSrcs(args)
	inst.callName = name
	return inst
}

// Load emits `dest <- LOAD.size [addr]`.
func (b *Builder) Load(blk *BasicBlock, dest Register, addr Register, size Size) *Instruction {
	inst := b.f.AppendInstruction(blk, Load)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{addr})
	inst.size = size
	return inst
}

// Store emits `STORE.size [addr], src`.
func (b *Builder) Store(blk *BasicBlock, addr, src Register, size Size) *Instruction {
	inst := b.f.AppendInstruction(blk, Store)
	inst.SetSrcs([]Register{addr, src})
	inst.size = size
	return inst
}

// StackAddr emits `dest <- STACK_ADDR slot`.
func (b *Builder) StackAddr(blk *BasicBlock, dest Register, slot StackSlotID) *Instruction {
	inst := b.f.AppendInstruction(blk, StackAddr)
	inst.SetDest(dest)
	inst.slot = slot
	return inst
}

// Trunc emits `dest <- TRUNC.size src`.
func (b *Builder) Trunc(blk *BasicBlock, dest, src Register, size Size) *Instruction {
	inst := b.f.AppendInstruction(blk, Trunc)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{src})
	inst.size = size
	return inst
}

// Zext emits `dest <- ZEXT.size src`.
func (b *Builder) Zext(blk *BasicBlock, dest, src Register, size Size) *Instruction {
	inst := b.f.AppendInstruction(blk, Zext)
	inst.SetDest(dest)
	inst.SetSrcs([]Register{src})
	inst.size = size
	return inst
}
