package ir

import "github.com/coord-e/ccc-sub000/internal/types"

// Param is a formal parameter of a Function.
type Param struct {
	Name string
	Type *types.Type
	Reg  Register
}

// Function owns a CFG of basic blocks, each owning an ordered instruction
// list (spec.md §3).
//
// Grounded on wazevo/ssa/builder.go's builder struct, which plays the same
// owning role for a single SSA function.
type Function struct {
	name     string
	params   []Param
	regCount int // number of virtual registers allocated so far
	nextInst int // next local instruction id to hand out

	blocks       []*BasicBlock // owned, in creation order
	sortedBlocks []*BasicBlock // output of the reorder pass (spec.md §4.2)
	entry, exit  *BasicBlock

	instrIndex      map[int]*Instruction // local id -> instruction, O(1) lookup
	instrByGlobalID map[int]*Instruction // global id -> instruction, O(1) lookup
	blockIndex      map[int]*BasicBlock  // local id -> block, O(1) lookup

	// regDefs holds, for each virtual register, the set of instruction
	// ids (global ids) that define it; populated by the
	// reaching-definitions pass (spec.md §4.4).
	regDefs map[VRegID]BitSet

	blockPool pool[BasicBlock]
	instrPool pool[Instruction]

	ir *IR // owning IR, for the global instruction counter

	// version is bumped by every structural edit (instruction/block
	// insert, remove, connect, disconnect); liveness/reach record the
	// version they were computed against so a stale read can be detected
	// (spec.md §9's "analysis payload invalidation" design note).
	version         int
	livenessVersion int
	reachVersion    int
}

func newFunction(ir *IR, name string, params []Param) *Function {
	f := &Function{
		name:            name,
		params:          params,
		instrIndex:      make(map[int]*Instruction),
		instrByGlobalID: make(map[int]*Instruction),
		blockIndex:      make(map[int]*BasicBlock),
		regDefs:         make(map[VRegID]BitSet),
		ir:              ir,
		livenessVersion: -1,
		reachVersion:    -1,
	}
	for _, p := range params {
		if p.Reg.Kind == Virtual && int(p.Reg.VirtualID)+1 > f.regCount {
			f.regCount = int(p.Reg.VirtualID) + 1
		}
	}
	return f
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Params returns the function's formal parameters.
func (f *Function) Params() []Param { return f.params }

// RegCount returns the number of virtual registers allocated so far.
func (f *Function) RegCount() int { return f.regCount }

// InstCount returns the number of live (non-removed) instructions.
func (f *Function) InstCount() int { return len(f.instrIndex) }

// Entry returns the function's entry block.
func (f *Function) Entry() *BasicBlock { return f.entry }

// Exit returns the function's exit block (the block ending in RET most
// recently designated as such; updated by block merging per spec.md §4.9).
func (f *Function) Exit() *BasicBlock { return f.exit }

// Blocks returns every block ever created for this function, including any
// since merged away (check BasicBlock.Valid). Most callers want
// SortedBlocks after the reorder pass has run.
func (f *Function) Blocks() []*BasicBlock { return f.blocks }

// SortedBlocks returns the blocks in the order produced by the most recent
// reorder pass (spec.md §4.2), or nil if it has not run yet.
func (f *Function) SortedBlocks() []*BasicBlock { return f.sortedBlocks }

// NewVirtualReg allocates a fresh virtual register of the given size.
func (f *Function) NewVirtualReg(size Size) Register {
	id := VRegID(f.regCount)
	f.regCount++
	return NewVirtual(id, size)
}

// Definitions returns the set of instruction global ids that define vreg,
// as last computed by the reaching-definitions pass.
func (f *Function) Definitions(vreg VRegID) BitSet {
	return f.regDefs[vreg]
}

// SetDefinitions replaces the definition set for vreg.
func (f *Function) SetDefinitions(vreg VRegID, defs BitSet) {
	f.regDefs[vreg] = defs
}

// InstructionByLocalID returns the instruction with the given per-function
// local id in O(1), or nil if none exists (e.g. it was removed).
func (f *Function) InstructionByLocalID(id int) *Instruction {
	return f.instrIndex[id]
}

// InstructionByGlobalID returns the instruction with the given global id in
// O(1), or nil if none exists. Used by propagation to resolve the ids stored
// in reach sets and Function.Definitions back to their defining instruction.
func (f *Function) InstructionByGlobalID(id int) *Instruction {
	return f.instrByGlobalID[id]
}

// BlockByLocalID returns the block with the given per-function local id in
// O(1), valid only after the reorder pass has run.
func (f *Function) BlockByLocalID(id int) *BasicBlock {
	return f.blockIndex[id]
}

// AppendBlock creates a new, empty basic block owned by f and appends it to
// f.Blocks(). The caller must still emit the block's LABEL (via
// AppendInstruction with opcode Label) and a terminator before the function
// is considered well-formed (spec.md §4.1).
func (f *Function) AppendBlock() *BasicBlock {
	b := f.blockPool.allocate()
	b.globalID = f.ir.newGlobalID()
	b.function = f
	b.valid = true
	f.blocks = append(f.blocks, b)
	if f.entry == nil {
		f.entry = b
	}
	return b
}

// newInstruction allocates a fresh instruction owned by block b, with a new
// local id from f and a new global id from f.ir. It is not yet linked into
// b's instruction list; callers append or insert it explicitly.
func (f *Function) newInstruction(b *BasicBlock, op Opcode) *Instruction {
	inst := f.instrPool.allocate()
	inst.opcode = op
	inst.block = b
	inst.localID = f.nextInst
	f.nextInst++
	inst.globalID = f.ir.newGlobalID()
	f.instrIndex[inst.localID] = inst
	f.instrByGlobalID[inst.globalID] = inst
	return inst
}

// bumpVersion records that a structural edit happened, invalidating any
// analysis payload computed against a prior version.
func (f *Function) bumpVersion() { f.version++ }

// LivenessFresh reports whether the liveness analysis payload was computed
// against the current version of f.
func (f *Function) LivenessFresh() bool { return f.livenessVersion == f.version }

// ReachFresh reports whether the reaching-definitions analysis payload was
// computed against the current version of f.
func (f *Function) ReachFresh() bool { return f.reachVersion == f.version }

func (f *Function) markLivenessFresh() { f.livenessVersion = f.version }
func (f *Function) markReachFresh()    { f.reachVersion = f.version }

// shareGlobalID overrides an instruction's global id to match another
// value, used only when constructing a block's LABEL, which by invariant
// shares its global id with the block itself (spec.md §3).
func (inst *Instruction) shareGlobalID(id int) { inst.globalID = id }
