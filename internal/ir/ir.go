package ir

// IR is the top-level container: an ordered list of functions sharing one
// global instruction/block id counter (spec.md §3).
//
// Grounded on wazevo/ssa/builder.go's global nextValueID counter, modeled
// as a field on the owning record per spec.md §9's "global mutable
// counters" design note.
type IR struct {
	functions    []*Function
	nextGlobalID int
}

// New returns an empty IR.
func New() *IR {
	return &IR{}
}

func (ir *IR) newGlobalID() int {
	id := ir.nextGlobalID
	ir.nextGlobalID++
	return id
}

// Functions returns every function in creation order.
func (ir *IR) Functions() []*Function { return ir.functions }

// CreateFunction creates and appends a new, empty Function to ir.
func (ir *IR) CreateFunction(name string, params []Param) *Function {
	f := newFunction(ir, name, params)
	ir.functions = append(ir.functions, f)
	return f
}

// AppendInstruction creates a new instruction with the given opcode at the
// tail of b and returns it. Every edit that inserts an instruction
// allocates new local and global ids from the owning function and IR
// counters (spec.md §4.1).
func (f *Function) AppendInstruction(b *BasicBlock, op Opcode) *Instruction {
	inst := f.newInstruction(b, op)
	if op == Label {
		delete(f.instrByGlobalID, inst.globalID)
		inst.shareGlobalID(b.globalID)
		f.instrByGlobalID[inst.globalID] = inst
	}
	linkTail(b, inst)
	f.bumpVersion()
	return inst
}

// InsertBefore creates a new instruction with the given opcode immediately
// before at, within at's block, and returns it.
func (f *Function) InsertBefore(at *Instruction, op Opcode) *Instruction {
	b := at.block
	inst := f.newInstruction(b, op)
	linkBefore(b, at, inst)
	f.bumpVersion()
	return inst
}

// Remove unlinks inst from its block's instruction list, removes it from
// the per-function index, and releases its analysis payload (spec.md
// §4.1). It is the caller's responsibility to ensure inst is not a stale
// jump target of any other instruction.
func (f *Function) Remove(inst *Instruction) {
	b := inst.block
	if inst.prev != nil {
		inst.prev.next = inst.next
	} else {
		b.root = inst.next
	}
	if inst.next != nil {
		inst.next.prev = inst.prev
	} else {
		b.tail = inst.prev
	}
	b.count--
	delete(f.instrIndex, inst.localID)
	delete(f.instrByGlobalID, inst.globalID)
	inst.prev, inst.next, inst.block = nil, nil, nil
	inst.liveIn, inst.liveOut, inst.reachIn, inst.reachOut = BitSet{}, BitSet{}, BitSet{}, BitSet{}
	f.bumpVersion()
}

// Connect adds a control-flow edge from a to b (spec.md §4.1).
func (f *Function) Connect(a, b *BasicBlock) {
	connect(a, b)
	f.bumpVersion()
}

// Disconnect removes the control-flow edge from a to b, if present (spec.md
// §4.1).
func (f *Function) Disconnect(a, b *BasicBlock) {
	disconnect(a, b)
	f.bumpVersion()
}

// SetExit designates b as the function's exit block, used by block merging
// when the merged-away block was the prior exit (spec.md §4.9).
func (f *Function) SetExit(b *BasicBlock) { f.exit = b }

// FreeBlock marks a block invalid and detaches it from the function's block
// list, used by block merging after its instructions have been transferred
// to a surviving predecessor (spec.md §4.9).
func (f *Function) FreeBlock(b *BasicBlock) {
	b.valid = false
	for idx, blk := range f.blocks {
		if blk == b {
			f.blocks = append(f.blocks[:idx], f.blocks[idx+1:]...)
			break
		}
	}
	delete(f.blockIndex, b.localID)
	f.bumpVersion()
}

func linkTail(b *BasicBlock, inst *Instruction) {
	if b.tail == nil {
		b.root, b.tail = inst, inst
	} else {
		b.tail.next = inst
		inst.prev = b.tail
		b.tail = inst
	}
	b.count++
}

func linkBefore(b *BasicBlock, at, inst *Instruction) {
	inst.next = at
	inst.prev = at.prev
	if at.prev != nil {
		at.prev.next = inst
	} else {
		b.root = inst
	}
	at.prev = inst
	b.count++
}
