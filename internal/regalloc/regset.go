package regalloc

// RegSet represents a set of up to 64 machine registers, used by the
// allocator to track which RealRegs are currently free.
//
// Grounded on wazevo/backend/regalloc/regset.go's RegSet.
type RegSet uint64

// NewRegSet returns a RegSet containing exactly regs.
func NewRegSet(regs ...RealReg) RegSet {
	var rs RegSet
	for _, r := range regs {
		rs = rs.add(r)
	}
	return rs
}

func (rs RegSet) add(r RealReg) RegSet {
	if r < 0 || r >= 64 {
		return rs
	}
	return rs | 1<<uint(r)
}

func (rs RegSet) remove(r RealReg) RegSet {
	if r < 0 || r >= 64 {
		return rs
	}
	return rs &^ (1 << uint(r))
}

// has reports whether r is a member of rs.
func (rs RegSet) has(r RealReg) bool {
	return r >= 0 && r < 64 && rs&(1<<uint(r)) != 0
}

// first returns the lowest-numbered member of rs, if any.
func (rs RegSet) first() (RealReg, bool) {
	for i := RealReg(0); i < 64; i++ {
		if rs.has(i) {
			return i, true
		}
	}
	return 0, false
}

// Range calls f for every member of rs in ascending order.
func (rs RegSet) Range(f func(RealReg)) {
	for i := RealReg(0); i < 64; i++ {
		if rs.has(i) {
			f(i)
		}
	}
}
