package ir

import "fmt"

// RegKind discriminates the role of a Register (spec.md §3).
type RegKind uint8

const (
	// Virtual registers are unbounded and exist before allocation.
	Virtual RegKind = iota
	// Physical registers name a specific machine register directly,
	// bypassing allocation (e.g. a register the front-end already pinned).
	Physical
	// Fixed registers are pinned by calling convention (e.g. argument or
	// return registers) and are reserved in the allocator's machine set
	// before scanning (spec.md §4.11); they also forbid propagation
	// substituting a different source in their place (spec.md §4.6).
	Fixed
)

func (k RegKind) String() string {
	switch k {
	case Virtual:
		return "virtual"
	case Physical:
		return "physical"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("RegKind(%d)", uint8(k))
	}
}

// Size is the width of a register or memory access.
type Size uint8

const (
	Byte Size = iota
	Word
	DWord
	QWord
)

// Bytes returns the width of s in bytes.
func (s Size) Bytes() int {
	switch s {
	case Byte:
		return 1
	case Word:
		return 2
	case DWord:
		return 4
	case QWord:
		return 8
	default:
		panic(fmt.Sprintf("ir: unknown Size %d", uint8(s)))
	}
}

func (s Size) String() string {
	switch s {
	case Byte:
		return "b"
	case Word:
		return "w"
	case DWord:
		return "d"
	case QWord:
		return "q"
	default:
		return fmt.Sprintf("Size(%d)", uint8(s))
	}
}

// SizeFromBytes returns the Size whose width is n bytes.
func SizeFromBytes(n int) Size {
	switch n {
	case 1:
		return Byte
	case 2:
		return Word
	case 4:
		return DWord
	case 8:
		return QWord
	default:
		panic(fmt.Sprintf("ir: no Size for %d bytes", n))
	}
}

// VRegID is the dense index of a virtual register, unique per Function.
type VRegID uint32

// PRegID is the index of a physical machine register once allocated.
type PRegID uint32

// PRegInvalid marks a Register that has not yet been assigned a physical
// register by the allocator.
const PRegInvalid PRegID = ^PRegID(0)

// Register is a virtual-or-physical operand (spec.md §3). Registers are
// value-like and freely copied; the per-register defining-instruction set
// (spec.md §3's "reg.definitions") is not carried on the value itself but
// looked up from the owning Function's registry by VirtualID, populated by
// the reaching-definitions pass (see Function.Definitions).
type Register struct {
	Kind      RegKind
	VirtualID VRegID // meaningful iff Kind == Virtual
	Physical  PRegID // PRegInvalid until the allocator assigns one
	Size      Size
	// Sticky forbids propagation substituting another source in place of
	// this register (spec.md §3); set on registers the front-end pins,
	// e.g. fixed ABI registers.
	Sticky bool
}

// Allocated reports whether a physical register has been assigned.
func (r Register) Allocated() bool {
	return r.Physical != PRegInvalid
}

// NewVirtual returns a fresh, unallocated virtual register of the given
// size.
func NewVirtual(id VRegID, size Size) Register {
	return Register{Kind: Virtual, VirtualID: id, Physical: PRegInvalid, Size: size}
}

// NewFixed returns a register pinned to a physical register by calling
// convention.
func NewFixed(p PRegID, size Size) Register {
	return Register{Kind: Fixed, Physical: p, Size: size, Sticky: true}
}

func (r Register) String() string {
	switch r.Kind {
	case Virtual:
		if r.Allocated() {
			return fmt.Sprintf("v%d{%d}", r.VirtualID, r.Physical)
		}
		return fmt.Sprintf("v%d", r.VirtualID)
	case Physical:
		return fmt.Sprintf("p%d", r.Physical)
	case Fixed:
		return fmt.Sprintf("fixed%d", r.Physical)
	default:
		return "<invalid reg>"
	}
}

// livenessKey returns a dense-ish integer identity for r, used to index
// liveness's gen/kill/in/out BitSets uniformly across virtual, physical and
// fixed registers. Virtual and non-virtual ids live in disjoint ranges so
// they never alias.
func livenessKey(r Register) int {
	switch r.Kind {
	case Virtual:
		return int(r.VirtualID)<<2 | 0
	case Physical:
		return int(r.Physical)<<2 | 1
	default: // Fixed
		return int(r.Physical)<<2 | 2
	}
}

// SameAs reports whether r and other name the same register (by virtual id
// for virtual registers, by physical id otherwise). It does not compare
// Size or Sticky.
func (r Register) SameAs(other Register) bool {
	if r.Kind != other.Kind {
		return false
	}
	if r.Kind == Virtual {
		return r.VirtualID == other.VirtualID
	}
	return r.Physical == other.Physical
}
