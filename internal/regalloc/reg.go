// Package regalloc implements the linear-scan register allocator of
// spec.md §4.11: expire, spill ("furthest-end wins"), or assign, scanning
// live intervals in start order.
//
// Grounded on wazevo/backend/regalloc for the narrow-interface shape that
// decouples the allocator from any particular IR (VReg/RealReg opaque ids,
// a RegSet bitset); the scanning algorithm itself is this spec's classic
// linear-scan, not the teacher's graph-coloring allocator (see DESIGN.md).
package regalloc

// VReg identifies a virtual register as seen by the allocator. Callers
// (internal/backend) map their own register identity onto this type.
type VReg uint32

// RealReg is the index of a machine register.
type RealReg int
