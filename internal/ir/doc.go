// Package ir implements the compiler's intermediate representation: a
// control-flow graph of basic blocks holding register-based instructions,
// together with the data-flow analyses (liveness, reaching definitions) and
// transformations (mem2reg, constant/copy propagation, peephole, dead-code
// elimination, block merging, two-address arch shaping) that lower a typed
// AST into a register-allocated, architecture-shaped instruction list.
//
// The design mirrors tetratelabs/wazero's internal/engine/wazevo/ssa
// package: instructions are nodes in a doubly-linked per-block list so that
// insertion and removal at an iterator are O(1), blocks carry non-owning
// predecessor/successor edges, and every optimization pass lives in its own
// pass_<name>.go file driven in a fixed order by RunPasses (see pass.go).
//
// Unlike wazevo/ssa, this IR is not SSA: registers may be redefined, and
// data-flow facts are recovered by explicit liveness and reaching-definition
// analyses rather than read off of def-use chains built at construction
// time.
package ir
