package fctx

// AAPCS64 (ARM64). A suspended context's register image covers x19–x30
// and d8–d15; the stack pointer must stay 16-byte aligned at all times,
// not just at call sites.
const (
	stackAlign = 16

	MinStackSize     = 4 << 10
	DefaultStackSize = 128 << 10
)
