package fctx

// System V i386. A suspended context's register image covers EDI, ESI,
// EBX, EBP, the return EIP and the MXCSR/x87 control words; the modern
// i386 psABI also demands 16-byte stack alignment at call sites.
const (
	stackAlign = 16

	MinStackSize     = 4 << 10
	DefaultStackSize = 64 << 10
)
