package fctx

// System V AMD64. A suspended context's register image covers RBX, RBP,
// R12–R15, the return RIP and the MXCSR/x87 control words; the calling
// convention requires 16-byte stack alignment at every call site.
const (
	stackAlign = 16

	MinStackSize     = 4 << 10
	DefaultStackSize = 128 << 10
)
