package fctx

// LoongArch64 LP64D. A suspended context's register image covers s0–s8,
// fp and ra, plus fs0–fs7 for the floating-point half; the ABI requires
// 16-byte stack alignment.
const (
	stackAlign = 16

	MinStackSize     = 4 << 10
	DefaultStackSize = 128 << 10
)
