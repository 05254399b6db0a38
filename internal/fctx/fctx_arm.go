package fctx

// AAPCS (ARM32). A suspended context's register image covers r4–r11 and
// lr, plus d8–d15 when floating-point state is carried across the switch;
// AAPCS requires 8-byte stack alignment at public interfaces.
const (
	stackAlign = 8

	MinStackSize     = 4 << 10
	DefaultStackSize = 64 << 10
)
