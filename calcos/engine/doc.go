// Package engine implements the four-function calculator state machine.
//
// The engine is a plain value: every action takes a State and returns the next
// State. There is no I/O and no shared state, so each widget instance simply
// owns its own State.
//
// Evaluation is strictly left to right. Pressing an operator while an
// operation is pending (and a new operand has been typed) resolves the pending
// operation first, so 2 + 3 × 4 yields 20.
//
// Numbers are float64. Division by zero is not trapped: the display shows
// Infinity, -Infinity or NaN, and later operations keep propagating it.
package engine
