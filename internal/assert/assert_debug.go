//go:build eqdebug

// Package assert reports API misuse such as processing before Prepare.
// Release builds ignore the check and let the caller fall back to a no-op;
// building with the eqdebug tag turns every failed check into a panic.
package assert

// Enabled reports whether failed checks panic.
const Enabled = true

// That panics with msg when cond is false.
func That(cond bool, msg string) bool {
	if !cond {
		panic("simple-eq: " + msg)
	}
	return true
}
