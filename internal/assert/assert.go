//go:build !eqdebug

// Package assert reports API misuse such as processing before Prepare.
// Release builds ignore the check and let the caller fall back to a no-op;
// building with the eqdebug tag turns every failed check into a panic.
package assert

// Enabled reports whether failed checks panic.
const Enabled = false

// That returns cond. msg is only used by eqdebug builds.
func That(cond bool, msg string) bool {
	return cond
}
