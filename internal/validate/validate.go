// Package validate checks command input against the boundary errors the
// CLI dispatcher is responsible for, before any of it reaches the
// repository core.
package validate

import "gitlet/internal/vcserr"

// CommitMessage rejects an empty commit message.
func CommitMessage(message string) error {
	if message == "" {
		return vcserr.ErrEmptyCommitMessage
	}
	return nil
}

// Operands rejects an operand count that doesn't match what a command
// expects.
func Operands(got, want int) error {
	if got != want {
		return vcserr.ErrIncorrectOperands
	}
	return nil
}

// BranchName rejects the one branch name this system cannot represent:
// empty.
func BranchName(name string) error {
	if name == "" {
		return vcserr.ErrIncorrectOperands
	}
	return nil
}
