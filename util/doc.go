// Package util holds small helpers shared across packages: human-readable
// sizes, secret masking and reading credentials from the environment.
package util
