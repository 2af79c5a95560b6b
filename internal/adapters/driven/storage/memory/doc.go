// Package memory provides in-memory implementations of driven port interfaces.
// Nothing is persisted; the stores are used when no home directory is
// available and in tests.
package memory
