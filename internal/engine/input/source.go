// Package input defines the logical triggers the scene reacts to and the
// per-tick snapshot they are read through.
package input

// Source captures one consistent trigger snapshot per tick.
type Source interface {
	// Update pumps window events. Returns true if the application should quit.
	Update() bool
	// Snapshot returns the trigger state captured by the last Update.
	Snapshot() Snapshot
}
