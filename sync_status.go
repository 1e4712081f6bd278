package geom

import "fmt"

// SyncStatus tracks which copy of a dual-located vertex buffer is
// authoritative.
//
// A polygon's vertices can live in host memory, in a device mirror, or in
// both at once. The status answers one question before every access: is a
// copy needed first? Reads on the stale side trigger that copy lazily;
// redundant transfers never happen because SYNCED reads are free on both
// sides.
//
// The zero value is StatusHost: fresh data always starts on the host.
type SyncStatus uint8

// Coherence states.
const (
	// StatusHost means the host copy is current and any device mirror is
	// stale or absent. Construction and every host-side mutation lead here.
	StatusHost SyncStatus = iota

	// StatusGPU means the device mirror is current and the host copy is
	// stale. Device-side computation leads here.
	StatusGPU

	// StatusSynced means both copies are current and identical. Either
	// side may be read without a transfer. Explicit synchronization and
	// lazy read-triggered copies lead here.
	StatusSynced
)

// String returns the status name.
func (s SyncStatus) String() string {
	switch s {
	case StatusHost:
		return "host"
	case StatusGPU:
		return "gpu"
	case StatusSynced:
		return "synced"
	default:
		return fmt.Sprintf("SyncStatus(%d)", int(s))
	}
}
