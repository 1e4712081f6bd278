//go:build nogpu

package wgpu

// Built with the nogpu tag, this package registers nothing and the GPU
// code path does not exist. Device selection falls through to the soft
// backend.
