package geom

// This file is the only place where polygon data crosses the host/device
// boundary. The two gates, syncForRead and syncForWrite, sit in front of
// every host access in polygon.go and keep the SyncStatus tag truthful;
// the device operations below drive the tag the other way.

// Status returns the polygon's coherence state: which copy of the vertex
// buffer is current. See SyncStatus for the transitions.
func (p *Polygon) Status() SyncStatus {
	return p.status
}

// Device returns the device the polygon is bound to: the explicitly
// attached one, or the process default when none is attached. Returns
// nil when neither exists.
func (p *Polygon) Device() Device {
	return p.boundDevice()
}

// AttachDevice binds the polygon to a specific device for device-side
// operations, overriding the process default. A current device copy is
// downloaded first and any existing mirror is released, so no data is
// lost. Passing nil detaches the polygon and returns it to the process
// default. Afterwards the host copy is authoritative.
func (p *Polygon) AttachDevice(d Device) {
	p.syncForRead()
	p.releaseMirror()
	p.dev = d
	p.status = StatusHost
}

// ReleaseDevice frees the polygon's device mirror, if any, downloading a
// current device copy first. The binding from AttachDevice is kept; only
// the mirror goes away. Call this before closing a device that still has
// polygons on it.
func (p *Polygon) ReleaseDevice() {
	p.syncForRead()
	p.releaseMirror()
	p.status = StatusHost
}

// Sync makes both copies of the vertex buffer current.
//
// From StatusHost it uploads to the device mirror, from StatusGPU it
// downloads to the host buffer, and from StatusSynced it does nothing.
// With no device bound or registered the host copy is the only copy,
// which is trivially coherent, so the tag still becomes StatusSynced.
func (p *Polygon) Sync() error {
	switch p.status {
	case StatusSynced:
		return nil

	case StatusGPU:
		if p.mirror != nil && p.mirror.Len() == len(p.vertices) {
			if err := p.mirror.Download(p.vertices); err != nil {
				return err
			}
		}
		p.status = StatusSynced
		Logger().Debug("geom: sync downloaded", "vertices", len(p.vertices))
		return nil

	default: // StatusHost
		dev := p.boundDevice()
		if dev == nil {
			p.status = StatusSynced
			return nil
		}
		if _, err := p.ensureMirror(dev); err != nil {
			return err
		}
		if p.mirror != nil {
			if err := p.mirror.Upload(p.vertices); err != nil {
				return err
			}
		}
		p.status = StatusSynced
		Logger().Debug("geom: sync uploaded", "device", dev.Name(), "vertices", len(p.vertices))
		return nil
	}
}

// TranslateDevice displaces every vertex by (dx, dy) on the bound device.
//
// A stale or missing mirror is uploaded first; the kernel then runs
// device-side and the device copy becomes the authoritative one
// (StatusGPU). The host buffer is not touched: a later host read
// downloads the result lazily. The device arithmetic wraps exactly like
// the host kernels, so the vertices seen after that download are
// bit-identical to what Translate would have produced.
//
// Returns ErrNoDevice when no device is bound or registered, and
// ErrFallbackToHost when the device declines the kernel; in both cases
// the polygon is unchanged and the caller can run Translate instead.
func (p *Polygon) TranslateDevice(dx, dy Coordinate) error {
	if len(p.vertices) == 0 {
		// Nothing to move; succeed without dispatching.
		return nil
	}
	dev := p.boundDevice()
	if dev == nil {
		return ErrNoDevice
	}
	fresh, err := p.ensureMirror(dev)
	if err != nil {
		return err
	}
	if fresh || p.status == StatusHost {
		if err := p.mirror.Upload(p.vertices); err != nil {
			return err
		}
	}
	if err := p.mirror.Translate(dx, dy); err != nil {
		return err
	}
	p.status = StatusGPU
	p.conv = ConvexityUnknown
	Logger().Debug("geom: device translate",
		"device", dev.Name(), "vertices", len(p.vertices), "dx", dx, "dy", dy)
	return nil
}

// syncForRead is the host-read gate. When the device copy is the current
// one it downloads into the host buffer first, after which both sides
// match (StatusSynced). In the other two states host data is already
// current and the gate is a single branch.
func (p *Polygon) syncForRead() {
	if p.status == StatusGPU {
		p.download()
	}
}

// syncForWrite is the host-write gate. It makes the host copy current the
// same way syncForRead does, then marks it authoritative (StatusHost) and
// drops the cached convexity. Every mutating operation passes through
// here before touching the buffer.
func (p *Polygon) syncForWrite() {
	if p.status == StatusGPU {
		p.download()
	}
	p.status = StatusHost
	p.conv = ConvexityUnknown
}

// download copies the device mirror into the host buffer and marks both
// sides current. Without a usable mirror the host copy is all there is,
// so the tag falls back to StatusHost. A failed transfer keeps the stale
// host data and is logged; the tag still falls back to StatusHost so the
// failure surfaces once, not on every subsequent read.
func (p *Polygon) download() {
	if p.mirror == nil || p.mirror.Len() != len(p.vertices) {
		p.status = StatusHost
		return
	}
	if err := p.mirror.Download(p.vertices); err != nil {
		Logger().Warn("geom: device download failed; host copy may be stale", "error", err)
		p.status = StatusHost
		return
	}
	p.status = StatusSynced
}

// ensureMirror makes the device mirror match the current vertex count and
// owning device, (re)allocating when needed. It reports whether a new
// mirror was allocated: a fresh mirror holds no data yet and must be
// uploaded before any device-side read. Zero-length polygons keep a nil
// mirror; devices do not allocate empty buffers.
func (p *Polygon) ensureMirror(dev Device) (fresh bool, err error) {
	n := len(p.vertices)
	if p.mirror != nil && p.mirrorDev == dev && p.mirror.Len() == n {
		return false, nil
	}
	p.releaseMirror()
	if n == 0 {
		return false, nil
	}
	buf, err := dev.CreateBuffer("polygon_vertices", n)
	if err != nil {
		return false, err
	}
	p.mirror = buf
	p.mirrorDev = dev
	return true, nil
}

// releaseMirror frees the device mirror without touching the host buffer
// or the tag. Callers decide what the tag becomes.
func (p *Polygon) releaseMirror() {
	if p.mirror != nil {
		p.mirror.Release()
		p.mirror = nil
		p.mirrorDev = nil
	}
}

// boundDevice resolves which device the polygon talks to: the explicitly
// attached one wins, otherwise the process default.
func (p *Polygon) boundDevice() Device {
	if p.dev != nil {
		return p.dev
	}
	return DefaultDevice()
}
