package showcase

import "errors"

var (
	// ErrUnknownSection is returned for a section id that was never registered.
	ErrUnknownSection = errors.New("unknown section")

	// ErrSectionNotReady is returned while a section's timeline waits on an asset.
	ErrSectionNotReady = errors.New("section not ready")

	// ErrAssetUnavailable is returned for sections whose asset failed to load.
	ErrAssetUnavailable = errors.New("section asset unavailable")

	// ErrDuplicateSection is returned when a section id is registered twice.
	ErrDuplicateSection = errors.New("section already registered")

	// ErrFrameSkipped wraps the cause of a single failed frame.
	ErrFrameSkipped = errors.New("frame skipped")

	// ErrRenderHalted is returned while the render circuit breaker is open.
	ErrRenderHalted = errors.New("render halted")
)
