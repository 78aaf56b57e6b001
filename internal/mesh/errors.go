package mesh

import "errors"

// Configuration errors. Returned by New and the setters; the engine keeps
// its previous state.
var (
	ErrOutOfRange  = errors.New("mesh: parameter out of range")
	ErrSpeedOrder  = errors.New("mesh: minimum speed exceeds maximum speed")
	ErrInvalidHole = errors.New("mesh: invalid hole polygon")
	ErrHoleOutside = errors.New("mesh: hole orbit leaves the canvas")
)

// Degradations. Reported through State.Warnings and logged at warn level;
// the engine keeps running.
var (
	ErrTooFewVertices    = errors.New("mesh: fewer than 3 vertices")
	ErrTriangulation     = errors.New("mesh: triangulation failed")
	ErrSamplingExhausted = errors.New("mesh: no free space for interior point")
	ErrDisconnected      = errors.New("mesh: vertices left out of every triangle")
)
