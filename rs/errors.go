package rs

import "errors"

// Sentinel errors returned by Codec's decode operations. All are safe to
// compare with errors.Is; none wrap a lower-level cause since the codec
// never retries or recovers internally.
var (
	// ErrInvalidConfig reports a Codec constructed with an invalid
	// data/ecc combination (negative data, non-positive ecc, or a block
	// length that exceeds the field's order).
	ErrInvalidConfig = errors.New("rs: invalid data/ecc configuration")

	// ErrInvalidBufferLength reports a buffer whose length falls outside
	// [ecc+1, block].
	ErrInvalidBufferLength = errors.New("rs: buffer length outside [ecc+1, block]")

	// ErrInvalidErasurePosition reports an erasure position outside
	// [0, len(buf)).
	ErrInvalidErasurePosition = errors.New("rs: erasure position out of range")

	// ErrDuplicateErasure reports the same position listed twice in a
	// call's erasure positions.
	ErrDuplicateErasure = errors.New("rs: duplicate erasure position")

	// ErrTooManyErasures reports more erasure positions than the codec's
	// parity budget can guarantee recovering (count > ecc).
	ErrTooManyErasures = errors.New("rs: more erasures than ecc symbols")

	// ErrTooManyErrors reports an error locator of degree higher than
	// ecc/2, or a Chien search that fails to find as many roots as the
	// locator's degree promised -- both indicate uncorrectable damage.
	ErrTooManyErrors = errors.New("rs: more errors than the codec can correct")

	// ErrInconsistentResult reports a correction that was computed but
	// failed its own post-correction syndrome check, or a Forney
	// evaluation that hit a zero denominator. The buffer may have been
	// partially modified and should be treated as lost.
	ErrInconsistentResult = errors.New("rs: correction did not clear the syndromes")
)
