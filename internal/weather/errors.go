package weather

import "errors"

// Fetch and parse failures. Each maps to exactly one persisted SyncStatus;
// a failed run records the status and stops, the next scheduled tick is the
// only retry.
var (
	ErrNetwork           = errors.New("network failure")
	ErrEmptyResponse     = errors.New("empty response body")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed forecast response")
	ErrLocationNotFound  = errors.New("location not found")
)

// StatusForError maps a fetch or parse failure to the sync status persisted
// for UI consumption.
func StatusForError(err error) SyncStatus {
	switch {
	case errors.Is(err, ErrLocationNotFound):
		return StatusInvalidLocation
	case errors.Is(err, ErrMalformedResponse):
		return StatusServerInvalid
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrServer):
		return StatusServerDown
	default:
		return StatusUnknown
	}
}
