package interfaces

import "io"

// StagingService stages upload bytes to a transient location on disk and
// guarantees their release. Staged files left behind by crashed requests are
// swept by a periodic janitor.
type StagingService interface {
	// Stage writes r to a unique file in the staging directory and returns
	// its path. The caller owns the file and must Release it.
	Stage(filename string, r io.Reader) (string, error)

	// Release removes a staged file. Removal failures are logged, never
	// propagated, so cleanup cannot mask a primary error.
	Release(path string)

	// SweepStale removes staged files older than the configured TTL and
	// returns how many were removed.
	SweepStale() int

	// Start begins the janitor schedule; Stop halts it.
	Start() error
	Stop()
}
