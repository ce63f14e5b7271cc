package chat

import "time"

// Config holds the resolver knobs. It is derived once from the process
// configuration and never changes afterwards.
type Config struct {
	RemoteEnabled bool
	Model         string
	Temperature   float32
	MaxTokens     int
	// Timeout bounds a single remote completion; zero leaves only the
	// transport timeout in place.
	Timeout time.Duration
	// Persona opens the system message, Guidelines closes it; the knowledge
	// prompt block sits between them.
	Persona    string
	Guidelines string
	// StatsLimit caps the analytics listing.
	StatsLimit int
}
