package worker

// dlq.go: dead letters
// Documents that could not be written after MaxAttempts are kept in memory
// for inspection and logged at error level.

import (
	"time"

	"github.com/rs/zerolog/log"
)

// maxDeadLetters bounds the in-memory list; the oldest entries go first.
const maxDeadLetters = 100

// DeadLetter describes a document the pool gave up on.
type DeadLetter struct {
	Name     string    `json:"name"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failedAt"`
	Attempts int       `json:"attempts"`
}

func (a *Archiver) bury(job Job, err error) {
	entry := DeadLetter{
		Name:     job.Name,
		Reason:   err.Error(),
		FailedAt: time.Now().UTC(),
		Attempts: job.Attempts,
	}

	a.mu.Lock()
	a.dead = append(a.dead, entry)
	if len(a.dead) > maxDeadLetters {
		a.dead = a.dead[len(a.dead)-maxDeadLetters:]
	}
	a.mu.Unlock()

	log.Error().
		Str("file", job.Name).
		Str("reason", entry.Reason).
		Int("attempts", job.Attempts).
		Msg("pdf archive: giving up, moved to dead letters")
}

// DeadLetters returns a copy of the documents that could not be archived.
func (a *Archiver) DeadLetters() []DeadLetter {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]DeadLetter, len(a.dead))
	copy(out, a.dead)
	return out
}
