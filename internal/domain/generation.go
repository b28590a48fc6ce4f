package domain

import (
	"time"

	"github.com/google/uuid"
)

// Generation is one unit of AI-produced content (a quiz, flashcard set or
// essay set) owned by one account. Each kind is stored in its own topic table.
type Generation struct {
	ID        uuid.UUID
	Kind      GenerationKind
	UserID    uuid.UUID
	Title     string
	SourceURL *string
	CreatedAt time.Time
}

// GenerationCounts holds per-kind generation counts inside a window.
type GenerationCounts map[GenerationKind]int

// Total sums the counts across kinds.
func (c GenerationCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
