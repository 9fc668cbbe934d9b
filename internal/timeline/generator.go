package timeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/parleyapp/parley/internal/models"
)

const (
	individualHistory = 100
	groupHistory      = 10

	// Messages are dated in batches: batch k sits k calendar days in the
	// past, so seeded histories always span several date buckets.
	batchSize = 10
)

var seedPhrases = []string{
	"Sounds good, let's do that.",
	"Can you take a look when you get a chance?",
	"I'll be there in ten minutes.",
	"Did you see the update from this morning?",
	"Thanks, that really helped!",
	"Let's sync up tomorrow.",
	"Almost done on my end.",
	"Ha, that's a good one.",
	"I pushed the latest draft.",
	"Works for me.",
}

// Generator produces synthetic conversation histories. It is used once, at
// session bootstrap, to seed the store; the send path never goes through it.
// The random source and clock are injectable so tests stay deterministic.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Seed builds a plausible history for one entity, newest batch first.
// Individuals get a deeper history than groups. Direction is uniform per
// message; received group messages carry a sender drawn from the members.
func (g *Generator) Seed(e models.Entity) []models.Message {
	count := individualHistory
	if e.IsGroup() {
		count = groupHistory
	}

	now := g.now()
	messages := make([]models.Message, 0, count)
	for i := 0; i < count; i++ {
		daysAgo := i / batchSize
		date := now.AddDate(0, 0, -daysAgo)

		direction := models.Received
		if g.rng.Intn(2) == 0 {
			direction = models.Sent
		}

		msg := models.Message{
			Text:      seedPhrases[g.rng.Intn(len(seedPhrases))],
			Direction: direction,
			Timestamp: g.clockStamp(),
			Date:      date,
		}
		if e.IsGroup() && direction == models.Received {
			msg.Sender = e.Members[g.rng.Intn(len(e.Members))]
		}

		messages = append(messages, msg)
	}

	return messages
}

// clockStamp renders a random 12-hour wall-clock string. Display only; it
// never feeds grouping.
func (g *Generator) clockStamp() string {
	hour := g.rng.Intn(12) + 1
	minute := g.rng.Intn(60)
	meridiem := "AM"
	if g.rng.Intn(2) == 0 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, meridiem)
}
