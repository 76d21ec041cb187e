package notify

import (
	"log"
	"time"
)

// RateLimited wraps a Sender and suppresses repeat sends of selected
// titles inside a cooldown window. Titles without a configured cooldown
// pass through untouched. A suppressed send is not an error.
type RateLimited struct {
	sender     Sender
	cooldowns  map[string]time.Duration
	lastSentAt map[string]time.Time
	now        func() time.Time
}

func NewRateLimited(sender Sender, cooldowns map[string]time.Duration) *RateLimited {
	return &RateLimited{
		sender:     sender,
		cooldowns:  cooldowns,
		lastSentAt: make(map[string]time.Time),
		now:        time.Now,
	}
}

func (r *RateLimited) Send(message, title string, priority int) error {
	if cooldown, limited := r.cooldowns[title]; limited {
		if last, sent := r.lastSentAt[title]; sent {
			elapsed := r.now().Sub(last)
			if elapsed < cooldown {
				remaining := cooldown - elapsed
				log.Printf("Skipping notification %q due to rate limit. Try again in %ds.",
					title, int(remaining.Seconds()))
				return nil
			}
		}
	}

	if err := r.sender.Send(message, title, priority); err != nil {
		return err
	}
	// Record send time only for successful, rate-limited titles
	if _, limited := r.cooldowns[title]; limited {
		r.lastSentAt[title] = r.now()
	}
	return nil
}
