// Package presence tracks which operators are currently connected, fed by
// ephemeral heartbeats. Presence carries no scoring authority; losing it
// never affects the log or the snapshot.
package presence

import (
	"sort"
	"sync"
	"time"
)

// Tracker is an in-memory TTL map of recently seen admins per tournament.
type Tracker struct {
	mu  sync.Mutex
	ttl time.Duration
	// seen[tournamentID][adminID] = last heartbeat time
	seen map[string]map[string]time.Time
}

// NewTracker creates a Tracker that forgets admins after ttl without a
// heartbeat.
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		ttl:  ttl,
		seen: make(map[string]map[string]time.Time),
	}
}

// Heartbeat records that an admin was seen at the given time.
func (t *Tracker) Heartbeat(tournamentID, adminID string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	admins, ok := t.seen[tournamentID]
	if !ok {
		admins = make(map[string]time.Time)
		t.seen[tournamentID] = admins
	}
	if existing, ok := admins[adminID]; !ok || at.After(existing) {
		admins[adminID] = at
	}
}

// Active returns the admins seen within the TTL as of now, sorted by ID.
// Expired entries are pruned on the way out.
func (t *Tracker) Active(tournamentID string, now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	admins := t.seen[tournamentID]
	cutoff := now.Add(-t.ttl)

	active := make([]string, 0, len(admins))
	for id, last := range admins {
		if last.Before(cutoff) {
			delete(admins, id)
			continue
		}
		active = append(active, id)
	}
	sort.Strings(active)
	return active
}
