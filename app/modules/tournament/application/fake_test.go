package tournamentservice

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
)

// FakeRepository is an in-memory Repository. Individual methods can be
// overridden per test via the Func fields; unset methods fall back to the
// in-memory store.
type FakeRepository struct {
	mu          sync.Mutex
	tournaments map[string]tournamenttypes.Tournament
	events      []tournamenttypes.Event
	nextID      int64
	clock       time.Time

	GetTournamentFunc       func(ctx context.Context, id string) (*tournamenttypes.Tournament, error)
	AppendEventFunc         func(ctx context.Context, evt *tournamenttypes.Event) (*tournamenttypes.Event, error)
	RetractLastEligibleFunc func(ctx context.Context, tournamentID string) (*tournamenttypes.Event, error)
}

var _ tournamentdb.Repository = (*FakeRepository)(nil)

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		tournaments: make(map[string]tournamenttypes.Tournament),
		clock:       time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
	}
}

func (f *FakeRepository) GetTournament(ctx context.Context, id string) (*tournamenttypes.Tournament, error) {
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (f *FakeRepository) SaveTournament(ctx context.Context, t *tournamenttypes.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tournaments[t.ID] = *t
	return nil
}

func (f *FakeRepository) UpdateTournament(ctx context.Context, t *tournamenttypes.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[t.ID]; !ok {
		return tournamentdb.ErrNotFound
	}
	f.tournaments[t.ID] = *t
	return nil
}

func (f *FakeRepository) AppendEvent(ctx context.Context, evt *tournamenttypes.Event) (*tournamenttypes.Event, error) {
	if f.AppendEventFunc != nil {
		return f.AppendEventFunc(ctx, evt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	stored := *evt
	stored.ID = f.nextID
	stored.CreatedAt = f.clock
	f.events = append(f.events, stored)
	return &stored, nil
}

func (f *FakeRepository) ListEvents(ctx context.Context, tournamentID string) ([]tournamenttypes.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]tournamenttypes.Event, 0, len(f.events))
	for _, evt := range f.events {
		if evt.TournamentID == tournamentID {
			out = append(out, evt)
		}
	}
	return out, nil
}

func (f *FakeRepository) RetractEvent(ctx context.Context, tournamentID string, eventID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].TournamentID == tournamentID && f.events[i].ID == eventID && !f.events[i].Retracted {
			f.events[i].Retracted = true
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRepository) RetractLastEligible(ctx context.Context, tournamentID string) (*tournamenttypes.Event, error) {
	if f.RetractLastEligibleFunc != nil {
		return f.RetractLastEligibleFunc(ctx, tournamentID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		evt := &f.events[i]
		if evt.TournamentID != tournamentID || evt.Retracted || tournamenttypes.ProtectedKinds[evt.Kind] {
			continue
		}
		evt.Retracted = true
		copied := *evt
		return &copied, nil
	}
	return nil, nil
}

func (f *FakeRepository) WipeEvents(ctx context.Context, tournamentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.events[:0]
	for _, evt := range f.events {
		if evt.TournamentID != tournamentID {
			kept = append(kept, evt)
		}
	}
	f.events = kept
	return nil
}

// FakeRosterSource serves a fixed competitor list.
type FakeRosterSource struct {
	Competitors []tournamenttypes.Competitor
}

func (f *FakeRosterSource) ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error) {
	return f.Competitors, nil
}

// publishedMessage is one captured bus publish.
type publishedMessage struct {
	Subject string
	Payload []byte
}

// FakeEventBus records every publish for assertion.
type FakeEventBus struct {
	mu        sync.Mutex
	Published []publishedMessage
}

var _ eventbus.EventBus = (*FakeEventBus)(nil)

func (f *FakeEventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, publishedMessage{Subject: subject, Payload: msg.Payload})
	return nil
}

func (f *FakeEventBus) PublishEphemeral(ctx context.Context, subject string, msg *message.Message) error {
	return f.Publish(ctx, subject, msg)
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, streamName string, subjects []string) error {
	return nil
}

func (f *FakeEventBus) Publisher() message.Publisher   { return nil }
func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }
func (f *FakeEventBus) Close() error                   { return nil }

// decodePublished returns the payloads published to one subject, decoded into T.
func decodePublished[T any](f *FakeEventBus, subject string) []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, p := range f.Published {
		if p.Subject != subject {
			continue
		}
		var v T
		if err := json.Unmarshal(p.Payload, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}
