package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/matchday/internal/matchday"
)

const (
	EventState   = "state"
	EventLive    = "live"
	EventSaved   = "saved"
	EventDeleted = "deleted"
)

// Event is the payload published to a career's subscribers.
type Event struct {
	Type        string                   `json:"type"`
	Slot        string                   `json:"slot"`
	Command     string                   `json:"command,omitempty"`
	CurrentDate time.Time                `json:"currentDate"`
	Live        *matchday.LiveMatchState `json:"live,omitempty"`
	UnreadNews  int                      `json:"unreadNews"`
}

// relayBacklog bounds the events queued for the relay.
const relayBacklog = 256

// Relay forwards events to other server instances.
type Relay interface {
	Publish(ctx context.Context, slot string, data []byte) error
}

// Broker is an in-process pub/sub for game events, keyed by save slot.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[chan []byte]struct{}
	outbox chan relayed
	logger *slog.Logger
}

type relayed struct {
	slot string
	data []byte
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]map[chan []byte]struct{}),
		logger: logger,
	}
}

// SetRelay makes every published event also go through r. Events are
// forwarded from a background goroutine so Publish never waits on r.
func (b *Broker) SetRelay(r Relay) {
	outbox := make(chan relayed, relayBacklog)
	go b.forward(r, outbox)
	b.mu.Lock()
	b.outbox = outbox
	b.mu.Unlock()
}

func (b *Broker) forward(r Relay, outbox <-chan relayed) {
	for ev := range outbox {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := r.Publish(ctx, ev.slot, ev.data); err != nil {
			b.logger.Warn("relaying event failed", "slot", ev.slot, "error", err)
		}
		cancel()
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given slot.
func (b *Broker) Subscribe(slot string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[slot] == nil {
		b.subs[slot] = make(map[chan []byte]struct{})
	}
	b.subs[slot][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the slot's subscribers.
func (b *Broker) Unsubscribe(slot string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[slot], ch)
	if len(b.subs[slot]) == 0 {
		delete(b.subs, slot)
	}
	b.mu.Unlock()
}

// Publish sends an event to local subscribers of the slot and queues it for
// the relay.
func (b *Broker) Publish(slot string, event Event) {
	event.Slot = slot
	data, _ := json.Marshal(event)
	b.deliver(slot, data)

	b.mu.RLock()
	outbox := b.outbox
	b.mu.RUnlock()
	if outbox == nil {
		return
	}
	select {
	case outbox <- relayed{slot: slot, data: data}:
	default:
		b.logger.Warn("relay backlog full, event dropped", "slot", slot, "type", event.Type)
	}
}

func (b *Broker) deliver(slot string, data []byte) {
	b.mu.RLock()
	for ch := range b.subs[slot] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

func stateEvent(kind, command string, s *matchday.GameState) Event {
	ev := Event{
		Type:        kind,
		Command:     command,
		CurrentDate: s.CurrentDate,
		Live:        s.LiveMatch,
	}
	for _, n := range s.News {
		if !n.IsRead {
			ev.UnreadNews++
		}
	}
	return ev
}
