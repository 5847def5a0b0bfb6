package control

import (
	"log/slog"
	"sync"

	"github.com/victortrac/stashclicker/internal/clicker"
)

// EventStateChanged is the push event name the settings page listens for.
const EventStateChanged = "clicker-state-changed"

// ClickerStateChanged is pushed whenever the hotkey flips the autoclicker.
type ClickerStateChanged struct {
	Running   bool         `json:"running"`
	CPS       uint64       `json:"cps"`
	ClickMode clicker.Mode `json:"click_mode"`
}

// StateChanged builds the notification for cfg.
func StateChanged(cfg clicker.Config) ClickerStateChanged {
	return ClickerStateChanged{Running: cfg.Enabled, CPS: cfg.CPS, ClickMode: cfg.Mode}
}

const subscriberBuffer = 16

// Broker fans notifications out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the notification.
type Broker struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[chan ClickerStateChanged]struct{}
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{logger: logger, subs: make(map[chan ClickerStateChanged]struct{})}
}

// Publish delivers ev to every subscriber that has room for it.
func (b *Broker) Publish(ev ClickerStateChanged) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Debug("Dropping state notification for slow subscriber")
		}
	}
}

// Subscribe registers a subscriber. The returned func unsubscribes and
// closes the channel; calling it more than once is safe.
func (b *Broker) Subscribe() (<-chan ClickerStateChanged, func()) {
	ch := make(chan ClickerStateChanged, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
