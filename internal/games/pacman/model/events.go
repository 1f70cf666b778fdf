package model

// Event is something observers of the model are told about.
type Event int

const (
	EventDotEaten Event = iota
	EventPlayerDeath
	EventPowerPelletEaten
	EventFruitEaten
	EventGhostEaten
	EventCoinInserted
	EventNewGame
	EventGameOver
	EventExtraLife
	EventLevelCleared
	EventPowerPelletWornOff
	EventGhostRevived
	EventNewLevel
	EventGameUpdated
	EventHalfDotsEaten
	EventThreeQuartersDotsEaten
	EventGamePaused
	EventGameUnpaused
	EventShuttingDown
)

var eventNames = [...]string{
	EventDotEaten:               "DotEaten",
	EventPlayerDeath:            "PlayerDeath",
	EventPowerPelletEaten:       "PowerPelletEaten",
	EventFruitEaten:             "FruitEaten",
	EventGhostEaten:             "GhostEaten",
	EventCoinInserted:           "CoinInserted",
	EventNewGame:                "NewGame",
	EventGameOver:               "GameOver",
	EventExtraLife:              "ExtraLife",
	EventLevelCleared:           "LevelCleared",
	EventPowerPelletWornOff:     "PowerPelletWornOff",
	EventGhostRevived:           "GhostRevived",
	EventNewLevel:               "NewLevel",
	EventGameUpdated:            "GameUpdated",
	EventHalfDotsEaten:          "HalfDotsEaten",
	EventThreeQuartersDotsEaten: "ThreeQuartersDotsEaten",
	EventGamePaused:             "GamePaused",
	EventGameUnpaused:           "GameUnpaused",
	EventShuttingDown:           "ShuttingDown",
}

// String returns a human-readable name for the event.
func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[e]
}

// Notification is one delivered event. Source is the actor involved
// (*sprite.Ghost for ghost events, *sprite.Fruit for fruit events), a
// GameResult for GameOver, or nil.
type Notification struct {
	Event  Event
	Source any
}

// Listener observes a model. Listeners are called synchronously in the
// order they were added, and never in the middle of a tick.
type Listener interface {
	GameUpdated(m *Model, n Notification)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(m *Model, n Notification)

// GameUpdated implements Listener.
func (f ListenerFunc) GameUpdated(m *Model, n Notification) { f(m, n) }

// Detacher is implemented by listeners that want to know when they are
// removed.
type Detacher interface {
	Detach()
}

// ListenerID identifies a registered listener.
type ListenerID int

type registration struct {
	id ListenerID
	l  Listener
}

// AddListener registers l and returns a handle for RemoveListener.
func (m *Model) AddListener(l Listener) ListenerID {
	m.nextListener++
	m.listeners = append(m.listeners, registration{id: m.nextListener, l: l})
	return m.nextListener
}

// RemoveListener unregisters a listener. It reports whether the handle was
// known.
func (m *Model) RemoveListener(id ListenerID) bool {
	for i, r := range m.listeners {
		if r.id != id {
			continue
		}
		m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
		if d, ok := r.l.(Detacher); ok {
			d.Detach()
		}
		return true
	}
	return false
}

// notify delivers an event now, or queues it until the running tick ends.
func (m *Model) notify(e Event, source any) {
	n := Notification{Event: e, Source: source}
	if m.inTick {
		m.pending = append(m.pending, n)
		return
	}
	m.dispatch(n)
}

func (m *Model) dispatch(n Notification) {
	// Listeners may unregister themselves while being notified.
	regs := append([]registration(nil), m.listeners...)
	for _, r := range regs {
		r.l.GameUpdated(m, n)
	}
}

func (m *Model) beginTick() {
	m.inTick = true
	m.pending = m.pending[:0]
}

func (m *Model) endTick() {
	m.inTick = false
	batch := append([]Notification(nil), m.pending...)
	m.pending = m.pending[:0]
	for _, n := range batch {
		m.dispatch(n)
	}
}
