package game

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventSpawned EventType = iota // random drop
	EventMerged                   // merge product spawned
	EventRemoved                  // consumed by a merge
	EventCulled                   // fell offstage
	EventReset
)

type Event struct {
	Type EventType
	Pos  mgl64.Vec3
	Tier int
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventSpawned; t <= EventReset; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
