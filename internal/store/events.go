// Package store holds the domain layer over a storage.Provider: category,
// tracker and record stores, the filtered sectioned view, the completion
// toggling protocol and the statistics aggregator. Everything here is
// synchronous and single-goroutine; observers are notified in-line.
package store

import "github.com/osolodkova/tracker/internal/models"

// EventKind names which store changed.
type EventKind string

const (
	EventCategoriesChanged EventKind = "categories_changed"
	EventTrackersChanged   EventKind = "trackers_changed"
	EventRecordsChanged    EventKind = "records_changed"
)

// Event is delivered synchronously to every subscriber after a store
// mutation or view change. Records carries the full updated record set for
// EventRecordsChanged events.
type Event struct {
	Kind    EventKind
	Action  string
	Records []models.Record
}

type subscriber struct {
	id int
	fn func(Event)
}

// Events is a synchronous multi-subscriber change bus. Delivery order
// follows subscription order; unsubscribing is done through the function
// returned by Subscribe.
type Events struct {
	nextID int
	subs   []subscriber
}

func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers fn for every future event and returns its
// unsubscribe function.
func (e *Events) Subscribe(fn func(Event)) func() {
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) publish(ev Event) {
	for _, s := range e.subs {
		s.fn(ev)
	}
}
