package events

import (
	"sync"

	"go.uber.org/zap"
)

// InMemoryEventStore keeps every stream in memory and delivers events to subscribers
// synchronously, in append order, after the write lock is released. An event appended while
// another append is delivering, including from inside a handler, is queued and delivered by
// that append once the current handlers return.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
	pending     []delivery
	delivering  bool
	logger      *zap.Logger
}

type delivery struct {
	event    Event
	streamID string
	handlers []EventHandler
}

func NewInMemoryEventStore(logger *zap.Logger) *InMemoryEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		logger:      logger,
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	s.pending = append(s.pending, delivery{
		event:    eventWithVersion,
		streamID: streamID,
		handlers: append([]EventHandler(nil), s.subscribers[event.Type()]...),
	})
	if s.delivering {
		s.mutex.Unlock()
		return nil
	}
	s.delivering = true
	s.mutex.Unlock()

	s.drain()
	return nil
}

// drain delivers queued events until the queue is empty
func (s *InMemoryEventStore) drain() {
	for {
		s.mutex.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			s.mutex.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mutex.Unlock()

		for _, handler := range next.handlers {
			if !handler.CanHandle(next.event.Type()) {
				continue
			}
			if err := handler.Handle(next.event); err != nil {
				s.logger.Warn("event handler failed",
					zap.String("type", next.event.Type()),
					zap.String("stream", next.streamID),
					zap.Error(err))
			}
		}
	}
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}
