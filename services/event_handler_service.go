package services

import (
	"log"
	"time"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/models"
)

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents()
}

// EventBroadcaster receives every dispatched event for fan-out to connected
// UI clients.
type EventBroadcaster interface {
	BroadcastEvent(event models.Event)
}

// EventHandlerService drains the transactional event log: it polls
// undispatched rows, publishes them to the broker and the websocket hub, and
// marks them dispatched. Either sink may be nil; the store works without
// them.
type EventHandlerService struct {
	db          *database.Database
	publisher   broker.Publisher
	broadcaster EventBroadcaster
	isRunning   bool
	ticker      *time.Ticker
}

func NewEventHandlerService(db *database.Database, publisher broker.Publisher, broadcaster EventBroadcaster) *EventHandlerService {
	return &EventHandlerService{
		db:          db,
		publisher:   publisher,
		broadcaster: broadcaster,
		ticker:      time.NewTicker(1 * time.Second),
	}
}

func (s *EventHandlerService) Start() {
	if s.isRunning {
		return
	}
	s.isRunning = true
	go s.ProcessPendingEvents()
}

func (s *EventHandlerService) Stop() {
	if !s.isRunning {
		return
	}
	s.isRunning = false
	s.ticker.Stop()
}

func (s *EventHandlerService) ProcessPendingEvents() {
	for range s.ticker.C {
		if !s.isRunning {
			return
		}

		if err := s.DispatchPending(); err != nil {
			log.Printf("Error dispatching events: %v", err)
		}
	}
}

// DispatchPending processes the current backlog once. Split out from the
// ticker loop so tests and shutdown can drain synchronously.
func (s *EventHandlerService) DispatchPending() error {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).Order("timestamp").Find(&events).Error; err != nil {
		return err
	}

	for _, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			log.Printf("Error dispatching event %s: %v", event.ID, err)
			continue
		}
	}

	return nil
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	if s.publisher != nil {
		payload, err := event.ToJSON()
		if err != nil {
			return err
		}
		if err := s.publisher.Publish(broker.SubjectForEntity(event.Entity), payload); err != nil {
			return err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event)
	}

	now := time.Now().UTC()
	return s.db.DB.Model(&models.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"dispatched":    true,
			"dispatched_at": now,
		}).Error
}

var EventHandlerServiceInstance EventHandlerServiceInterface
