package services

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PlanEvent is what subscribers of the weekly plan receive.
type PlanEvent struct {
	Kind string      `json:"kind"`
	Dia  interface{} `json:"dia"`
}

// PlanSubscriber receives serialized events. Implementations must not block
// for long; the hub holds a read lock while delivering.
type PlanSubscriber interface {
	Send(msg []byte) error
}

// PlanHub fans plan changes out to connected clients.
type PlanHub struct {
	mu   sync.RWMutex
	subs map[PlanSubscriber]struct{}
	log  *slog.Logger
}

func NewPlanHub(log *slog.Logger) *PlanHub {
	if log == nil {
		log = slog.Default()
	}
	return &PlanHub{subs: make(map[PlanSubscriber]struct{}), log: log}
}

func (h *PlanHub) Register(s PlanSubscriber) {
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
}

func (h *PlanHub) Unregister(s PlanSubscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

func (h *PlanHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers ev to every subscriber; failed sends are logged and the
// subscriber is dropped.
func (h *PlanHub) Publish(ev PlanEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("plan.publish.marshal", "err", err)
		return
	}

	var failed []PlanSubscriber
	h.mu.RLock()
	for s := range h.subs {
		if err := s.Send(msg); err != nil {
			failed = append(failed, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range failed {
		h.log.Warn("plan.publish.drop_subscriber")
		h.Unregister(s)
	}
}
