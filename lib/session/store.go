package session

import (
	"context"
	"sync"
	"time"

	"col-dashboard-backend/config"
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("сессия не найдена или истекла")

// Provider — хранилище состояния выборки по сессиям.
// Каждая сессия держит свою выборку независимо, общего изменяемого состояния нет.
type Provider interface {
	Create() dashboardapimodels.SessionView
	Get(id string) (dashboardapimodels.SessionView, error)
	Update(id string, selection dashboardapimodels.SelectionData) (dashboardapimodels.SessionView, error)
}

var Instance Provider

func NewHandler(ctx context.Context) {
	instance := &impl{
		sessions: map[string]*sessionState{},
		ttl:      time.Duration(config.Conf.Session.TTLMinutes) * time.Minute,
	}
	go instance.startCleaner(ctx)
	Instance = instance
}

type sessionState struct {
	selection dashboardapimodels.SelectionData
	touchedAt time.Time
}

type impl struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	ttl      time.Duration
}

func (i *impl) Create() dashboardapimodels.SessionView {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := uuid.New().String()
	i.sessions[id] = &sessionState{touchedAt: time.Now()}
	return dashboardapimodels.SessionView{ID: id}
}

func (i *impl) Get(id string) (dashboardapimodels.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, ok := i.sessions[id]
	if !ok {
		return dashboardapimodels.SessionView{}, errors.Wrap(ErrSessionNotFound, id)
	}
	state.touchedAt = time.Now()
	return dashboardapimodels.SessionView{ID: id, Selection: state.selection}, nil
}

func (i *impl) Update(id string, selection dashboardapimodels.SelectionData) (dashboardapimodels.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	state, ok := i.sessions[id]
	if !ok {
		return dashboardapimodels.SessionView{}, errors.Wrap(ErrSessionNotFound, id)
	}
	state.selection = selection
	state.touchedAt = time.Now()
	return dashboardapimodels.SessionView{ID: id, Selection: state.selection}, nil
}

func (i *impl) startCleaner(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.dropExpired()
		}
	}
}

func (i *impl) dropExpired() {
	i.mu.Lock()
	defer i.mu.Unlock()
	deadline := time.Now().Add(-i.ttl)
	for id, state := range i.sessions {
		if state.touchedAt.Before(deadline) {
			delete(i.sessions, id)
			log.WithField("session_id", id).Debug("сессия удалена по таймауту")
		}
	}
}
