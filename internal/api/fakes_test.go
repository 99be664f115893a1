package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
	"clubsite/backend/internal/standings"
)

type fakeNews struct {
	mu    sync.Mutex
	items map[string]*models.News
}

func newFakeNews() *fakeNews { return &fakeNews{items: map[string]*models.News{}} }

func (f *fakeNews) Create(_ context.Context, n *models.News) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNews) GetByID(_ context.Context, id string) (*models.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("news %s: %w", id, repository.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNews) List(_ context.Context, category string) ([]*models.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.News{}
	for _, n := range f.items {
		if category == "" || n.Category == category {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNews) Update(_ context.Context, n *models.News) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[n.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNews) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakePlayers struct {
	mu    sync.Mutex
	items map[string]*models.Player
}

func (f *fakePlayers) Create(_ context.Context, p *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlayers) GetByID(_ context.Context, id string) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayers) List(_ context.Context, position string) ([]*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Player{}
	for _, p := range f.items {
		if position == "" || p.Position == position {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePlayers) Update(_ context.Context, p *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlayers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeMatches struct {
	mu    sync.Mutex
	items map[string]*models.Match
}

func (f *fakeMatches) Create(_ context.Context, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMatches) GetByID(_ context.Context, id string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatches) List(_ context.Context, status string) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Match{}
	for _, m := range f.items {
		if status == "" || m.Status == status {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMatches) Update(_ context.Context, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMatches) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeSettings struct {
	mu sync.Mutex
	s  *models.Settings
}

func (f *fakeSettings) Get(_ context.Context) (*models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil {
		f.s = models.DefaultSettings()
	}
	cp := *f.s
	return &cp, nil
}

func (f *fakeSettings) Update(_ context.Context, upd *models.SettingsUpdate) (*models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil {
		f.s = models.DefaultSettings()
	}
	upd.Apply(f.s)
	cp := *f.s
	return &cp, nil
}

type fakeContacts struct {
	mu    sync.Mutex
	items map[string]*models.ContactMessage
}

func (f *fakeContacts) Create(_ context.Context, m *models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeContacts) List(_ context.Context) ([]*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.ContactMessage{}
	for _, m := range f.items {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeContacts) MarkRead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Read = true
	return nil
}

func (f *fakeContacts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	items map[string]*models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[u.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := *u
	f.items[u.Email] = &cp
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeStandings struct {
	mu         sync.Mutex
	snap       *models.StandingsSnapshot
	refreshErr error
	refreshed  int
}

func (f *fakeStandings) Current(_ context.Context) (*models.StandingsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snap == nil {
		return nil, standings.ErrNotAvailable
	}
	return f.snap.Clone(), nil
}

func (f *fakeStandings) ForceRefresh(_ context.Context) (*models.StandingsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.snap.Clone(), nil
}
