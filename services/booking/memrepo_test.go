package booking

import (
	"context"
	"sync"

	apperrors "hotel-manager/errors"
	"hotel-manager/models"
)

// memRepo is an in-memory Repository. Atomic holds a single lock for the whole unit of work
// and rolls the maps back when fn fails.
type memRepo struct {
	atomic sync.Mutex
	mu     sync.Mutex

	clients      map[uint]models.Client
	rooms        map[uint]models.Room
	reservations map[uint]models.Reservation
	nextID       uint

	// clientLocks records the exclusive flag of every LockClient call
	clientLocks []bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		clients:      map[uint]models.Client{},
		rooms:        map[uint]models.Room{},
		reservations: map[uint]models.Reservation{},
		nextID:       1,
	}
}

func (m *memRepo) addClient(c models.Client) models.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	m.clients[c.ID] = c
	return c
}

func (m *memRepo) addRoom(r models.Room) models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.rooms[r.ID] = r
	return r
}

func (m *memRepo) put(r models.Reservation) models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.reservations[r.ID] = r
	return r
}

func (m *memRepo) FindClient(ctx context.Context, id uint) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, apperrors.NotFound("client", id)
	}
	return &c, nil
}

// LockClient relies on Atomic's single lock and only records the request
func (m *memRepo) LockClient(ctx context.Context, id uint, exclusive bool) (*models.Client, error) {
	m.mu.Lock()
	m.clientLocks = append(m.clientLocks, exclusive)
	m.mu.Unlock()
	return m.FindClient(ctx, id)
}

func (m *memRepo) FindRoom(ctx context.Context, id uint) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, apperrors.NotFound("room", id)
	}
	return &r, nil
}

func (m *memRepo) FindReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, apperrors.NotFound("reservation", id)
	}
	return &r, nil
}

func (m *memRepo) FindActiveByRoom(ctx context.Context, roomID, excludeID uint) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.RoomID == roomID && r.ID != excludeID && r.Status.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) CountActiveByClient(ctx context.Context, clientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.reservations {
		if r.ClientID == clientID && r.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountActiveByRoom(ctx context.Context, roomID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.reservations {
		if r.RoomID == roomID && r.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CreateReservation(ctx context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	m.reservations[r.ID] = *r
	return nil
}

func (m *memRepo) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[r.ID]; !ok {
		return apperrors.NotFound("reservation", r.ID)
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *memRepo) DeleteReservation(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

func (m *memRepo) DeleteClient(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for rid, r := range m.reservations {
		if r.ClientID == id {
			delete(m.reservations, rid)
		}
	}
	delete(m.clients, id)
	return nil
}

func (m *memRepo) DeleteRoom(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for rid, r := range m.reservations {
		if r.RoomID == id {
			delete(m.reservations, rid)
		}
	}
	delete(m.rooms, id)
	return nil
}

func (m *memRepo) Atomic(ctx context.Context, roomIDs []uint, fn func(repo Repository) error) error {
	m.atomic.Lock()
	defer m.atomic.Unlock()

	m.mu.Lock()
	snapshot := m.reservations
	clients := m.clients
	rooms := m.rooms
	m.reservations = copyMap(snapshot)
	m.clients = copyMap(clients)
	m.rooms = copyMap(rooms)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.reservations = snapshot
		m.clients = clients
		m.rooms = rooms
		m.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[V any](in map[uint]V) map[uint]V {
	out := make(map[uint]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
