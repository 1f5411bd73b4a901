package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/event"
	"flight-booking/pkg/mailer"

	"github.com/google/uuid"
)

var errInjected = errors.New("injected failure")

type seatKey struct {
	flight string
	row    int
	column string
}

type memState struct {
	airplanes map[int64]entity.Airplane
	airports  map[int64]entity.Airport
	flights   map[string]entity.Flight
	seats     map[seatKey]entity.Seat
	contacts  map[string]entity.Contact // by email
	bookings  map[uuid.UUID]entity.Booking
	travelers []entity.Traveler
	payments  []entity.Payment
	nextID    int64
	flightSeq int
}

func (s *memState) clone() memState {
	c := memState{
		airplanes: make(map[int64]entity.Airplane, len(s.airplanes)),
		airports:  make(map[int64]entity.Airport, len(s.airports)),
		flights:   make(map[string]entity.Flight, len(s.flights)),
		seats:     make(map[seatKey]entity.Seat, len(s.seats)),
		contacts:  make(map[string]entity.Contact, len(s.contacts)),
		bookings:  make(map[uuid.UUID]entity.Booking, len(s.bookings)),
		travelers: append([]entity.Traveler(nil), s.travelers...),
		payments:  append([]entity.Payment(nil), s.payments...),
		nextID:    s.nextID,
		flightSeq: s.flightSeq,
	}
	for k, v := range s.airplanes {
		c.airplanes[k] = v
	}
	for k, v := range s.airports {
		c.airports[k] = v
	}
	for k, v := range s.flights {
		c.flights[k] = v
	}
	for k, v := range s.seats {
		c.seats[k] = v
	}
	for k, v := range s.contacts {
		c.contacts[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	return c
}

// memStore backs every repository with maps. WithinTx holds txMu for the
// whole callback, so transactions are serialised, and restores a snapshot
// when the callback fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   memState

	// failOn names a repository step that returns errInjected.
	failOn string
}

func newMemStore() *memStore {
	empty := memState{}
	return &memStore{st: empty.clone()}
}

func (m *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		Airplane: memAirplanes{m},
		Airport:  memAirports{m},
		Flight:   memFlights{m},
		Seat:     memSeats{m},
		Contact:  memContacts{m},
		Booking:  memBookings{m},
		Traveler: memTravelers{m},
		Payment:  memPayments{m},
	}
	repo.Tx = m
	return repo
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snap := m.st.clone()
	m.mu.Unlock()

	txRepo := m.repository()
	txRepo.Tx = joined{repo: txRepo}

	if err := fn(txRepo); err != nil {
		m.mu.Lock()
		m.st = snap
		m.mu.Unlock()
		return err
	}
	return nil
}

type joined struct {
	repo *repository.Repository
}

func (j joined) WithinTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	return fn(j.repo)
}

func (m *memStore) fail(step string) error {
	if m.failOn == step {
		return fmt.Errorf("%s: %w", step, errInjected)
	}
	return nil
}

// read helpers for assertions

func (m *memStore) seat(flightID string, row int, column string) (entity.Seat, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.st.seats[seatKey{flightID, row, column}]
	return s, ok
}

func (m *memStore) counts() (flights, seats, contacts, bookings, travelers, payments int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.flights), len(m.st.seats), len(m.st.contacts), len(m.st.bookings), len(m.st.travelers), len(m.st.payments)
}

func (m *memStore) bookedLabels(flightID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var labels []string
	for k, s := range m.st.seats {
		if k.flight == flightID && s.IsBooked {
			labels = append(labels, s.Label())
		}
	}
	sort.Strings(labels)
	return labels
}

// ---- airplanes

type memAirplanes struct{ m *memStore }

func (r memAirplanes) Create(_ context.Context, a *entity.Airplane) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.nextID++
	a.ID = r.m.st.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.m.st.airplanes[a.ID] = *a
	return nil
}

func (r memAirplanes) FindByID(_ context.Context, id int64) (*entity.Airplane, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.st.airplanes[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAirplanes) FindAll(_ context.Context) ([]*entity.Airplane, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Airplane, 0, len(r.m.st.airplanes))
	for _, a := range r.m.st.airplanes {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- airports

type memAirports struct{ m *memStore }

func (r memAirports) Create(_ context.Context, a *entity.Airport) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.st.airports {
		if existing.Code == a.Code {
			return repository.ErrDuplicate
		}
	}
	r.m.st.nextID++
	a.ID = r.m.st.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.m.st.airports[a.ID] = *a
	return nil
}

func (r memAirports) FindByID(_ context.Context, id int64) (*entity.Airport, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.st.airports[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAirports) FindAll(_ context.Context) ([]*entity.Airport, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Airport, 0, len(r.m.st.airports))
	for _, a := range r.m.st.airports {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- flights

type memFlights struct{ m *memStore }

func (r memFlights) Create(_ context.Context, f *entity.Flight) error {
	if err := r.m.fail("flight.create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.flightSeq++
	f.ID = fmt.Sprintf("EZ%05d", r.m.st.flightSeq)
	f.CreatedAt = time.Now().UTC()
	f.UpdatedAt = f.CreatedAt
	r.m.st.flights[f.ID] = *f
	return nil
}

func (r memFlights) FindByID(_ context.Context, id string) (*entity.Flight, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.st.flights[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r memFlights) FindDetailByID(_ context.Context, id string) (*entity.FlightDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.st.flights[id]
	if !ok {
		return nil, nil
	}
	return r.detail(f), nil
}

func (r memFlights) detail(f entity.Flight) *entity.FlightDetail {
	return &entity.FlightDetail{
		Flight:      f,
		Airplane:    r.m.st.airplanes[f.AirplaneID],
		Origin:      r.m.st.airports[f.OriginID],
		Destination: r.m.st.airports[f.DestinationID],
	}
}

func (r memFlights) FindAll(_ context.Context, offset, limit int) ([]*entity.FlightDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ids := make([]string, 0, len(r.m.st.flights))
	for id := range r.m.st.flights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []*entity.FlightDetail{}
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, r.detail(r.m.st.flights[ids[i]]))
	}
	return out, nil
}

func (r memFlights) CountAll(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.st.flights)), nil
}

func (r memFlights) Update(_ context.Context, f *entity.Flight) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.st.flights[f.ID]; !ok {
		return repository.ErrNotFound
	}
	f.UpdatedAt = time.Now().UTC()
	r.m.st.flights[f.ID] = *f
	return nil
}

func (r memFlights) Delete(_ context.Context, id string) error {
	if err := r.m.fail("flight.delete"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.st.flights[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.st.flights, id)
	return nil
}

// ---- seats

type memSeats struct{ m *memStore }

func (r memSeats) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	if err := r.m.fail("seat.batch"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range seats {
		key := seatKey{s.FlightID, s.Row, s.Column}
		if _, dup := r.m.st.seats[key]; dup {
			return repository.ErrDuplicate
		}
		r.m.st.seats[key] = *s
	}
	return nil
}

func (r memSeats) FindByFlightID(_ context.Context, flightID string) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Seat
	for k, s := range r.m.st.seats {
		if k.flight == flightID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out, nil
}

func (r memSeats) FindByPosition(_ context.Context, flightID string, row int, column string) (*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.st.seats[seatKey{flightID, row, column}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r memSeats) CountBooked(_ context.Context, flightID string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for k, s := range r.m.st.seats {
		if k.flight == flightID && s.IsBooked {
			n++
		}
	}
	return n, nil
}

func (r memSeats) DeleteByFlightID(_ context.Context, flightID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k := range r.m.st.seats {
		if k.flight == flightID {
			delete(r.m.st.seats, k)
			n++
		}
	}
	return n, nil
}

func (r memSeats) Reserve(_ context.Context, flightID string, row int, column string) (bool, error) {
	return r.set(flightID, row, column, true)
}

func (r memSeats) Release(_ context.Context, flightID string, row int, column string) (bool, error) {
	return r.set(flightID, row, column, false)
}

// set mirrors the conditional UPDATE: it only flips a seat in the expected
// state, and never releases a seat a traveler holds.
func (r memSeats) set(flightID string, row int, column string, booked bool) (bool, error) {
	if err := r.m.fail("seat.update"); err != nil {
		return false, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := seatKey{flightID, row, column}
	s, ok := r.m.st.seats[key]
	if !ok || s.IsBooked == booked {
		return false, nil
	}
	if !booked {
		for _, t := range r.m.st.travelers {
			if t.SeatID != nil && *t.SeatID == s.ID {
				return false, nil
			}
		}
	}
	s.IsBooked = booked
	s.UpdatedAt = time.Now().UTC()
	r.m.st.seats[key] = s
	return true, nil
}

// ---- contacts

type memContacts struct{ m *memStore }

func (r memContacts) Upsert(_ context.Context, c *entity.Contact) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if existing, ok := r.m.st.contacts[c.Email]; ok {
		existing.Phone = c.Phone
		existing.UpdatedAt = time.Now().UTC()
		r.m.st.contacts[c.Email] = existing
		*c = existing
		return nil
	}
	r.m.st.contacts[c.Email] = *c
	return nil
}

func (r memContacts) FindByID(_ context.Context, id uuid.UUID) (*entity.Contact, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.st.contacts {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

// ---- bookings

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, b *entity.Booking) error {
	if err := r.m.fail("booking.create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored := *b
	stored.Contact, stored.Travelers, stored.Payments = nil, nil, nil
	r.m.st.bookings[b.ID] = stored
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.st.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBookings) FindByContactEmail(_ context.Context, email string) ([]*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.st.contacts[email]
	if !ok {
		return nil, nil
	}
	var out []*entity.Booking
	for _, b := range r.m.st.bookings {
		if b.ContactID == c.ID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memBookings) CountByFlightID(_ context.Context, flightID string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, b := range r.m.st.bookings {
		if b.FlightID == flightID {
			n++
		}
	}
	return n, nil
}

func (r memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.st.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	r.m.st.bookings[id] = b
	return &b, nil
}

// ---- travelers

type memTravelers struct{ m *memStore }

func (r memTravelers) CreateBatch(_ context.Context, travelers []*entity.Traveler) error {
	if err := r.m.fail("traveler.batch"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range travelers {
		if t.SeatID != nil {
			for _, existing := range r.m.st.travelers {
				if existing.SeatID != nil && *existing.SeatID == *t.SeatID {
					return repository.ErrDuplicate
				}
			}
		}
		r.m.st.travelers = append(r.m.st.travelers, *t)
	}
	return nil
}

func (r memTravelers) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Traveler
	for _, t := range r.m.st.travelers {
		if t.BookingID == bookingID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ---- payments

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	if err := r.m.fail("payment.create"); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.payments = append(r.m.st.payments, *p)
	return nil
}

func (r memPayments) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.m.st.payments {
		if p.BookingID == bookingID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

// ---- collaborators

// memCache stores JSON like the Redis cache does.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	if json.Unmarshal(raw, dest) != nil {
		return false
	}
	c.hits++
	return true
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	queues []string
	events []event.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, queue string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.queues = append(p.queues, queue)
	p.events = append(p.events, payload.(event.BookingEvent))
	return nil
}

func (p *fakePublisher) published() []event.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.BookingEvent(nil), p.events...)
}

// inProcessSeats answers flight service calls with a local SeatService.
type inProcessSeats struct {
	svc      SeatService
	mu       sync.Mutex
	released [][]string
}

func (c *inProcessSeats) ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) error {
	_, err := c.svc.ReserveSeats(ctx, flightID, seatNumbers)
	if err != nil {
		return &SeatReservationRejectedError{StatusCode: 409, Message: err.Error()}
	}
	return nil
}

func (c *inProcessSeats) ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) error {
	c.mu.Lock()
	c.released = append(c.released, seatNumbers)
	c.mu.Unlock()
	_, err := c.svc.ReleaseSeats(ctx, flightID, seatNumbers)
	return err
}

type stubSeats struct {
	err error
}

func (s stubSeats) ReserveSeats(context.Context, string, []string) error { return s.err }
func (s stubSeats) ReleaseSeats(context.Context, string, []string) error { return s.err }

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
