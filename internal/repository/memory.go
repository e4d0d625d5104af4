package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"skyjourney/internal/domain"
)

// MemStore keeps all records in process memory. One mutex guards every map so
// that seat accounting (booking insert + seat decrement, cancel + seat credit)
// is a single atomic step, which is what keeps the invariant
// availableSeats + sum(seatsBooked of confirmed bookings) == totalSeats.
type MemStore struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	flights    map[int64]domain.Flight
	bookings   map[int64]domain.Booking
	passengers map[int64]domain.Passenger

	userID      int64
	flightID    int64
	bookingID   int64
	passengerID int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[int64]domain.User),
		flights:    make(map[int64]domain.Flight),
		bookings:   make(map[int64]domain.Booking),
		passengers: make(map[int64]domain.Passenger),
	}
}

// Users

func (s *MemStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	s.userID++
	user.ID = s.userID
	s.users[user.ID] = *user
	return nil
}

func (s *MemStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Flights

func (s *MemStore) List(ctx context.Context) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flights := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		flights = append(flights, f)
	}
	sort.Slice(flights, func(i, j int) bool { return flights[i].ID < flights[j].ID })
	return flights, nil
}

func (s *MemStore) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *MemStore) Search(ctx context.Context, from, to string, departureDate time.Time) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := departureDate.UTC().Format("2006-01-02")
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	matched := make([]domain.Flight, 0)
	for _, f := range s.flights {
		if !strings.Contains(strings.ToLower(f.From), from) {
			continue
		}
		if !strings.Contains(strings.ToLower(f.To), to) {
			continue
		}
		if f.DepartureDate.UTC().Format("2006-01-02") != day {
			continue
		}
		matched = append(matched, f)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (s *MemStore) CreateFlight(ctx context.Context, flight *domain.Flight) error {
	if err := flight.CheckSeats(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flightID++
	flight.ID = s.flightID
	s.flights[flight.ID] = *flight
	return nil
}

func (s *MemStore) UpdateFlight(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&f)
	if err := f.CheckSeats(); err != nil {
		return nil, err
	}
	s.flights[id] = f
	return &f, nil
}

func (s *MemStore) DeleteFlight(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[id]; !ok {
		return domain.ErrNotFound
	}
	// Non-cascading: bookings against the flight are left in place.
	delete(s.flights, id)
	return nil
}

// Bookings

func (s *MemStore) CreateBooking(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[booking.FlightID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.AvailableSeats < booking.SeatsBooked {
		return domain.ErrInsufficientSeats
	}

	f.AvailableSeats -= booking.SeatsBooked
	s.flights[f.ID] = f

	s.bookingID++
	booking.ID = s.bookingID
	booking.Status = domain.BookingStatusConfirmed
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	s.bookings[booking.ID] = *booking

	for i := range passengers {
		s.passengerID++
		passengers[i].ID = s.passengerID
		passengers[i].BookingID = booking.ID
		s.passengers[passengers[i].ID] = passengers[i]
	}
	return nil
}

func (s *MemStore) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *MemStore) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.BookingReference == reference {
			booking := b
			return &booking, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemStore) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (s *MemStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (s *MemStore) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	b.Status = domain.BookingStatusCancelled
	s.bookings[id] = b

	// The flight may have been deleted since the booking was made; the
	// cancellation still takes effect, there is just nothing to credit.
	if f, ok := s.flights[b.FlightID]; ok {
		f.AvailableSeats += b.SeatsBooked
		s.flights[f.ID] = f
	}
	return &b, nil
}

func (s *MemStore) Passengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	passengers := make([]domain.Passenger, 0)
	for _, p := range s.passengers {
		if p.BookingID == bookingID {
			passengers = append(passengers, p)
		}
	}
	sort.Slice(passengers, func(i, j int) bool { return passengers[i].ID < passengers[j].ID })
	return passengers, nil
}

// memUserRepo, memFlightRepo and memBookingRepo expose one MemStore as the
// three repository interfaces, sharing its mutex.

type memUserRepo struct{ *MemStore }
type memFlightRepo struct{ *MemStore }
type memBookingRepo struct{ *MemStore }

func (s *MemStore) Users() UserRepository       { return memUserRepo{s} }
func (s *MemStore) Flights() FlightRepository   { return memFlightRepo{s} }
func (s *MemStore) Bookings() BookingRepository { return memBookingRepo{s} }

func (r memFlightRepo) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return r.GetFlight(ctx, id)
}

func (r memFlightRepo) Create(ctx context.Context, flight *domain.Flight) error {
	return r.CreateFlight(ctx, flight)
}

func (r memFlightRepo) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	return r.UpdateFlight(ctx, id, patch)
}

func (r memFlightRepo) Delete(ctx context.Context, id int64) error {
	return r.DeleteFlight(ctx, id)
}

func (r memBookingRepo) Create(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error {
	return r.CreateBooking(ctx, booking, passengers)
}

func (r memBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetBooking(ctx, id)
}

var (
	_ UserRepository    = memUserRepo{}
	_ FlightRepository  = memFlightRepo{}
	_ BookingRepository = memBookingRepo{}
)
