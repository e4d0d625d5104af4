package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, from, to string, departureDate time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, from, to, departureDate)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ repository.FlightRepository = (*MockFlightRepository)(nil)

func validFlight() *domain.Flight {
	return &domain.Flight{
		FlightNumber:   "AA2734",
		Airline:        "American Airlines",
		From:           "JFK, New York",
		To:             "LAX, Los Angeles",
		DepartureDate:  time.Date(2023, 11, 15, 8, 0, 0, 0, time.UTC),
		Price:          "349",
		TotalSeats:     180,
		AvailableSeats: 180,
	}
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)
	ctx := context.Background()

	cached := []domain.Flight{{ID: 1, FlightNumber: "AA2734"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	got, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)
	ctx := context.Background()

	flights := []domain.Flight{{ID: 1}, {ID: 2}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	got, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_WithoutCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.Flight{{ID: 1}}, nil).Once()

	got, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFlightService_Search_Validation(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)
	ctx := context.Background()
	day := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		input SearchInput
		field string
	}{
		{
			name:  "origin too short",
			input: SearchInput{From: "J", To: "LAX", DepartureDate: day, Passengers: 1},
			field: "from",
		},
		{
			name:  "destination too short",
			input: SearchInput{From: "JFK", To: "L", DepartureDate: day, Passengers: 1},
			field: "to",
		},
		{
			name:  "missing date",
			input: SearchInput{From: "JFK", To: "LAX", Passengers: 1},
			field: "departureDate",
		},
		{
			name:  "zero passengers",
			input: SearchInput{From: "JFK", To: "LAX", DepartureDate: day, Passengers: 0},
			field: "passengers",
		},
		{
			name:  "too many passengers",
			input: SearchInput{From: "JFK", To: "LAX", DepartureDate: day, Passengers: 11},
			field: "passengers",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := service.Search(ctx, tc.input)
			assert.Nil(t, got)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestFlightService_Search_DelegatesToRepo(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()
	day := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)

	mockRepo.On("Search", ctx, "JFK", "LAX", day).Return([]domain.Flight{{ID: 1}}, nil).Once()

	got, err := service.Search(ctx, SearchInput{From: "JFK", To: "LAX", DepartureDate: day, Passengers: 2})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Create_Validation(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)
	ctx := context.Background()

	flight := validFlight()
	flight.Price = "free"

	err := service.Create(ctx, flight)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")
}

func TestFlightService_Create_InvalidatesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)
	ctx := context.Background()

	flight := validFlight()
	mockRepo.On("Create", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	require.NoError(t, service.Create(ctx, flight))
	mockCache.AssertExpectations(t)
}

func TestFlightService_Update_RejectsBadPrice(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	price := "not-a-number"
	got, err := service.Update(ctx, 1, domain.FlightPatch{Price: &price})
	assert.Nil(t, got)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestFlightService_Update_PassesThroughSeatBoundError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	seats := 999
	patch := domain.FlightPatch{AvailableSeats: &seats}
	mockRepo.On("Update", ctx, int64(1), patch).Return(nil, domain.NewValidationError("availableSeats", "must be between 0 and totalSeats")).Once()

	got, err := service.Update(ctx, 1, patch)
	assert.Nil(t, got)

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestFlightService_Delete_InvalidatesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	require.NoError(t, service.Delete(ctx, 1))
	mockCache.AssertExpectations(t)
}

func TestFlightService_Delete_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(9)).Return(domain.ErrNotFound).Once()

	err := service.Delete(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_List_RepoError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.Flight(nil), errors.New("boom")).Once()

	got, err := service.List(ctx)
	assert.Nil(t, got)
	assert.Error(t, err)
}
