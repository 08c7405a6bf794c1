package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reserva/infras/otel/mocks"
	"reserva/internal/domains/booking/model/dto"
	"reserva/internal/domains/booking/repository"
	"reserva/internal/domains/booking/service"
	roomService "reserva/internal/domains/room/service"
	"reserva/shared/clock"
	"reserva/shared/failure"
)

func memoryService(t *testing.T) service.Booking {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := testConfig()

	return service.New(repository.NewMemory(), roomService.New(cfg), cfg, coldCache(ctrl), quietEvents(ctrl), mocks.NewOtel())
}

func TestScenario_OverlapIsRejected(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Sala de Juntas", "09:00", "10:00"))
	assert.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("Meeting Room", "09:30", "10:30"))
	assert.EqualError(t, err, "Ya existe una reserva en este horario. Intenta con otro horario.")
	assert.Equal(t, 409, failure.GetCode(err))

	conflict, err := svc.CheckConflict(ctx, "2024-06-01", "Sala de Juntas", clock.New(9, 30), clock.New(10, 30))
	assert.NoError(t, err)
	assert.True(t, conflict)
}

func TestScenario_AbuttingBookingsAreAccepted(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("auditorio", "09:00", "10:00"))
	assert.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("auditorio", "10:00", "11:00"))
	assert.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("auditorio", "08:00", "09:00"))
	assert.NoError(t, err)

	conflict, err := svc.CheckConflict(ctx, "2024-06-01", "auditorio", clock.New(11, 0), clock.New(12, 0))
	assert.NoError(t, err)
	assert.False(t, conflict)
}

func TestScenario_SameSlotInAnotherRoom(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("auditorio", "09:00", "10:00"))
	assert.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("sala de reserva", "09:00", "10:00"))
	assert.NoError(t, err)
}

func TestScenario_CheckConflictMatchesRoom(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("auditorio", "09:00", "10:00"))
	assert.NoError(t, err)

	tests := []struct {
		name     string
		room     string
		expected bool
	}{
		{name: "unknown room", room: "Terraza", expected: false},
		{name: "unknown room with padding", room: "  Terraza  ", expected: false},
		{name: "alias", room: "Auditorio", expected: true},
		{name: "english alias", room: "main auditorium", expected: true},
		{name: "canonical name", room: "Auditorio Principal", expected: true},
		{name: "other known room", room: "Sala de Juntas", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := svc.CheckConflict(ctx, "2024-06-01", tt.room, clock.New(9, 0), clock.New(10, 0))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, conflict)
		})
	}
}

func TestScenario_Availability(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("auditorio", "08:00", "10:00"))
	assert.NoError(t, err)

	slots, err := svc.Availability(ctx, dto.AvailabilityRequest{Room: "Auditorio Principal", Date: "2024-06-01"})
	assert.NoError(t, err)
	assert.Len(t, slots, 14)

	for _, slot := range slots {
		switch slot.Hour {
		case clock.New(8, 0), clock.New(9, 0):
			assert.False(t, slot.Available, slot.Hour.String())
			assert.Equal(t, "Ana", slot.BookedBy)
		default:
			assert.True(t, slot.Available, slot.Hour.String())
			assert.Empty(t, slot.BookedBy)
		}
	}

	other, err := svc.Availability(ctx, dto.AvailabilityRequest{Room: "Auditorio Principal", Date: "2024-06-02"})
	assert.NoError(t, err)

	for _, slot := range other {
		assert.True(t, slot.Available)
	}

	_, err = svc.Availability(ctx, dto.AvailabilityRequest{Room: "Terraza", Date: "2024-06-01"})
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestScenario_CancelThenNotFound(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("sala de juntas", "14:00", "15:00"))
	assert.NoError(t, err)

	req := dto.CancelBookingRequest{
		RequesterName: "Ana",
		Room:          "meeting room",
		Date:          "2024-06-01",
		StartTime:     "14:00",
		EndTime:       "15:00",
	}

	assert.NoError(t, svc.Cancel(ctx, req))

	err = svc.Cancel(ctx, req)
	assert.EqualError(t, err, "No se encontró una reserva con los datos proporcionados.")
	assert.Equal(t, 404, failure.GetCode(err))

	_, err = svc.Create(ctx, createRequest("sala de juntas", "14:00", "15:00"))
	assert.NoError(t, err, "a cancelled slot can be booked again")
}

func TestScenario_CancelByID(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("sala de reserva", "14:00", "15:00"))
	assert.NoError(t, err)

	assert.NoError(t, svc.CancelByID(ctx, created.ID))
	assert.Equal(t, 404, failure.GetCode(svc.CancelByID(ctx, created.ID)))
}

func TestScenario_QueryRoundTripAndIdempotence(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Sala de Juntas", "11:00", "12:30"))
	assert.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("Auditorio", "07:00", "08:00"))
	assert.NoError(t, err)

	first, err := svc.QueryByFilters(ctx, dto.BookingFilter{Room: "sala de juntas", Date: "2024-06-01"})
	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, created, first[0])
	assert.Equal(t, "11:00", first[0].StartTime.String())
	assert.Equal(t, "12:30", first[0].EndTime.String())

	second, err := svc.QueryByFilters(ctx, dto.BookingFilter{Room: "sala de juntas", Date: "2024-06-01"})
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	all, err := svc.QueryByFilters(ctx, dto.BookingFilter{DateFrom: "2024-06-01", DateTo: "2024-06-01"})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Auditorio Principal", all[0].Room)
	assert.Equal(t, "Sala de Juntas", all[1].Room)

	empty, err := svc.QueryByFilters(ctx, dto.BookingFilter{Room: "auditorio", Date: "2024-07-01"})
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestScenario_ConcurrentCreatesNeverOverlap(t *testing.T) {
	svc := memoryService(t)
	ctx := context.Background()

	const writers = 24

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			start := fmt.Sprintf("%02d:00", 9+i%3)
			end := fmt.Sprintf("%02d:30", 9+i%3)

			_, err := svc.Create(ctx, createRequest("auditorio", start, end))

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				created++

				return
			}

			assert.Equal(t, 409, failure.GetCode(err))
			conflicts++
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, created)
	assert.Equal(t, writers-3, conflicts)

	bookings, err := svc.QueryByFilters(ctx, dto.BookingFilter{Room: "auditorio", Date: "2024-06-01"})
	assert.NoError(t, err)
	assert.Len(t, bookings, 3)

	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			a := clock.Interval{Start: bookings[i].StartTime, End: bookings[i].EndTime}
			b := clock.Interval{Start: bookings[j].StartTime, End: bookings[j].EndTime}

			assert.False(t, a.Overlaps(b))
		}
	}
}
