package repository

import (
	"context"
	"fmt"
	"reserva/internal/domains/booking/model"
	roomModel "reserva/internal/domains/room/model"
	gRepo "reserva/shared/repository"
	"slices"
	"sync"
)

// memoryImpl keeps bookings in process. Insert holds the lock across the
// overlap check and the append, so it gives the same guarantee as the
// exclusion constraint of the sql tables.
type memoryImpl struct {
	mu         sync.RWMutex
	partitions map[roomModel.Partition][]model.Booking
}

// NewMemory returns an empty in-process store with every partition present.
func NewMemory() Booking {
	partitions := map[roomModel.Partition][]model.Booking{}
	for _, partition := range roomModel.Partitions() {
		partitions[partition] = nil
	}

	return &memoryImpl{partitions: partitions}
}

func (m *memoryImpl) Insert(_ context.Context, partition roomModel.Partition, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.partitions[partition]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownPartition, partition)
	}

	for _, row := range rows {
		if row.Room == booking.Room && row.Day() == booking.Day() && row.Interval().Overlaps(booking.Interval()) {
			return model.ErrOverlap
		}
	}

	m.partitions[partition] = append(rows, booking)

	return nil
}

func (m *memoryImpl) Find(_ context.Context, partition roomModel.Partition, filter model.Filter) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.partitions[partition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownPartition, partition)
	}

	found := []model.Booking{}

	for _, row := range rows {
		if filter.Matches(row) {
			found = append(found, row)
		}
	}

	slices.SortStableFunc(found, model.Less)

	return found, nil
}

func (m *memoryImpl) Exist(ctx context.Context, partition roomModel.Partition, filter model.Filter) (bool, error) {
	if filter == (model.Filter{}) {
		return false, gRepo.ErrRequiredFilter
	}

	found, err := m.Find(ctx, partition, filter)

	return len(found) > 0, err
}

func (m *memoryImpl) Delete(_ context.Context, partition roomModel.Partition, filter model.Filter) (int64, error) {
	if filter == (model.Filter{}) {
		return 0, gRepo.ErrRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.partitions[partition]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnknownPartition, partition)
	}

	kept := rows[:0]
	for _, row := range rows {
		if !filter.Matches(row) {
			kept = append(kept, row)
		}
	}

	deleted := int64(len(rows) - len(kept))
	m.partitions[partition] = kept

	return deleted, nil
}

func (m *memoryImpl) Count(_ context.Context, partition roomModel.Partition) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.partitions[partition]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnknownPartition, partition)
	}

	return len(rows), nil
}

func (m *memoryImpl) Tables(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tables := make([]string, 0, len(m.partitions))
	for partition := range m.partitions {
		tables = append(tables, partition.String())
	}

	slices.Sort(tables)

	return tables, nil
}
