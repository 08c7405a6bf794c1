package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"reserva/infras/otel"
	"reserva/infras/postgres"
	"reserva/internal/domains/booking/model"
	roomModel "reserva/internal/domains/room/model"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/logger"
	gRepo "reserva/shared/repository"

	"github.com/lib/pq"
)

var errUnknownPartition = errors.New("unknown partition")

const findOrder = "booking_date, start_time"

// Booking stores bookings in one table per partition.
type Booking interface {
	Insert(ctx context.Context, partition roomModel.Partition, booking model.Booking) error
	Find(ctx context.Context, partition roomModel.Partition, filter model.Filter) ([]model.Booking, error)
	Exist(ctx context.Context, partition roomModel.Partition, filter model.Filter) (bool, error)
	Delete(ctx context.Context, partition roomModel.Partition, filter model.Filter) (int64, error)
	Count(ctx context.Context, partition roomModel.Partition) (int, error)
	Tables(ctx context.Context) ([]string, error)
}

type repositoryImpl struct {
	partitions map[roomModel.Partition]*gRepo.Repository[model.Booking]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	partitions := map[roomModel.Partition]*gRepo.Repository[model.Booking]{}

	for _, partition := range roomModel.Partitions() {
		repo := gRepo.NewRepository[model.Booking](model.EntityName, partition.String(), model.FieldID, db, otel)
		partitions[partition] = &repo
	}

	return &repositoryImpl{
		partitions: partitions,
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) table(partition roomModel.Partition) (*gRepo.Repository[model.Booking], error) {
	repo, ok := r.partitions[partition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownPartition, partition)
	}

	return repo, nil
}

// Insert maps an exclusion constraint violation to model.ErrOverlap.
func (r *repositoryImpl) Insert(ctx context.Context, partition roomModel.Partition, booking model.Booking) error {
	repo, err := r.table(partition)
	if err != nil {
		return err
	}

	return insertError(repo.Insert(ctx, booking))
}

// insertError maps an exclusion constraint violation to model.ErrOverlap and
// passes every other error through.
func insertError(err error) error {
	if postgres.ErrorCode(err) == constant.PqErrorCodeExclusionViolation {
		return fmt.Errorf("%w: %w", model.ErrOverlap, err)
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) Find(ctx context.Context, partition roomModel.Partition, filter model.Filter) ([]model.Booking, error) {
	repo, err := r.table(partition)
	if err != nil {
		return nil, err
	}

	params := gDto.QueryParams{SortBy: findOrder, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter.FilterGroup(repo.Table())) //nolint:wrapcheck
}

func (r *repositoryImpl) Exist(ctx context.Context, partition roomModel.Partition, filter model.Filter) (bool, error) {
	repo, err := r.table(partition)
	if err != nil {
		return false, err
	}

	return repo.Exist(ctx, filter.FilterGroup(repo.Table())) //nolint:wrapcheck
}

func (r *repositoryImpl) Delete(ctx context.Context, partition roomModel.Partition, filter model.Filter) (int64, error) {
	repo, err := r.table(partition)
	if err != nil {
		return 0, err
	}

	return repo.Delete(ctx, filter.FilterGroup(repo.Table())) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, partition roomModel.Partition) (int, error) {
	repo, err := r.table(partition)
	if err != nil {
		return 0, err
	}

	return repo.Count(ctx, gDto.FilterGroup{}) //nolint:wrapcheck
}

// Tables returns which partition tables exist in the current schema.
func (r *repositoryImpl) Tables(ctx context.Context) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Tables")
	defer scope.End()

	expected := make([]string, 0, len(r.partitions))
	for _, partition := range roomModel.Partitions() {
		expected = append(expected, partition.String())
	}

	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = ANY($1)
		ORDER BY table_name`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	tables := []string{}

	err := r.db.Read.SelectContext(ctx, &tables, query, pq.Array(expected))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return tables, nil
}
