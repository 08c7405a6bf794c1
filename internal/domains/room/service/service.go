package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"reserva/config"
	"reserva/internal/domains/room/model"
	"reserva/internal/domains/room/model/dto"
	"reserva/shared/clock"
)

const msgRoomsListed = "Salones disponibles"

// Room is the registry every other domain routes through. It has no storage,
// the set of rooms is fixed at build time.
type Room interface {
	ResolvePartition(name string) model.Partition
	IsValidRoom(name string) bool
	Canonical(name string) (model.Room, bool)
	Partitions() []model.Partition
	GetAll() dto.GetRoomsResponse
}

type serviceImpl struct {
	cfg *config.Config
}

func New(cfg *config.Config) Room {
	return &serviceImpl{
		cfg: cfg,
	}
}

func (s *serviceImpl) ResolvePartition(name string) model.Partition {
	return model.ResolvePartition(name)
}

func (s *serviceImpl) IsValidRoom(name string) bool {
	return model.IsValidRoom(name)
}

func (s *serviceImpl) Canonical(name string) (model.Room, bool) {
	return model.Lookup(name)
}

func (s *serviceImpl) Partitions() []model.Partition {
	return model.Partitions()
}

func (s *serviceImpl) GetAll() dto.GetRoomsResponse {
	res := dto.GetRoomsResponse{Message: msgRoomsListed}
	res.FromModels(model.All(), clock.New(s.cfg.Booking.OpenHour, 0), clock.New(s.cfg.Booking.CloseHour, 0))

	return res
}
