package dto

import (
	"reserva/internal/domains/room/model"
	"reserva/shared/clock"
)

type RoomResponse struct {
	Name      string   `json:"nombre"`
	Partition string   `json:"tabla"`
	Aliases   []string `json:"alias"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.Name = room.Name()
	r.Partition = room.Partition().String()
	r.Aliases = room.Aliases()
}

type ServiceWindowResponse struct {
	Open  clock.Clock `json:"apertura"`
	Close clock.Clock `json:"cierre"`
}

type GetRoomsResponse struct {
	Message string                `json:"mensaje"`
	Rooms   []RoomResponse        `json:"salones"`
	Window  ServiceWindowResponse `json:"horario_servicio"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room, opensAt, closesAt clock.Clock) {
	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}

	r.Window = ServiceWindowResponse{Open: opensAt, Close: closesAt}
}
