package model

import (
	"fmt"
	"reserva/shared/validator"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const (
	EntityName = "room"
)

// Partition names the physical table holding the bookings of one room.
type Partition string

const (
	PartitionAuditorium  Partition = "auditorio_reservas"
	PartitionMeetingRoom Partition = "sala_juntas_reservas"
	PartitionReserveRoom Partition = "sala_reserva_reservas"

	// DefaultPartition receives names that match no alias.
	DefaultPartition = PartitionAuditorium
)

// Room is the closed set of bookable rooms. The zero value is not a room.
type Room int

const (
	RoomUnknown Room = iota
	RoomMainAuditorium
	RoomMeetingRoom
	RoomReserveRoom
)

type definition struct {
	name      string
	partition Partition
	aliases   []string
}

var definitions = map[Room]definition{
	RoomMainAuditorium: {
		name:      "Auditorio Principal",
		partition: PartitionAuditorium,
		aliases:   []string{"auditorio principal", "auditorio", "main auditorium", "auditorium"},
	},
	RoomMeetingRoom: {
		name:      "Sala de Juntas",
		partition: PartitionMeetingRoom,
		aliases:   []string{"sala de juntas", "meeting room"},
	},
	RoomReserveRoom: {
		name:      "Sala de Reserva",
		partition: PartitionReserveRoom,
		aliases:   []string{"sala de reserva", "reserve room"},
	},
}

var (
	ordered = []Room{RoomMainAuditorium, RoomMeetingRoom, RoomReserveRoom}
	aliases = map[string]Room{}
)

func init() {
	for room, def := range definitions {
		for _, alias := range def.aliases {
			aliases[alias] = room
		}
	}

	validator.Register("salon", func(fl val.FieldLevel) bool {
		name, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		_, ok = Lookup(name)

		return ok
	})
}

// Normalize trims and lower-cases a user supplied room name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup maps any known alias to its room.
func Lookup(name string) (Room, bool) {
	room, ok := aliases[Normalize(name)]

	return room, ok
}

// ResolvePartition never fails: unknown names are routed to DefaultPartition.
// Callers that need strictness check IsValidRoom or Lookup first.
func ResolvePartition(name string) Partition {
	if room, ok := Lookup(name); ok {
		return room.Partition()
	}

	return DefaultPartition
}

func IsValidRoom(name string) bool {
	_, ok := Lookup(name)

	return ok
}

func All() []Room {
	return append([]Room(nil), ordered...)
}

func Partitions() []Partition {
	partitions := make([]Partition, 0, len(ordered))
	for _, room := range ordered {
		partitions = append(partitions, room.Partition())
	}

	return partitions
}

// Name is the canonical display name stored in the room column.
func (r Room) Name() string {
	return definitions[r].name
}

func (r Room) Partition() Partition {
	if def, ok := definitions[r]; ok {
		return def.partition
	}

	return DefaultPartition
}

func (r Room) Aliases() []string {
	return append([]string(nil), definitions[r].aliases...)
}

func (r Room) String() string {
	if name := r.Name(); name != "" {
		return name
	}

	return fmt.Sprintf("Room(%d)", int(r))
}

func (r Room) MarshalText() ([]byte, error) {
	if _, ok := definitions[r]; !ok {
		return nil, fmt.Errorf("unknown room %d", int(r))
	}

	return []byte(r.Name()), nil
}

func (r *Room) UnmarshalText(text []byte) error {
	room, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("unknown room %q", string(text))
	}

	*r = room

	return nil
}

func (p Partition) String() string {
	return string(p)
}
