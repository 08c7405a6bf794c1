package model_test

import (
	"encoding/json"
	"reserva/internal/domains/room/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePartition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.Partition
	}{
		{name: "canonical auditorium", input: "Auditorio Principal", expected: model.PartitionAuditorium},
		{name: "short auditorium", input: "auditorio", expected: model.PartitionAuditorium},
		{name: "english auditorium", input: "Main Auditorium", expected: model.PartitionAuditorium},
		{name: "meeting room with spaces", input: "  Meeting Room ", expected: model.PartitionMeetingRoom},
		{name: "sala de juntas", input: "SALA DE JUNTAS", expected: model.PartitionMeetingRoom},
		{name: "reserve room", input: "reserve room", expected: model.PartitionReserveRoom},
		{name: "sala de reserva", input: "Sala de Reserva", expected: model.PartitionReserveRoom},
		{name: "unknown falls back to default", input: "Cafeteria", expected: model.DefaultPartition},
		{name: "empty falls back to default", input: "", expected: model.DefaultPartition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.ResolvePartition(tt.input))
		})
	}
}

func TestIsValidRoom(t *testing.T) {
	assert.True(t, model.IsValidRoom("Meeting Room"))
	assert.True(t, model.IsValidRoom(" auditorium"))
	assert.False(t, model.IsValidRoom("Cafeteria"))
	assert.False(t, model.IsValidRoom("meetingroom"))
	assert.False(t, model.IsValidRoom(""))
}

func TestUnknownRoomIsRoutedButNotValid(t *testing.T) {
	name := "Sala 404"

	assert.False(t, model.IsValidRoom(name))
	assert.Equal(t, model.PartitionAuditorium, model.ResolvePartition(name))
}

func TestLookup(t *testing.T) {
	room, ok := model.Lookup("meeting room")

	assert.True(t, ok)
	assert.Equal(t, model.RoomMeetingRoom, room)
	assert.Equal(t, "Sala de Juntas", room.Name())
	assert.Equal(t, model.PartitionMeetingRoom, room.Partition())

	_, ok = model.Lookup("terraza")
	assert.False(t, ok)
}

func TestAllAndPartitions(t *testing.T) {
	rooms := model.All()

	assert.Equal(t, []model.Room{model.RoomMainAuditorium, model.RoomMeetingRoom, model.RoomReserveRoom}, rooms)
	assert.Equal(t, []model.Partition{
		model.PartitionAuditorium,
		model.PartitionMeetingRoom,
		model.PartitionReserveRoom,
	}, model.Partitions())

	rooms[0] = model.RoomUnknown
	assert.Equal(t, model.RoomMainAuditorium, model.All()[0])
}

func TestRoomText(t *testing.T) {
	out, err := json.Marshal(struct {
		Room model.Room `json:"salon"`
	}{Room: model.RoomReserveRoom})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"salon":"Sala de Reserva"}`, string(out))

	var in struct {
		Room model.Room `json:"salon"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"salon":"auditorium"}`), &in))
	assert.Equal(t, model.RoomMainAuditorium, in.Room)

	assert.Error(t, json.Unmarshal([]byte(`{"salon":"azotea"}`), &in))

	_, err = model.RoomUnknown.MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Room(0)", model.RoomUnknown.String())
}
