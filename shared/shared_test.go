package shared_test

import (
	"context"
	"errors"
	"reserva/shared"
	cacheMocks "reserva/shared/cache/mocks"
	"reserva/shared/constant"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{name: "prefix only", prefix: "booking:availability", expected: "booking:availability"},
		{name: "single part", prefix: "booking:availability", parts: []string{"Sala de Juntas"}, expected: "booking:availability:Sala de Juntas"},
		{name: "empty part keeps its slot", prefix: "booking:calendar", parts: []string{"", "2024-06-01"}, expected: "booking:calendar::2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.BuildCacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	type filter struct {
		Room string `json:"salon"`
		Date string `json:"fecha"`
	}

	first := shared.BuildCacheKeyWithQuery("booking:query", filter{Room: "Auditorio Principal", Date: "2024-06-01"})
	again := shared.BuildCacheKeyWithQuery("booking:query", filter{Room: "Auditorio Principal", Date: "2024-06-01"})
	other := shared.BuildCacheKeyWithQuery("booking:query", filter{Room: "Auditorio Principal", Date: "2024-06-02"})

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "booking:query:"))
	assert.Len(t, strings.TrimPrefix(first, "booking:query:"), 16)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	t.Run("clears by prefix pattern", func(t *testing.T) {
		mockCache.EXPECT().Clear(gomock.Any(), "booking:query*").Return(nil)

		shared.InvalidateCaches(context.Background(), mockCache, "booking:query")
	})

	t.Run("swallows cache errors", func(t *testing.T) {
		mockCache.EXPECT().Clear(gomock.Any(), "booking:calendar*").Return(errors.New("redis down"))

		assert.NotPanics(t, func() {
			shared.InvalidateCaches(context.Background(), mockCache, "booking:calendar")
		})
	})
}

func TestUserFromContext(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, shared.UserFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "ana")
	assert.Equal(t, "ana", shared.UserFromContext(ctx))
}
