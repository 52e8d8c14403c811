package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withGiven := WithTraceID(ctx, "req-42")
	assert.Equal(t, "req-42", GetTraceID(withGiven))

	generated := GetTraceID(WithTraceID(ctx, ""))
	_, err := uuid.Parse(generated)
	assert.NoError(t, err, "empty trace IDs are replaced with a uuid")
	assert.NotEqual(t, generated, GetTraceID(WithTraceID(ctx, "")))

	assert.Empty(t, GetTraceID(context.WithValue(ctx, TraceIDKey, 123)), "non-string values are ignored")
}

func TestUserID(t *testing.T) {
	t.Parallel()

	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok, "nil user ID is not authenticated")

	id := uuid.New()
	got, ok := GetUserID(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
