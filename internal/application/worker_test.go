package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliverFunc func(context.Context, notification.Event) error

func (f deliverFunc) Deliver(ctx context.Context, e notification.Event) error {
	return f(ctx, e)
}

func TestEventHandlerDecodesAndDelivers(t *testing.T) {
	var got notification.Event
	h := EventHandler(deliverFunc(func(_ context.Context, e notification.Event) error {
		got = e
		return nil
	}))

	raw, err := json.Marshal(notification.Event{
		Category:        notification.CategoryFormReopened,
		RecipientUserID: "cust-1",
		FormID:          "form-1",
		Reason:          "missing size",
	})
	require.NoError(t, err)

	require.NoError(t, h(context.Background(), mq.Message{Key: []byte("form-1"), Value: raw}))
	assert.Equal(t, notification.CategoryFormReopened, got.Category)
	assert.Equal(t, "missing size", got.Reason)
}

func TestEventHandlerDropsGarbage(t *testing.T) {
	called := false
	h := EventHandler(deliverFunc(func(context.Context, notification.Event) error {
		called = true
		return nil
	}))

	assert.NoError(t, h(context.Background(), mq.Message{Value: []byte("{not json")}))
	assert.False(t, called)
}

func TestEventHandlerReturnsDeliveryError(t *testing.T) {
	h := EventHandler(deliverFunc(func(context.Context, notification.Event) error {
		return errors.New("db down")
	}))

	raw, _ := json.Marshal(notification.Event{Category: notification.CategoryFormAssigned, FormID: "f"})
	assert.EqualError(t, h(context.Background(), mq.Message{Value: raw}), "db down")
}
