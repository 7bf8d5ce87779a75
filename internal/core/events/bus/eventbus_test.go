package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()

	var got []Event
	sub, err := b.Subscribe("test.event", func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.True(t, sub.IsActive())

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", 42)))
	require.Len(t, got, 1)
	assert.Equal(t, "test.event", got[0].Type())
	assert.Equal(t, "tester", got[0].Source())
	assert.Equal(t, 42, got[0].Data())

	// Other types never reach this subscriber.
	require.NoError(t, b.Publish(NewEvent("other.event", "tester", nil)))
	assert.Len(t, got, 1)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()

	calls := 0
	sub, err := b.Subscribe("test.event", func(Event) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("test.event", "", nil)))
	require.NoError(t, b.Unsubscribe(sub))
	assert.False(t, sub.IsActive())

	require.NoError(t, b.Publish(NewEvent("test.event", "", nil)))
	assert.Equal(t, 1, calls)
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	wantErr := errors.New("handler failed")

	_, err := b.Subscribe("test.event", func(Event) error { return wantErr })
	require.NoError(t, err)
	_, err = b.Subscribe("test.event", func(Event) error { return nil })
	require.NoError(t, err)

	err = b.Publish(NewEvent("test.event", "", nil))
	assert.ErrorIs(t, err, wantErr)
}

func TestNilHandlerRejected(t *testing.T) {
	_, err := New().Subscribe("test.event", nil)
	assert.Error(t, err)
}
