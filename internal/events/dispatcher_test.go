package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hospital-console/internal/events"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	var got []events.EventType
	d.Subscribe(events.EventSessionLoggedOut, func(_ context.Context, e events.Event) error {
		got = append(got, e.Type)
		return nil
	})

	err := d.Publish(context.Background(), events.NewEvent(events.EventSessionLoggedOut, time.Now()))
	assert.NoError(t, err)
	assert.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, time.Now())))

	assert.Equal(t, []events.EventType{events.EventSessionLoggedOut}, got)
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		calls++
		return boom
	})
	d.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, time.Now()))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "a failing handler must not stop the others")
}

func TestNewEventHasID(t *testing.T) {
	a := events.NewEvent(events.EventSessionRestored, time.Now())
	b := events.NewEvent(events.EventSessionRestored, time.Now())

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
