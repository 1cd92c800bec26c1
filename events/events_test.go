package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEmitterAndGlobalSubscriptions publishes events through several emitters and checks that emitter-local
// handlers only observe their own emitter while global handlers observe every emitter of the event type.
func TestEmitterAndGlobalSubscriptions(t *testing.T) {
	type artifactEvent struct{ path string }
	type summaryEvent struct{}

	var first, second EventEmitter[artifactEvent]
	var summaries EventEmitter[summaryEvent]

	var firstCount, secondCount, summaryCount, globalArtifactCount int
	first.Subscribe(func(event artifactEvent) error {
		firstCount++
		return nil
	})
	second.Subscribe(func(event artifactEvent) error {
		secondCount++
		return nil
	})
	summaries.Subscribe(func(event summaryEvent) error {
		summaryCount++
		return nil
	})
	SubscribeAny(func(event artifactEvent) error {
		globalArtifactCount++
		return nil
	})

	publishes := []struct {
		emitter *EventEmitter[artifactEvent]
		times   int
	}{
		{&first, 3},
		{&second, 4},
	}
	for _, p := range publishes {
		for i := 0; i < p.times; i++ {
			require.NoError(t, p.emitter.Publish(artifactEvent{path: "Demo.sln"}))
		}
	}
	require.NoError(t, summaries.Publish(summaryEvent{}))

	assert.EqualValues(t, 3, firstCount)
	assert.EqualValues(t, 4, secondCount)
	assert.EqualValues(t, 1, summaryCount)
	assert.EqualValues(t, 7, globalArtifactCount)
	assert.EqualValues(t, 1, first.SubscriptionCount())
}

// TestPublishStopsOnHandlerError verifies the first handler error is returned and later handlers are skipped.
func TestPublishStopsOnHandlerError(t *testing.T) {
	type failingEvent struct{}

	var emitter EventEmitter[failingEvent]
	handlerErr := errors.New("handler failed")
	laterCalled := false
	emitter.Subscribe(func(event failingEvent) error {
		return handlerErr
	})
	emitter.Subscribe(func(event failingEvent) error {
		laterCalled = true
		return nil
	})

	err := emitter.Publish(failingEvent{})
	assert.ErrorIs(t, err, handlerErr)
	assert.False(t, laterCalled)
}
