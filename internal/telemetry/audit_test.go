package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"social-service/internal/mocks"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.social", "social-service", "test")

	userID := "aaaaaaaaaaaaaaaaaaaaaaaa"
	publisher.On("Publish", mock.Anything, "audit.social", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		return ok &&
			envelope.EventType == "audit_log" &&
			envelope.Service == "social-service" &&
			envelope.RequestID == "req-1" &&
			envelope.UserID != nil && *envelope.UserID == userID &&
			envelope.Payload.Level == "INFO"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "INFO", "something happened", "req-1", &userID)
	publisher.AssertExpectations(t)
}

func TestEmitNilEmitterIsSafe(t *testing.T) {
	var emitter *AuditEmitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "INFO", "ignored", "req-1", nil)
	})
}
