package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalCollaboratorsWithoutRedisOrKafka(t *testing.T) {
	infra := &Infra{}

	// The orchestrator compares against nil, so these must be untyped nil interfaces
	assert.True(t, ProvideClaimStore(infra) == nil)
	assert.True(t, ProvideEventPublisher(infra) == nil)

	limiters := ProvideLimiters(infra)
	assert.Nil(t, limiters.Auth)
	assert.Nil(t, limiters.Checkout)
}
