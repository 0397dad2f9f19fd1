package ws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_DistinctUsers(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	alice := uuid.New()
	bob := uuid.New()

	r.Connect(alice)
	r.Connect(bob)
	assert.Equal(t, 2, r.CountActiveUsers())

	r.Disconnect(alice)
	assert.Equal(t, 1, r.CountActiveUsers())
	assert.False(t, r.IsOnline(alice))
	assert.True(t, r.IsOnline(bob))
}

func TestRegistry_MultipleTabsCountOnce(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	alice := uuid.New()

	r.Connect(alice)
	r.Connect(alice)
	r.Connect(alice)
	assert.Equal(t, 1, r.CountActiveUsers())

	r.Disconnect(alice)
	r.Disconnect(alice)
	assert.True(t, r.IsOnline(alice), "one tab still open")

	r.Disconnect(alice)
	assert.Equal(t, 0, r.CountActiveUsers())
}

func TestRegistry_DisconnectUnknownIsNoop(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Disconnect(uuid.New())
	assert.Equal(t, 0, r.CountActiveUsers())
}
