package checkoutControllers

import (
	"testing"

	"github.com/innomatricstech/Sadhana-Cart-ecom/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsDropReleasesGatewayOrderBinding(t *testing.T) {
	s := NewSessions()
	s.put("u1", &checkout.Orchestrator{UserID: "u1"})
	s.bindGatewayOrder("order_gw_1", "u1")

	userID, ok := s.userForGatewayOrder("order_gw_1")
	require.True(t, ok)
	require.Equal(t, "u1", userID)

	s.drop("u1")

	_, ok = s.get("u1")
	assert.False(t, ok)
	_, ok = s.userForGatewayOrder("order_gw_1")
	assert.False(t, ok, "a dropped session leaves no gateway binding behind")
}

func TestSessionsDropLeavesOtherUsersBindings(t *testing.T) {
	s := NewSessions()
	s.put("u1", &checkout.Orchestrator{UserID: "u1"})
	s.put("u2", &checkout.Orchestrator{UserID: "u2"})
	s.bindGatewayOrder("order_gw_1", "u1")
	s.bindGatewayOrder("order_gw_2", "u2")

	s.drop("u1")

	userID, ok := s.userForGatewayOrder("order_gw_2")
	assert.True(t, ok)
	assert.Equal(t, "u2", userID)
}
