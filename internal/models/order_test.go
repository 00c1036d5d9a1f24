package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancelledSetCoversLegacySpelling(t *testing.T) {
	assert.ElementsMatch(t, []string{"cancelled", "annulee"}, CancelledStatuses())
	assert.True(t, OrderCancelled.IsCancelled())
	assert.True(t, OrderStatus("annulee").IsCancelled())
	assert.False(t, OrderCompleted.IsCancelled())
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.True(t, OrderStatus("annulee").IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderStatus("preparing").IsTerminal(), "custom statuses stay open")
}
