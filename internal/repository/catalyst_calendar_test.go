package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
)

func TestCatalystCalendar_SetAndLookup(t *testing.T) {
	cal := NewCatalystCalendar()
	days := 5
	cal.Set("nvda", models.CatalystDescriptor{Type: "earnings", DaysToEvent: &days})

	// lookups are case-insensitive on the symbol
	event, err := cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "earnings", event.Type)

	missing, err := cal.Upcoming(context.Background(), "AMD")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalystCalendar_ReplaceAndRemove(t *testing.T) {
	cal := NewCatalystCalendar()
	cal.Set("NVDA", models.CatalystDescriptor{Type: "earnings"})
	cal.Set("NVDA", models.CatalystDescriptor{Type: "product_launch"})

	event, err := cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "product_launch", event.Type)

	cal.Remove("nvda")
	event, err = cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestCatalystCalendar_SnapshotIsACopy(t *testing.T) {
	cal := NewCatalystCalendar()
	cal.Set("NVDA", models.CatalystDescriptor{Type: "earnings"})

	snap := cal.Snapshot()
	require.Len(t, snap, 1)
	delete(snap, "NVDA")

	event, err := cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.NotNil(t, event)
}

func TestCatalystCalendar_ReturnedEventIsDetached(t *testing.T) {
	cal := NewCatalystCalendar()
	cal.Set("NVDA", models.CatalystDescriptor{Type: "earnings"})

	event, err := cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	event.Type = "mutated"

	fresh, err := cal.Upcoming(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, "earnings", fresh.Type)
}
