package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunohmachado/barbearia-api/internal/models"
)

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        7,
		BarberID:  2,
		StartTime: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 14, 40, 0, 0, time.UTC),
		Status:    "confirmed",
		Notes:     "máquina 2",
	}
}

func TestSnapshot(t *testing.T) {
	snap := Snapshot(sampleAppointment())

	assert.Equal(t, "confirmed", snap["status"])
	assert.Equal(t, "2026-09-10T14:00:00Z", snap["start_time"])
	assert.Equal(t, "2026-09-10T14:40:00Z", snap["end_time"])
	assert.Equal(t, uint(2), snap["barber_id"])
	assert.Equal(t, "máquina 2", snap["notes"])

	// sem id nem dados do cliente
	assert.NotContains(t, snap, "id")
	assert.NotContains(t, snap, "client_name")
}

func TestNewEntry_Creation(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	entry := NewEntry(sampleAppointment(), ActionCreated, "client", nil, now)

	assert.Equal(t, uint(7), entry.AppointmentID)
	assert.Equal(t, "CREATED", entry.Action)
	assert.Equal(t, "client", entry.PerformedBy)
	assert.Equal(t, now, entry.PerformedAt)
	assert.Empty(t, entry.BeforeState)

	var after map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.AfterState), &after))
	assert.Equal(t, "confirmed", after["status"])
}

func TestNewEntry_Mutation(t *testing.T) {
	ap := sampleAppointment()
	before := Snapshot(ap)
	ap.Status = "cancelled_by_admin"

	entry := NewEntry(ap, ActionCancelledByAdmin, "admin:1", before, time.Now())

	var b, a map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.BeforeState), &b))
	require.NoError(t, json.Unmarshal([]byte(entry.AfterState), &a))

	assert.Equal(t, "confirmed", b["status"])
	assert.Equal(t, "cancelled_by_admin", a["status"])
}

func TestActionStatusChanged(t *testing.T) {
	assert.Equal(t, "STATUS_CHANGED_TO_COMPLETED", ActionStatusChanged("COMPLETED"))
	assert.Equal(t, "STATUS_CHANGED_TO_NO_SHOW", ActionStatusChanged("NO_SHOW"))
}
