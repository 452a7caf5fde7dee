package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunohmachado/barbearia-api/internal/httperr"
)

func TestStatusIsActive(t *testing.T) {
	assert.True(t, StatusScheduled.IsActive())
	assert.True(t, StatusConfirmed.IsActive())

	assert.False(t, StatusCancelledByClient.IsActive())
	assert.False(t, StatusCancelledByAdmin.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusNoShow.IsActive())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusConfirmed.IsValid())
	assert.False(t, Status("banana").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus())
}

func TestCanCancel(t *testing.T) {
	require.NoError(t, CanCancel(StatusConfirmed))
	require.NoError(t, CanCancel(StatusScheduled))

	for _, s := range []Status{StatusCancelledByClient, StatusCancelledByAdmin, StatusCompleted, StatusNoShow} {
		err := CanCancel(s)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
	}
}

func TestCanReschedule(t *testing.T) {
	require.NoError(t, CanReschedule(StatusConfirmed))

	err := CanReschedule(StatusCompleted)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestCanChangeStatus(t *testing.T) {
	require.NoError(t, CanChangeStatus(StatusConfirmed, StatusCompleted))
	require.NoError(t, CanChangeStatus(StatusScheduled, StatusNoShow))

	err := CanChangeStatus(StatusConfirmed, Status("wat"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))

	// terminal não muda mais
	err = CanChangeStatus(StatusCancelledByClient, StatusCompleted)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
}
