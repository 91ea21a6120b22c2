package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
)

var (
	admin = &Identity{ID: "a1", Role: model.RoleAdmin}
	guest = &Identity{ID: "u1", Role: model.RoleUser}
)

func TestAuthorizeAdminOperations(t *testing.T) {
	for _, op := range []Operation{OpCreateHotel, OpUpdateHotel, OpDeleteHotel, OpCreateRoom, OpUpdateRoom} {
		t.Run(string(op), func(t *testing.T) {
			assert.NoError(t, Authorize(op, admin))
			assert.Equal(t, apperror.CodeUnauthorized, apperror.CodeOf(Authorize(op, guest)))
			assert.Equal(t, apperror.CodeUnauthenticated, apperror.CodeOf(Authorize(op, nil)))
		})
	}
}

func TestAuthorizeAuthenticatedOperations(t *testing.T) {
	for _, op := range []Operation{OpMe, OpCreateBooking, OpUpdateBooking} {
		t.Run(string(op), func(t *testing.T) {
			assert.NoError(t, Authorize(op, guest))
			assert.NoError(t, Authorize(op, admin))
			assert.Equal(t, apperror.CodeUnauthenticated, apperror.CodeOf(Authorize(op, nil)))
		})
	}
}

func TestAuthorizePublicOperations(t *testing.T) {
	for _, op := range []Operation{OpSignup, OpLogin, OpHotels, OpHotel, OpRooms, OpRoom, OpBooking, OpBookings} {
		assert.NoError(t, Authorize(op, nil), op)
	}
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	assert.Equal(t, apperror.CodeUnauthorized, apperror.CodeOf(Authorize("dropDatabase", admin)))
}

func TestOperationsSorted(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, 18)
	assert.IsIncreasing(t, ops)
}
