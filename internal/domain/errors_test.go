package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	t.Run("empty set yields nil error", func(t *testing.T) {
		fe := FieldErrors{}
		assert.NoError(t, fe.Err())
	})

	t.Run("last write wins", func(t *testing.T) {
		fe := FieldErrors{}
		fe.Add("name", "first")
		fe.Add("name", MsgRequired)

		assert.Len(t, fe, 1)
		assert.Equal(t, MsgRequired, fe["name"])
	})

	t.Run("error carries full set", func(t *testing.T) {
		fe := FieldErrors{}
		fe.Add("name", MsgRequired)
		fe.Add("email", MsgRequired)

		err := fe.Err()
		require.Error(t, err)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, FieldErrors{"name": MsgRequired, "email": MsgRequired}, ve.Errors)
		assert.Equal(t, "validation error: email: Field can't be empty; name: Field can't be empty", err.Error())
	})
}

func TestErrorClassification(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")

	tests := []struct {
		name        string
		err         error
		validation  bool
		persistence bool
		integrity   bool
	}{
		{
			name:       "validation",
			err:        FieldErrors{"name": MsgRequired}.Err(),
			validation: true,
		},
		{
			name:        "persistence",
			err:         NewPersistenceError("insert department", cause),
			persistence: true,
		},
		{
			name:      "integrity",
			err:       &IntegrityError{Op: "delete department", Msg: "still referenced", Err: cause},
			integrity: true,
		},
		{
			name:      "wrapped integrity",
			err:       fmt.Errorf("remove: %w", &IntegrityError{Op: "delete department", Err: cause}),
			integrity: true,
		},
		{
			name: "plain error",
			err:  cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.persistence, IsPersistence(tt.err))
			assert.Equal(t, tt.integrity, IsIntegrity(tt.err))
		})
	}
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewPersistenceError("update seller", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update seller: database is locked", err.Error())
}
