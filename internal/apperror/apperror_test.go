package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vuhoang-dev/store-backend/internal/apperror"
)

func TestErrorKinds(t *testing.T) {
	t.Run("messages pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "không tìm thấy", apperror.NotFound("không tìm thấy").Error())
		assert.Equal(t, "đã tồn tại", apperror.AlreadyExists("đã tồn tại").Error())
		assert.Equal(t, "không hợp lệ", apperror.BadRequest("không hợp lệ").Error())
	})

	t.Run("kind checks match only their own kind", func(t *testing.T) {
		notFound := apperror.NotFound("x")
		exists := apperror.AlreadyExists("x")
		bad := apperror.BadRequest("x")

		assert.True(t, apperror.IsNotFound(notFound))
		assert.False(t, apperror.IsNotFound(exists))
		assert.False(t, apperror.IsNotFound(bad))

		assert.True(t, apperror.IsAlreadyExists(exists))
		assert.False(t, apperror.IsAlreadyExists(notFound))

		assert.True(t, apperror.IsBadRequest(bad))
		assert.False(t, apperror.IsBadRequest(exists))

		assert.False(t, apperror.IsNotFound(errors.New("x")))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("handling request: %w", apperror.NotFound("x"))
		assert.True(t, apperror.IsNotFound(wrapped))
	})
}
