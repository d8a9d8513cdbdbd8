package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError_PassesDomainErrorThrough(t *testing.T) {
	err := NewConflict("email already exists!")
	mapped := ToDomainError(err)

	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "email already exists!", mapped.Message)
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainError_FiberError(t *testing.T) {
	mapped := ToDomainError(fiber.NewError(http.StatusTeapot, "teapot"))
	assert.Equal(t, http.StatusTeapot, mapped.HTTPStatus)
	assert.Equal(t, "teapot", mapped.Message)
}

func TestToDomainError_UnknownErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	mapped := ToDomainError(cause)

	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.NotContains(t, mapped.Message, "connection refused")
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
