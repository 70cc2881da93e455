package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesStatusCode(t *testing.T) {
	err := NewTransport("upstream unavailable", 503, nil)
	assert.Equal(t, "transport error (status 503): upstream unavailable", err.Error())
}

func TestErrorMessageWithoutCode(t *testing.T) {
	err := NewInvalidRange("end before start")
	assert.Equal(t, "invalid_range error: end before start", err.Error())
}

func TestTypeClassification(t *testing.T) {
	assert.True(t, IsTransport(NewTransport("boom", 500, nil)))
	assert.True(t, IsInvalidRange(NewInvalidRange("bad")))
	assert.True(t, IsStorage(NewStorage("disk full", nil)))
	assert.False(t, IsTransport(NewStorage("disk full", nil)))
	assert.False(t, IsStorage(errors.New("plain")))
}

func TestClassificationThroughWrapping(t *testing.T) {
	inner := NewStorage("corrupt page", nil)
	wrapped := fmt.Errorf("collecting 2023-01-01: %w", inner)

	assert.True(t, IsStorage(wrapped))
	assert.False(t, IsTransport(wrapped))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransport("request failed", 0, cause)

	assert.True(t, errors.Is(err, cause))
}
