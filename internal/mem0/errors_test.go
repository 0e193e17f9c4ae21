package mem0

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable_NetworkConditions(t *testing.T) {
	assert.True(t, IsRetryable(NewNetworkError("https://api.mem0.ai", "request failed", syscall.ECONNRESET)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(syscall.ECONNREFUSED))
	assert.True(t, IsRetryable(syscall.EPIPE))
	assert.True(t, IsRetryable(io.ErrUnexpectedEOF))
	assert.True(t, IsRetryable(&net.OpError{Op: "dial", Err: errors.New("no route to host")}))
}

func TestIsRetryable_WrappedErrors(t *testing.T) {
	wrapped := WrapError(NewNetworkError("https://api.mem0.ai", "read failed", io.ErrUnexpectedEOF), "add operation")
	assert.True(t, IsRetryable(wrapped))
}

func TestIsRetryable_TerminalConditions(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(NewHTTPError(400, "bad request", "https://api.mem0.ai/v1/memories/")))
	assert.False(t, IsRetryable(NewHTTPError(500, "internal error", "https://api.mem0.ai/v1/memories/")))
	assert.False(t, IsRetryable(errors.New("validation failed")))
	assert.False(t, IsRetryable(context.Canceled))
}

func TestIsRetryable_HTTPErrorWinsOverWrapping(t *testing.T) {
	// A well-formed rejection stays terminal even when wrapped.
	wrapped := WrapError(NewHTTPError(503, "unavailable", "https://api.mem0.ai/v1/ping/"), "probe")
	assert.False(t, IsRetryable(wrapped))
}

func TestNeedsRebuild(t *testing.T) {
	assert.True(t, needsRebuild(syscall.ECONNRESET))
	assert.True(t, needsRebuild(syscall.ECONNREFUSED))
	assert.True(t, needsRebuild(syscall.EPIPE))
	assert.True(t, needsRebuild(io.ErrUnexpectedEOF))
	assert.True(t, needsRebuild(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.True(t, needsRebuild(&net.OpError{Op: "read", Err: errors.New("reset")}))

	assert.False(t, needsRebuild(nil))
	assert.False(t, needsRebuild(context.DeadlineExceeded))
	assert.False(t, needsRebuild(&net.OpError{Op: "write", Err: errors.New("broken")}))
}

func TestChunkWriteError_Unwrap(t *testing.T) {
	inner := NewNetworkError("https://api.mem0.ai", "reset", syscall.ECONNRESET)
	err := &ChunkWriteError{Sent: 2, Total: 5, Err: inner}

	assert.ErrorIs(t, err, syscall.ECONNRESET)
	assert.Contains(t, err.Error(), "2/5")
}

func TestRetriesExhaustedError_Unwrap(t *testing.T) {
	inner := NewNetworkError("https://api.mem0.ai", "timeout", context.DeadlineExceeded)
	err := &RetriesExhaustedError{Attempts: 6, Err: inner}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "6 attempts")
}
