package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamError(t *testing.T) {
	t.Run("Zero status defaults to 500", func(t *testing.T) {
		err := NewUpstreamError("remote failure", 0, nil)
		assert.Equal(t, 500, err.StatusCode)
		assert.Equal(t, ErrorKindUpstream, err.Kind)
	})

	t.Run("Upstream 404 keeps not-found semantics", func(t *testing.T) {
		err := NewUpstreamError("store not found", 404, nil)
		assert.Equal(t, ErrorKindNotFound, err.Kind)
		assert.True(t, IsNotFound(err))
	})

	t.Run("Status code passes through verbatim", func(t *testing.T) {
		err := NewUpstreamError("bad gateway", 502, map[string]string{"reason": "upstream"})
		assert.Equal(t, 502, err.StatusCode)
		assert.NotNil(t, err.Details)
	})
}

func TestAsApiError(t *testing.T) {
	t.Run("Unwraps through fmt.Errorf", func(t *testing.T) {
		inner := NewQuotaExceededError("quota exceeded", nil)
		wrapped := fmt.Errorf("query failed: %w", inner)

		apiErr, ok := AsApiError(wrapped)
		require.True(t, ok)
		assert.Equal(t, ErrorKindQuotaExceeded, apiErr.Kind)
		assert.Equal(t, 429, apiErr.StatusCode)
	})

	t.Run("Plain errors are not api errors", func(t *testing.T) {
		_, ok := AsApiError(fmt.Errorf("plain"))
		assert.False(t, ok)
	})
}

func TestDocumentIsDeletable(t *testing.T) {
	cases := []struct {
		state     DocumentState
		deletable bool
	}{
		{DocumentStatePending, false},
		{DocumentStateActive, false},
		{DocumentStateFailed, true},
	}
	for _, tc := range cases {
		doc := &Document{State: tc.state}
		assert.Equal(t, tc.deletable, doc.IsDeletable(), "state %s", tc.state)
	}
}
