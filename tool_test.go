package toolstream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwojcik/toolstream"
)

func TestHandlerFunc_Invoke(t *testing.T) {
	t.Parallel()

	errDomain := errors.New("out of dice")
	h := toolstream.HandlerFunc(func(_ context.Context, input map[string]any) (any, error) {
		if input["sides"] == nil {
			return nil, errDomain
		}
		return input["sides"], nil
	})

	result, err := h.Invoke(context.Background(), map[string]any{"sides": 20})
	require.NoError(t, err)
	assert.Equal(t, 20, result)

	_, err = h.Invoke(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, errDomain)
}
