package termsheet

import (
	"context"
	"io"
	"strings"
	"testing"

	"termsheet-reconciler/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONObject(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidObject", func(t *testing.T) {
		client := new(mocks.Client)
		content := io.NopCloser(strings.NewReader(`{"isin": "US0378331005"}`))
		client.On("GetObject", ctx, "documents", "ts.json", mock.Anything).Return(content, nil)

		ts, err := LoadJSONObject(ctx, client, "documents", "ts.json")
		require.NoError(t, err)
		require.NotNil(t, ts.ISIN)
		assert.Equal(t, "US0378331005", *ts.ISIN)
		client.AssertExpectations(t)
	})

	t.Run("MalformedObject", func(t *testing.T) {
		client := new(mocks.Client)
		content := io.NopCloser(strings.NewReader(`not json`))
		client.On("GetObject", ctx, "documents", "bad.json", mock.Anything).Return(content, nil)

		_, err := LoadJSONObject(ctx, client, "documents", "bad.json")
		assert.Error(t, err)
	})
}
