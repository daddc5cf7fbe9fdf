package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxTecnology/rede-trade-back/internal/utils/pagination"
)

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, time.June, 3, 14, 30, 12, 987654321, time.UTC)
	token := pagination.EncodeCursor(createdAt, "txn_42")

	gotAt, gotID, err := pagination.DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, gotAt.Equal(createdAt))
	assert.Equal(t, "txn_42", gotID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeCursor("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but no separator.
	_, _, err = pagination.DecodeCursor("aGVsbG8=")
	assert.Error(t, err)
}
