package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codinglive/codinglive_app/internal/utils/pagination"
)

func TestEncodeDecodeToken(t *testing.T) {
	enrolledAt := time.Date(2025, 3, 14, 10, 30, 0, 123456789, time.UTC)
	id := "7f8d9a3c-1c2b-4e5f-9a0b-112233445566"

	token := pagination.EncodeToken(enrolledAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, enrolledAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("only-one-field"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
