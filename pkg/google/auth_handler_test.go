package google

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromRow(t *testing.T) {
	t.Run("completed flow yields a token", func(t *testing.T) {
		expiry := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

		token := tokenFromRow(
			pgtype.Text{String: "access", Valid: true},
			pgtype.Text{String: "refresh", Valid: true},
			pgtype.Int8{Int64: expiry.Unix(), Valid: true},
		)

		require.NotNil(t, token)
		assert.Equal(t, "access", token.AccessToken)
		assert.Equal(t, "refresh", token.RefreshToken)
		assert.True(t, token.Expiry.Equal(expiry))
	})

	t.Run("abandoned flow leaves NULL columns and no token", func(t *testing.T) {
		// OAuthLogin inserts the nonce row with all token columns NULL
		token := tokenFromRow(pgtype.Text{}, pgtype.Text{}, pgtype.Int8{})

		assert.Nil(t, token)
	})

	t.Run("empty access token counts as unauthenticated", func(t *testing.T) {
		token := tokenFromRow(
			pgtype.Text{String: "", Valid: true},
			pgtype.Text{String: "refresh", Valid: true},
			pgtype.Int8{Int64: 0, Valid: true},
		)

		assert.Nil(t, token)
	})
}
