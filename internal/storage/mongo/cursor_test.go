package mongo

import (
	"testing"
	"time"

	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	oid := primitive.NewObjectID()

	token := encodeCursor(now, oid)
	require.NotEmpty(t, token)

	gotTime, gotID, err := decodeCursor(token)
	require.NoError(t, err)
	require.True(t, now.Equal(gotTime))
	require.Equal(t, oid, gotID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"no separator", "YWJj"},             // base64("abc")
		{"bad nanos", "eHx5"},                // base64("x|y")
		{"bad object id", "MTIzNHxub3RoZXg"}, // base64("1234|nothex")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := decodeCursor(tc.token)
			require.Error(t, err)
		})
	}
}

func TestLimitOrDefault(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Limits: config.LimitsConfig{Default: 20, Max: 100}}

	require.Equal(t, int64(20), limitOrDefault(cfg, 0))
	require.Equal(t, int64(20), limitOrDefault(cfg, -5))
	require.Equal(t, int64(50), limitOrDefault(cfg, 50))
	require.Equal(t, int64(100), limitOrDefault(cfg, 500))
}

func TestToMS_TruncatesToMillis(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 3, 14, 15, 9, 26, 535_897_932, time.UTC)
	require.Equal(t, time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC), toMS(in))
}
