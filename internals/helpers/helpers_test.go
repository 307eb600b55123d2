package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"competition_portal_backend/internals/configs"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(25, 2, 10)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 10, p.Limit)
	require.EqualValues(t, 25, p.Total)
	require.Equal(t, 3, p.TotalPages)

	p = BuildPagination(0, 1, 10)
	require.Equal(t, 1, p.TotalPages)

	p = BuildPagination(10, 1, 10)
	require.Equal(t, 1, p.TotalPages)
}

func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("report.PDF")
	require.True(t, strings.HasSuffix(name, ".pdf"))
	require.NotEqual(t, GenerateUniqueFilename("report.PDF"), name)

	// Hostile extensions are dropped rather than preserved.
	name = GenerateUniqueFilename("weird.averylongextension")
	require.NotContains(t, name, "averylongextension")

	name = GenerateUniqueFilename("no_extension")
	require.NotContains(t, name, ".")
}

func TestSafeArchiveName(t *testing.T) {
	require.Equal(t, "a_b_c", SafeArchiveName(`a/b\c`))
	require.Equal(t, "Alice Zhang_20250001", SafeArchiveName("Alice   Zhang_20250001"))
	require.Equal(t, "name_", SafeArchiveName(`name?`))

	long := strings.Repeat("x", 200)
	require.Len(t, SafeArchiveName(long), 80)
}

func TestTokenRoundTrip(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour

	id := uuid.New()
	token, err := GenerateToken(id, "alice", "alice@example.com", "user")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, id, claims.ID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "user", claims.Role)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour

	token, err := GenerateToken(uuid.New(), "alice", "alice@example.com", "user")
	require.NoError(t, err)

	configs.JWTSecret = "different-secret"
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = -time.Minute

	token, err := GenerateToken(uuid.New(), "alice", "alice@example.com", "user")
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
}
