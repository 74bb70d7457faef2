package tokens

import (
	"testing"
	"time"

	"yamdb/proj/internal/domain/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := New("secret", time.Hour)
	token, err := m.Issue(42, roles.Moderator)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, roles.Moderator, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejects(t *testing.T) {
	m := New("secret", time.Hour)
	token, err := m.Issue(1, roles.User)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := New("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("expired", func(t *testing.T) {
		expired := New("secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
