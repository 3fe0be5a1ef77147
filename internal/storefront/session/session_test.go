package session

import (
	"context"
	"testing"

	"golang-storefront/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Authenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Authenticated())
	assert.False(t, (&Session{Email: "  "}).Authenticated())
	assert.True(t, (&Session{Email: "ada@example.com"}).Authenticated())
	assert.Equal(t, "", nilSession.Key())
}

func TestManager_NotifiesOnlyOnIdentityChange(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	var events []string
	m.OnChange(func(_ context.Context, s *Session) {
		if s == nil {
			events = append(events, "out")
			return
		}
		events = append(events, s.Email)
	})

	assert.True(t, m.SignIn(ctx, Session{Email: "ada@example.com", Name: "Ada"}))
	assert.False(t, m.SignIn(ctx, Session{Email: "ada@example.com", Name: "Ada L."}))
	assert.True(t, m.SignIn(ctx, Session{Email: "bob@example.com"}))
	assert.True(t, m.SignOut(ctx))
	assert.False(t, m.SignOut(ctx))

	assert.Equal(t, []string{"ada@example.com", "bob@example.com", "out"}, events)
}

func TestManager_CurrentReflectsLatestSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	_, ok := m.Current()
	assert.False(t, ok)

	m.SignIn(ctx, Session{Email: "ada@example.com", Name: "Ada"})
	m.SignIn(ctx, Session{Email: "ada@example.com", Name: "Ada L."})

	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "Ada L.", s.Name)
}

func TestManager_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	var keys []string
	m.OnChange(func(_ context.Context, s *Session) {
		keys = append(keys, s.Key())
	})

	assert.True(t, m.SignIn(ctx, Session{Email: " Ada@Example.COM "}))
	assert.False(t, m.SignIn(ctx, Session{Email: "ada@example.com"}))

	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", s.Email)
	assert.Equal(t, []string{"ada@example.com"}, keys)
}

func TestManager_AnonymousSignInSignsOut(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	m.SignIn(ctx, Session{Email: "ada@example.com"})

	assert.True(t, m.SignIn(ctx, Session{}))
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestBridge_Exchange(t *testing.T) {
	tokens := auth.NewJWTManager("secret", 1, 30)
	bridge := NewBridge(tokens)

	token, err := tokens.GenerateToken(auth.Identity{Email: "ada@example.com", Name: "Ada", Image: "a.png"})
	require.NoError(t, err)

	s, err := bridge.Exchange(token)
	require.NoError(t, err)
	assert.Equal(t, Session{Email: "ada@example.com", Name: "Ada", Image: "a.png", Provider: ProviderCredentials}, s)
}

func TestBridge_RejectsRefreshAndGarbage(t *testing.T) {
	tokens := auth.NewJWTManager("secret", 1, 30)
	bridge := NewBridge(tokens)

	pair, err := tokens.GenerateTokenPair(auth.Identity{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = bridge.Exchange(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = bridge.Exchange("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
