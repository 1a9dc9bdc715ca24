package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/models"
)

func newTestManager() (*Manager, *MemoryStore) {
	store := newMemoryStore(time.Now)
	return NewManager(store, &config.SessionSettings{CookieName: "sid", TTL: time.Hour}), store
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestManager_NewVisitorGetsAnonymousSession(t *testing.T) {
	manager, store := newTestManager()

	var seen *Session
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.True(t, seen.IsNew())
	assert.False(t, seen.IsAuthenticated())
	assert.NotEmpty(t, seen.ID)
	assert.Empty(t, rec.Result().Cookies(), "Anonymous sessions are not persisted until needed")
	assert.Equal(t, 0, store.Len())
}

func TestManager_SaveAndReload(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	sess := manager.newSession()
	sess.SetUser(&models.User{ID: 7, Email: "ana@example.com", Name: "Ana"})

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Save(ctx, rec, sess))

	cookie := sessionCookie(t, rec)
	assert.Equal(t, sess.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded := manager.Load(req)

	assert.False(t, loaded.IsNew())
	user, ok := loaded.User()
	require.True(t, ok)
	assert.Equal(t, int64(7), user.UserID)
}

func TestManager_UnknownOrMalformedCookie(t *testing.T) {
	manager, _ := newTestManager()

	for _, value := range []string{"not-a-uuid", "0f8fad5b-d9cb-469f-a165-70867728950e"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: value})

		sess := manager.Load(req)
		assert.True(t, sess.IsNew())
		assert.NotEqual(t, value, sess.ID)
	}
}

func TestManager_RenewDropsOldID(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	sess := manager.newSession()
	require.NoError(t, manager.Save(ctx, httptest.NewRecorder(), sess))
	oldID := sess.ID

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Renew(ctx, rec, sess))

	assert.NotEqual(t, oldID, sess.ID)
	_, err := store.Get(ctx, oldID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, sessionCookie(t, rec).Value)
}

func TestManager_Destroy(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	sess := manager.newSession()
	sess.SetUser(&models.User{ID: 7})
	require.NoError(t, manager.Save(ctx, httptest.NewRecorder(), sess))

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Destroy(ctx, rec, sess))

	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, -1, sessionCookie(t, rec).MaxAge)
}

func TestManager_DestroyEndsReloadedSession(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	sess := manager.newSession()
	sess.SetUser(&models.User{ID: 7})
	saveRec := httptest.NewRecorder()
	require.NoError(t, manager.Save(ctx, saveRec, sess))
	cookie := sessionCookie(t, saveRec)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	loaded := manager.Load(req)
	require.False(t, loaded.IsNew())
	require.NoError(t, manager.Destroy(ctx, httptest.NewRecorder(), loaded))

	assert.Equal(t, 0, store.Len())

	replay := httptest.NewRequest(http.MethodGet, "/minhas_marcacoes", nil)
	replay.AddCookie(cookie)
	after := manager.Load(replay)
	assert.False(t, after.IsAuthenticated())
	assert.NotEqual(t, cookie.Value, after.ID)
}

func TestManager_RenewDropsReloadedID(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	sess := manager.newSession()
	saveRec := httptest.NewRecorder()
	require.NoError(t, manager.Save(ctx, saveRec, sess))
	cookie := sessionCookie(t, saveRec)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(cookie)
	loaded := manager.Load(req)
	loaded.SetUser(&models.User{ID: 3})
	require.NoError(t, manager.Renew(ctx, httptest.NewRecorder(), loaded))

	_, err := store.Get(ctx, cookie.Value)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	sess := FromContext(context.Background())
	require.NotNil(t, sess)
	assert.False(t, sess.IsAuthenticated())
}
