package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/battle"
	"github.com/udisondev/streakarena/internal/config"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/game/combat"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *testutil.MockRepository) {
	t.Helper()
	weak := testutil.NewSnapshot(2, "Rival")
	weak.Attack = 10
	weak.Defense = 5
	weak.MaxHP = 100
	weak.CurrentHP = 100
	weak.Speed = 1

	repo := testutil.NewMockRepository(testutil.NewSnapshot(1, "Hero"), weak)
	engine := combat.NewEngine(config.DefaultBattle(), data.DefaultCatalog())
	svc := battle.NewService(engine, repo)
	return NewRouter(NewHandler(svc)), repo
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFight(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/characters/1/battles", map[string]any{"enemy_level": 10, "seed": 42})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp battleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Won)
	assert.Equal(t, int64(1), resp.Streak)
	assert.NotEmpty(t, resp.Log)
	assert.NotEqual(t, "0", resp.Exp)
	require.NotNil(t, resp.Monster)
	assert.Equal(t, int64(1), repo.Get(1).Streak)
}

func TestFight_EmptyBody(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/characters/1/battles", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestFight_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body any
		code int
	}{
		{"bad id", "/characters/abc/battles", nil, http.StatusBadRequest},
		{"negative id", "/characters/-3/battles", nil, http.StatusBadRequest},
		{"missing character", "/characters/404/battles", nil, http.StatusNotFound},
		{"negative level", "/characters/1/battles", map[string]any{"enemy_level": -1}, http.StatusBadRequest},
		{"bad json", "/characters/1/battles", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestDuel(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/duels", map[string]any{"challenger_id": 1, "opponent_id": 2, "seed": 9})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp duelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.WinnerID)
	assert.False(t, resp.Draw)
	assert.Equal(t, int64(0), repo.Get(2).CurrentHP)
}

func TestDuel_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/duels", map[string]any{"challenger_id": 1, "opponent_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/duels", map[string]any{"challenger_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/duels", map[string]any{"challenger_id": 1, "opponent_id": 77})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewMonster(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/monsters/30?streak=60&seed=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var m model.Monster
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "Legendary", m.Rank)
	assert.Positive(t, m.HP)
	assert.Equal(t, 0, repo.Saves())

	for _, path := range []string{"/monsters/0", "/monsters/x", "/monsters/10?streak=-1", "/monsters/10?seed=z"} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}
