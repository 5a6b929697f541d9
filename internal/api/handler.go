package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/udisondev/streakarena/internal/battle"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/game/combat"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
)

// Arena is the battle surface the handlers call.
type Arena interface {
	Fight(ctx context.Context, req battle.FightRequest) (*combat.BattleOutcome, error)
	Duel(ctx context.Context, aID, bID int64, seed *int64) (*combat.DuelOutcome, error)
	Preview(level int32, streak int64, seed int64) (*model.Monster, error)
}

// Handler serves battle endpoints.
type Handler struct {
	arena Arena
}

// NewHandler creates a handler over arena.
func NewHandler(arena Arena) *Handler {
	return &Handler{arena: arena}
}

// Register mounts the handler routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/characters/:id/battles", h.fight)
	r.POST("/duels", h.duel)
	r.GET("/monsters/:level", h.previewMonster)
}

type fightRequest struct {
	EnemyLevel int32  `json:"enemy_level"`
	Seed       *int64 `json:"seed"`
}

type duelRequest struct {
	ChallengerID int64  `json:"challenger_id" binding:"required"`
	OpponentID   int64  `json:"opponent_id" binding:"required"`
	Seed         *int64 `json:"seed"`
}

type battleResponse struct {
	Won        bool              `json:"won"`
	TimedOut   bool              `json:"timed_out"`
	Turns      int               `json:"turns"`
	FinalHP    int64             `json:"final_hp"`
	Monster    *model.Monster    `json:"monster"`
	Exp        string            `json:"exp"`
	Coins      string            `json:"coins"`
	Streak     int64             `json:"streak"`
	Level      int32             `json:"level"`
	LeveledUp  bool              `json:"leveled_up"`
	Milestones []model.Milestone `json:"milestones,omitempty"`
	Drops      []model.Drop      `json:"drops,omitempty"`
	Log        []string          `json:"log"`
}

type duelResponse struct {
	WinnerID int64    `json:"winner_id,omitempty"`
	Draw     bool     `json:"draw"`
	Turns    int      `json:"turns"`
	Log      []string `json:"log"`
}

func (h *Handler) fight(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character id"})
		return
	}

	var req fightRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.EnemyLevel < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enemy_level must be >= 0"})
		return
	}

	out, err := h.arena.Fight(c.Request.Context(), battle.FightRequest{
		CharacterID: id,
		EnemyLevel:  req.EnemyLevel,
		Seed:        req.Seed,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, battleResponse{
		Won:        out.Won,
		TimedOut:   out.TimedOut,
		Turns:      out.Turns,
		FinalHP:    out.FinalHP,
		Monster:    out.Monster,
		Exp:        out.Exp.String(),
		Coins:      out.Coins.String(),
		Streak:     out.NewStreak,
		Level:      out.LevelUp.NewLevel,
		LeveledUp:  out.LevelUp.Leveled(),
		Milestones: out.Milestones,
		Drops:      out.Drops,
		Log:        out.Log,
	})
}

func (h *Handler) duel(c *gin.Context) {
	var req duelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ChallengerID == req.OpponentID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a character cannot duel itself"})
		return
	}

	out, err := h.arena.Duel(c.Request.Context(), req.ChallengerID, req.OpponentID, req.Seed)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, duelResponse{
		WinnerID: out.WinnerID,
		Draw:     out.Draw,
		Turns:    out.Turns,
		Log:      out.Log,
	})
}

func (h *Handler) previewMonster(c *gin.Context) {
	level, err := strconv.ParseInt(c.Param("level"), 10, 32)
	if err != nil || level < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
		return
	}
	streak, err := strconv.ParseInt(c.DefaultQuery("streak", "0"), 10, 64)
	if err != nil || streak < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid streak"})
		return
	}

	var seed int64
	if s := c.Query("seed"); s != "" {
		if seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
			return
		}
	} else if seed, err = rng.NewSeed(); err != nil {
		writeError(c, err)
		return
	}

	m, err := h.arena.Preview(int32(level), streak, seed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, battle.ErrCharacterNotFound), errors.Is(err, data.ErrMonsterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
