package api

import (
	"math/rand"
	"net/http"
	"unicode/utf8"

	"github.com/ericogr/trifate-cards/internal/constants"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/keys"
	"github.com/ericogr/trifate-cards/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateMatchPayload struct {
	PlayerName string `json:"player_name"`
	Name       string `json:"name"`
	Private    bool   `json:"private"`
	WinGoal    int    `json:"win_goal"`
	AnteMode   bool   `json:"ante_mode"`
	SkillMode  bool   `json:"skill_mode"`
	// Deck lists the card names the creator brings; its canonical
	// fingerprint groups leaderboard stats by deck.
	Deck []string `json:"deck"`
}

// CreateMatch creates a new match lobby and returns IDs, join code and
// the caller's peer UUID.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Derive identity from session
	email := sessionEmail(c)
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNameExceeds})
		return
	}

	winGoal := req.WinGoal
	if winGoal <= 0 {
		winGoal = h.defaultWinGoal
	}

	peerUUID := uuid.NewString()
	newMatch := game.Match{
		Name:      req.Name,
		Private:   req.Private,
		JoinCode:  generateJoinCode(),
		Seed:      rand.Int63(),
		WinGoal:   winGoal,
		AnteMode:  req.AnteMode,
		SkillMode: req.SkillMode,
		Status:    game.StatusWaiting,
		Message:   "Match created. Waiting for second player.",
		Players: []game.MatchPlayer{
			{PeerUUID: peerUUID, PlayerName: req.PlayerName, Email: email},
		},
	}

	// Upsert player profile (name/email/deck fingerprint)
	_ = h.repo.UpsertProfile(email, peerUUID, req.PlayerName, keys.DeckKeyFromNames(req.Deck))

	if err := h.repo.CreateMatch(&newMatch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_id":  newMatch.ID,
		"join_code": newMatch.JoinCode,
		"peer_uuid": peerUUID,
		"seed":      newMatch.Seed,
	})
}

type JoinMatchPayload struct {
	JoinCode   string   `json:"join_code"`
	PlayerName string   `json:"player_name"`
	Deck       []string `json:"deck"`
}

// JoinMatch seats a second peer in a lobby via join code.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	if len(m.Players) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		return
	}

	peerUUID := uuid.NewString()
	m.Players = append(m.Players, game.MatchPlayer{PeerUUID: peerUUID, PlayerName: req.PlayerName, Email: email})
	m.Message = "Second player joined. Waiting for the match to start."

	_ = h.repo.UpsertProfile(email, peerUUID, req.PlayerName, keys.DeckKeyFromNames(req.Deck))

	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id":  m.ID,
		"join_code": m.JoinCode,
		"peer_uuid": peerUUID,
		"seed":      m.Seed,
	})
}

// StartMatch flips a full lobby in progress and assigns sides.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	m, ok := h.matchFromCode(c)
	if !ok {
		return
	}
	if err := service.StartMatch(h.repo, m); err != nil {
		switch err {
		case service.ErrNotEnoughPlayers:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		case service.ErrMatchAlreadyStarted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStarted})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Match started"})
}

// LeaveMatch removes a peer from a waiting lobby.
func (h *MatchHandler) LeaveMatch(c *gin.Context) {
	m, ok := h.matchFromCode(c)
	if !ok {
		return
	}
	if m.Status != game.StatusWaiting {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterStart})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var leaving *game.MatchPlayer
	for i := range m.Players {
		if m.Players[i].Email == email {
			leaving = &m.Players[i]
			break
		}
	}
	if leaving == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}
	if err := h.repo.RemovePlayerByUUID(m.ID, leaving.PeerUUID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via
	// FullSaveAssociations.
	filtered := make([]game.MatchPlayer, 0, len(m.Players))
	for _, p := range m.Players {
		if p.PeerUUID != leaving.PeerUUID {
			filtered = append(filtered, p)
		}
	}
	m.Players = filtered
	m.Message = "A player left. Waiting for a new participant."
	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Player removed"})
}

type EndMatchPayload struct {
	WinnerPeerUUID   string `json:"winner_peer_uuid"`
	ResignedPeerUUID string `json:"resigned_peer_uuid"`
}

// EndMatch records the outcome both peers computed locally. The first
// report updates stats; the duplicate from the other peer is a no-op.
func (h *MatchHandler) EndMatch(c *gin.Context) {
	m, ok := h.matchFromCode(c)
	if !ok {
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	caller := false
	for i := range m.Players {
		if m.Players[i].Email == email {
			caller = true
			break
		}
	}
	if !caller {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}

	var req EndMatchPayload
	_ = c.ShouldBindJSON(&req) // optional body; ignore errors

	winnerEmail := emailForPeer(m, req.WinnerPeerUUID)
	if req.WinnerPeerUUID != "" && winnerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWinnerNotPartOfThisMatch})
		return
	}
	resignedEmail := emailForPeer(m, req.ResignedPeerUUID)
	if req.ResignedPeerUUID != "" && resignedEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrResignerNotPartOfThisMatch})
		return
	}

	switch err := service.FinishMatch(h.repo, m, winnerEmail, resignedEmail); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Match ended"})
	case service.ErrOutcomeAlreadyCounted:
		// idempotent: the other peer already reported the same outcome
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: constants.ErrOutcomeAlreadyCounted})
	case service.ErrNotAParticipant:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWinnerNotPartOfThisMatch})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedReportMatchOutcome})
	}
}

// matchFromCode resolves the :matchCode route param to a full match,
// writing the error response itself on failure.
func (h *MatchHandler) matchFromCode(c *gin.Context) (*game.Match, bool) {
	code := normalizeJoinCode(c.Param("matchCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return nil, false
	}
	short, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return nil, false
	}
	m, err := h.repo.GetMatchByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return nil, false
	}
	return m, true
}

func sessionEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		s, _ := v.(string)
		return s
	}
	return ""
}

func emailForPeer(m *game.Match, peerUUID string) string {
	if peerUUID == "" {
		return ""
	}
	for i := range m.Players {
		if m.Players[i].PeerUUID == peerUUID {
			return m.Players[i].Email
		}
	}
	return ""
}
