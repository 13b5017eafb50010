package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ericogr/trifate-cards/internal/constants"
	"github.com/ericogr/trifate-cards/internal/logging"
	"github.com/ericogr/trifate-cards/internal/service"

	"github.com/gin-gonic/gin"
)

// intentEnvelope is the only part of a journaled payload the relay ever
// parses: the sender identity used for seat validation. Everything else
// is opaque to the store-and-forward path.
type intentEnvelope struct {
	Sender string `json:"sender"`
}

// PostIntent appends one intent to the match journal and returns its
// sequence number.
func (h *MatchHandler) PostIntent(c *gin.Context) {
	m, ok := h.matchFromCode(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var env intentEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	seq, err := service.AppendIntent(h.repo, m, env.Sender, payload)
	if err != nil {
		switch err {
		case service.ErrMatchNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
		case service.ErrPeerNotInMatch:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPeerNotInMatch})
		case service.ErrPayloadTooLarge:
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{constants.JSONKeyError: constants.ErrIntentPayloadTooLarge})
		default:
			logging.Error("failed to append intent", err, logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldPeerUUID: env.Sender})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAppendIntent})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"seq": seq})
}

type intentItem struct {
	Seq      uint64          `json:"seq"`
	PeerUUID string          `json:"peer_uuid"`
	Payload  json.RawMessage `json:"payload"`
}

// ListIntents returns journaled intents after the ?after= cursor. Peers
// poll this endpoint and replay what the other side sent.
func (h *MatchHandler) ListIntents(c *gin.Context) {
	m, ok := h.matchFromCode(c)
	if !ok {
		return
	}
	var after uint64
	if s := c.Query("after"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAfterCursor})
			return
		}
		after = n
	}

	recs, err := service.ListIntents(h.repo, m.ID, after)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchIntents})
		return
	}
	items := make([]intentItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, intentItem{Seq: r.Seq, PeerUUID: r.PeerUUID, Payload: json.RawMessage(r.Payload)})
	}
	logging.Debug("intents served", logging.Fields{constants.LogFieldMatchID: m.ID, "after": after, "count": len(items)})
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{"intents": items})
}
