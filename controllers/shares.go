package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocknest/internal/quotes"
	"stocknest/internal/sharing"
)

type SharesController struct {
	Logger     *zap.SugaredLogger
	Ledger     *sharing.Ledger
	Aggregator *quotes.Aggregator
}

func (s SharesController) CreateShare(c *gin.Context) {
	type shareParams struct {
		RecipientEmail string `json:"recipientEmail" binding:"required"`
	}

	var payload shareParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	share, err := s.Ledger.Create(c.Request.Context(), CurrentUserID(c), payload.RecipientEmail)
	if err != nil {
		switch {
		case errors.Is(err, sharing.ErrRecipientNotFound):
			RespondErr(c, http.StatusNotFound, err)
		case errors.Is(err, sharing.ErrSelfShare), errors.Is(err, sharing.ErrEmptyFavorites):
			RespondBadRequestErr(c, err)
		case errors.Is(err, sharing.ErrAlreadyShared):
			RespondErr(c, http.StatusConflict, err)
		default:
			s.Logger.Errorf("Error creating share: %v", err)
			RespondInternalErr(c)
		}
		return
	}

	RespondCreated(c, share)
}

func (s SharesController) GetSharedWithMe(c *gin.Context) {
	incoming, err := s.Ledger.SharedWithMe(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		s.Logger.Errorf("Error listing incoming shares: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, incoming)
}

// GetSharedWithMeDetails pairs every incoming share's snapshot with live
// quotes for its symbols.
func (s SharesController) GetSharedWithMeDetails(c *gin.Context) {
	incoming, err := s.Ledger.SharedWithMe(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		s.Logger.Errorf("Error listing incoming shares: %v", err)
		RespondInternalErr(c)
		return
	}

	type incomingShareDetails struct {
		sharing.IncomingShare
		Quotes []quotes.Result `json:"quotes"`
	}

	detailed := make([]incomingShareDetails, 0, len(incoming))
	for _, share := range incoming {
		results, err := s.Aggregator.Aggregate(c.Request.Context(), share.SharedSymbols)
		if err != nil {
			s.Logger.Errorf("Error aggregating quotes: %v", err)
			RespondErr(c, http.StatusInternalServerError, err)
			return
		}

		detailed = append(detailed, incomingShareDetails{IncomingShare: share, Quotes: results})
	}

	RespondOK(c, detailed)
}

func (s SharesController) GetMyShares(c *gin.Context) {
	outgoing, err := s.Ledger.MyShares(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		s.Logger.Errorf("Error listing outgoing shares: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, outgoing)
}

func (s SharesController) RevokeShare(c *gin.Context) {
	err := s.Ledger.Revoke(c.Request.Context(), CurrentUserID(c), c.Param("shareId"))
	if err != nil {
		switch {
		case errors.Is(err, sharing.ErrShareNotFound):
			RespondErr(c, http.StatusNotFound, err)
		case errors.Is(err, sharing.ErrNotSharer):
			RespondErr(c, http.StatusForbidden, err)
		default:
			s.Logger.Errorf("Error revoking share: %v", err)
			RespondInternalErr(c)
		}
		return
	}

	type revokeResult struct {
		Message string `json:"message"`
	}
	RespondOK(c, revokeResult{Message: "share revoked"})
}
