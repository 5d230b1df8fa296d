package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stocknest/internal/quotes"
	"stocknest/models"
)

var (
	ErrInvalidSymbol  = errors.New("invalid stock symbol")
	ErrMissingSymbols = errors.New("please provide a list of stock symbols")
)

type StocksController struct {
	DB         *gorm.DB
	Logger     *zap.SugaredLogger
	Aggregator *quotes.Aggregator
}

func (s StocksController) GetPrices(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		RespondBadRequestErr(c, ErrMissingSymbols)
		return
	}

	results, err := s.Aggregator.Aggregate(c.Request.Context(), symbols)
	if err != nil {
		// Per-symbol failures come back as data; only the missing provider
		// credential reaches this branch.
		s.Logger.Errorf("Error aggregating quotes: %v", err)
		RespondErr(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, results)
}

func (s StocksController) GetFavorites(c *gin.Context) {
	symbols, err := models.ListFavoriteSymbols(s.DB, CurrentUserID(c))
	if err != nil {
		s.Logger.Errorf("Error listing favorites: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, symbols)
}

func (s StocksController) AddFavorite(c *gin.Context) {
	type addParams struct {
		Symbol string `json:"symbol" binding:"required"`
	}

	var payload addParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, ErrInvalidSymbol)
		return
	}

	symbol := normalizeSymbol(payload.Symbol)
	if symbol == "" {
		RespondBadRequestErr(c, ErrInvalidSymbol)
		return
	}

	userID := CurrentUserID(c)
	if err := models.AddFavorite(s.DB, userID, symbol); err != nil {
		s.Logger.Errorf("Error adding favorite %v: %v", symbol, err)
		RespondInternalErr(c)
		return
	}

	symbols, err := models.ListFavoriteSymbols(s.DB, userID)
	if err != nil {
		s.Logger.Errorf("Error listing favorites: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, symbols)
}

func (s StocksController) RemoveFavorite(c *gin.Context) {
	symbol := normalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		RespondBadRequestErr(c, ErrInvalidSymbol)
		return
	}

	userID := CurrentUserID(c)
	if err := models.RemoveFavorite(s.DB, userID, symbol); err != nil {
		s.Logger.Errorf("Error removing favorite %v: %v", symbol, err)
		RespondInternalErr(c)
		return
	}

	symbols, err := models.ListFavoriteSymbols(s.DB, userID)
	if err != nil {
		s.Logger.Errorf("Error listing favorites: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, symbols)
}

func (s StocksController) GetFavoriteDetails(c *gin.Context) {
	symbols, err := models.ListFavoriteSymbols(s.DB, CurrentUserID(c))
	if err != nil {
		s.Logger.Errorf("Error listing favorites: %v", err)
		RespondInternalErr(c)
		return
	}

	results, err := s.Aggregator.Aggregate(c.Request.Context(), symbols)
	if err != nil {
		s.Logger.Errorf("Error aggregating quotes: %v", err)
		RespondErr(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, results)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		if symbol := normalizeSymbol(part); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	return symbols
}
