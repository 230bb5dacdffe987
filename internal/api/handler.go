package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/middleware"
	"github.com/guttosm/cryptopulse/internal/service"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// Handler provides HTTP handlers for the crypto statistics endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters
//   - Call the statistics service
//   - Translate domain errors into the three external categories
//     (not-found, rate-limited, invalid-input) plus internal
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.StatsService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.StatsService): Service dependency with the business logic.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.StatsService) *Handler {
	return &Handler{svc: svc}
}

// GetNormalizedRanges handles GET /api/v1/cryptos/normalized-range.
//
// GetNormalizedRanges godoc
// @Summary      Get normalized ranges for all cryptos
// @Description  Returns all supported cryptos sorted descending by normalized range ((max-min)/min)
// @Tags         cryptos
// @Produce      json
// @Success      200  {array}   dto.NormalizedRangeResponse  "Descending ranking"
// @Failure      429  {object}  dto.ErrorResponse            "Rate limited"
// @Failure      500  {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/cryptos/normalized-range [get]
func (h *Handler) GetNormalizedRanges(c *gin.Context) {
	ranges, err := h.svc.RankedDescending()
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute ranking", err)
		return
	}

	resp := make([]dto.NormalizedRangeResponse, 0, len(ranges))
	for _, nr := range ranges {
		resp = append(resp, dto.NewNormalizedRangeResponse(nr))
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats handles GET /api/v1/cryptos/:symbol/stats.
//
// GetStats godoc
// @Summary      Get stats for a specific crypto
// @Description  Returns the oldest, newest, min and max price values for the given symbol
// @Tags         cryptos
// @Produce      json
// @Param        symbol  path      string  true  "Crypto symbol" example(BTC)
// @Success      200     {object}  dto.StatsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      429     {object}  dto.ErrorResponse  "Rate limited"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/cryptos/{symbol}/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	stats, err := h.svc.Stats(symbol)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownSymbol) {
			middleware.AbortWithError(c, http.StatusNotFound, "symbol not supported: "+symbol, err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// GetHighestNormalizedRange handles GET /api/v1/cryptos/highest-normalized-range.
//
// GetHighestNormalizedRange godoc
// @Summary      Get crypto with highest normalized range for a day
// @Description  Returns the crypto with the highest normalized range on the given UTC date; symbols without data that day are skipped
// @Tags         cryptos
// @Produce      json
// @Param        date  query     string  true  "UTC date in YYYY-MM-DD" example(2022-01-01)
// @Success      200   {object}  dto.NormalizedRangeResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse            "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse            "Not Found"
// @Failure      429   {object}  dto.ErrorResponse            "Rate limited"
// @Failure      500   {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/cryptos/highest-normalized-range [get]
func (h *Handler) GetHighestNormalizedRange(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "date is required", nil)
		return
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
		return
	}

	nr, err := h.svc.HighestOnDate(date)
	if err != nil {
		var noData *service.NoDataForDateError
		if errors.As(err, &noData) {
			middleware.AbortWithError(c, http.StatusNotFound, "no data for date: "+raw, err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute highest normalized range", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNormalizedRangeResponse(nr))
}
