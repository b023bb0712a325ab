package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	redisclients "github.com/moonveil/arcana-backend/internal/clients/redis"
	"github.com/moonveil/arcana-backend/internal/cosmic/detect"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/requestdata"
	"github.com/moonveil/arcana-backend/internal/services"
)

// patternCacheAge bounds how long a detection run is served from cache.
const patternCacheAge = time.Hour

type PatternHandler struct {
	patternService services.PatternService
	cache          redisclients.SessionCache
}

func NewPatternHandler(patternService services.PatternService, cache redisclients.SessionCache) *PatternHandler {
	return &PatternHandler{patternService: patternService, cache: cache}
}

func (ph *PatternHandler) GetPatterns(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
		return
	}

	daysBack := 0
	if raw := c.Query("days_back"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid days_back %q", raw))
			return
		}
		daysBack = n
	}
	category := types.Category(c.Query("category"))
	switch category {
	case "", types.CategoryTarot, types.CategoryJournal:
	default:
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid category %q", category))
		return
	}

	cacheKey := redisclients.CacheKey(rd.UserID, fmt.Sprintf("patterns:%s:%d", category, daysBack))
	if ph.cache != nil {
		var cached detect.Result
		if ok, _ := ph.cache.Get(c.Request.Context(), cacheKey, patternCacheAge, &cached); ok {
			RespondOK(c, gin.H{"result": cached, "cached": true})
			return
		}
	}

	res, err := ph.patternService.DetectPatterns(c.Request.Context(), rd.UserID, detect.Options{
		DaysBack: daysBack,
		UserTier: rd.Tier,
		Category: category,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "detection_failed", fmt.Errorf("pattern detection failed"))
		return
	}
	if ph.cache != nil {
		ph.cache.Set(c.Request.Context(), cacheKey, res)
	}
	RespondOK(c, gin.H{"result": res, "cached": false})
}
