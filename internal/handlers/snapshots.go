package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	redisclients "github.com/moonveil/arcana-backend/internal/clients/redis"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/requestdata"
	"github.com/moonveil/arcana-backend/internal/services"
)

type SnapshotHandler struct {
	snapshotService services.SnapshotService
	cache           redisclients.SessionCache
}

func NewSnapshotHandler(snapshotService services.SnapshotService, cache redisclients.SessionCache) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService, cache: cache}
}

// resolveSnapshotType accepts both the short route form ("life_theme")
// and the stored discriminator ("pattern_life_theme").
func resolveSnapshotType(raw string) (string, bool) {
	full := raw
	if !strings.HasPrefix(full, types.SnapshotTypePrefix) {
		full = types.SnapshotTypePrefix + raw
	}
	switch full {
	case types.SnapshotTarotMoonPhase, types.SnapshotEmotionMoonPhase,
		types.SnapshotLifeTheme, types.SnapshotTarotSeason, types.SnapshotArchetype:
		return full, true
	}
	return "", false
}

func (sh *SnapshotHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
		return
	}
	snapType, ok := resolveSnapshotType(c.Param("type"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown snapshot type %q", c.Param("type")))
		return
	}

	ctx := c.Request.Context()
	allowed, err := sh.snapshotService.CanRefresh(ctx, rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", fmt.Errorf("snapshot generation failed"))
		return
	}
	if !allowed {
		RespondOK(c, gin.H{"state": "rate_limited"})
		return
	}

	var snap types.Snapshot
	switch snapType {
	case types.SnapshotLifeTheme:
		s, genErr := sh.snapshotService.GenerateLifeTheme(ctx, rd.UserID)
		if genErr != nil {
			err = genErr
		} else if s != nil {
			snap = *s
		}
	case types.SnapshotTarotSeason:
		s, genErr := sh.snapshotService.GenerateTarotSeason(ctx, rd.UserID)
		if genErr != nil {
			err = genErr
		} else if s != nil {
			snap = *s
		}
	case types.SnapshotArchetype:
		s, genErr := sh.snapshotService.GenerateArchetype(ctx, rd.UserID)
		if genErr != nil {
			err = genErr
		} else if s != nil {
			snap = *s
		}
	default:
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("snapshot type %q is not generated on demand", c.Param("type")))
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "generation_failed", fmt.Errorf("snapshot generation failed"))
		return
	}
	if snap == nil {
		RespondOK(c, gin.H{"state": "insufficient_data"})
		return
	}

	saved, err := sh.snapshotService.Save(ctx, rd.UserID, snap)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", fmt.Errorf("snapshot save failed"))
		return
	}
	if sh.cache != nil {
		_ = sh.cache.ClearAll(ctx, rd.UserID)
	}
	RespondOK(c, gin.H{"state": "generated", "snapshot": snap, "saved": saved})
}

func (sh *SnapshotHandler) GetCurrent(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
		return
	}
	snaps, err := sh.snapshotService.Current(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", fmt.Errorf("snapshot lookup failed"))
		return
	}
	RespondOK(c, gin.H{"snapshots": snaps})
}

func (sh *SnapshotHandler) GetHistory(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
		return
	}
	snapType := ""
	if raw := c.Query("type"); raw != "" {
		full, ok := resolveSnapshotType(raw)
		if !ok {
			RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown snapshot type %q", raw))
			return
		}
		snapType = full
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	snaps, err := sh.snapshotService.History(c.Request.Context(), rd.UserID, snapType, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", fmt.Errorf("snapshot lookup failed"))
		return
	}
	RespondOK(c, gin.H{"snapshots": snaps})
}

func (sh *SnapshotHandler) DeleteInsights(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
		return
	}
	ctx := c.Request.Context()
	if err := sh.snapshotService.Delete(ctx, rd.UserID); err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", fmt.Errorf("insight deletion failed"))
		return
	}
	if sh.cache != nil {
		_ = sh.cache.ClearAll(ctx, rd.UserID)
	}
	RespondOK(c, gin.H{"state": "deleted"})
}
