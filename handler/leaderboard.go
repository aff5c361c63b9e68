package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"hackacure-backend/cache"
	"hackacure-backend/entity"
	"hackacure-backend/log"
	"hackacure-backend/store"
)

type LeaderboardHandler struct {
	users store.Users
	cache cache.Leaderboard
	group singleflight.Group
}

func NewLeaderboardHandler(users store.Users, c cache.Leaderboard) *LeaderboardHandler {
	return &LeaderboardHandler{
		users: users,
		cache: c,
	}
}

// Get returns all users ordered by best score descending. Hits within the
// TTL never touch the database; concurrent misses share one recomputation
// through the singleflight group. Stored best scores are trusted here, the
// per-team refresh happens on the submissions route.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	users, err := h.cache.Get(c.Request.Context())
	if err == nil {
		success(c, 200, gin.H{"data": users})
		return
	}
	if err != cache.ErrMiss {
		log.Logger.Warn("leaderboard cache read failed", zap.Error(err))
	}

	v, err, _ := h.group.Do("leaderboard", func() (interface{}, error) {
		// detached from the request so one caller hanging up does not
		// cancel the shared load
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		users, err := h.users.AllByBestScore(ctx)
		if err != nil {
			return nil, err
		}

		if err := h.cache.Set(ctx, users); err != nil {
			log.Logger.Warn("leaderboard cache write failed", zap.Error(err))
		}

		return users, nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	success(c, 200, gin.H{"data": v.([]entity.User)})
}
