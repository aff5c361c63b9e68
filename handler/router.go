package handler

import "github.com/gin-gonic/gin"

// NewRouter wires every route. GET /users is the public leaderboard;
// everything under /users/:id belongs to the owning identity.
func NewRouter(auth *AuthHandler, users *UserHandler, leaderboard *LeaderboardHandler, key []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	a := r.Group("/auth")
	a.POST("/signup", auth.Signup)
	a.POST("/login", auth.Login)
	a.POST("/refresh", auth.Refresh)

	r.GET("/users", leaderboard.Get)

	g := r.Group("/users", Auth(key), RequireOwner())
	g.GET("/:id", users.Get)
	g.POST("/:id/submit", users.Submit)
	g.GET("/:id/submissions", users.Submissions)

	return r
}
