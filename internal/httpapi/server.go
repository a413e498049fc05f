// Package httpapi exposes the REST surface: posting management, profile
// settings, manual fetch trigger and AI drafting.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careertracker/internal/ai"
	"careertracker/internal/fetch"
	"careertracker/internal/job"
	"careertracker/internal/profile"
)

// Server holds the handler dependencies. Writer may be nil when AI drafting
// is disabled; the drafting endpoints then answer 503.
type Server struct {
	postings job.Store
	profiles profile.Store
	runner   *fetch.Runner
	writer   *ai.Writer
	logger   *zap.Logger
}

func NewServer(postings job.Store, profiles profile.Store, runner *fetch.Runner, writer *ai.Writer, logger *zap.Logger) *Server {
	return &Server{
		postings: postings,
		profiles: profiles,
		runner:   runner,
		writer:   writer,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.POST("/fetch/run", s.runFetch)

		users := v1.Group("/users/:user")
		{
			users.GET("/profile", s.getProfile)
			users.PUT("/profile", s.putProfile)

			users.GET("/jobs", s.listPostings)
			users.POST("/jobs", s.createPosting)
			users.PATCH("/jobs/:id/status", s.updateStatus)
			users.DELETE("/jobs/:id", s.deletePosting)
			users.POST("/jobs/:id/cv", s.draftCV)
			users.POST("/jobs/:id/cover-letter", s.draftCoverLetter)
		}
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
