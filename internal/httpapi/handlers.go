package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careertracker/internal/job"
	"careertracker/internal/match"
	"careertracker/internal/profile"
)

// postingView is a posting plus its relevance, computed against the owner's
// profile at read time.
type postingView struct {
	job.Posting
	RelevanceScore int    `json:"relevance_score"`
	RelevanceLabel string `json:"relevance_label"`
}

func (s *Server) runFetch(c *gin.Context) {
	summary, err := s.runner.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("manual fetch pass failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch pass failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) listPostings(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	filter := job.ListFilter{
		Location: c.Query("location"),
		Source:   c.Query("source"),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := job.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Status = status
	}

	postings, err := s.postings.List(c.Request.Context(), userID, filter)
	if err != nil {
		s.logger.Error("listing postings failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing postings failed"})
		return
	}

	p := s.profileOrZero(c.Request.Context(), userID)
	views := make([]postingView, 0, len(postings))
	for _, post := range postings {
		score := match.Score(p, post)
		views = append(views, postingView{
			Posting:        post,
			RelevanceScore: score,
			RelevanceLabel: match.Label(score),
		})
	}

	c.JSON(http.StatusOK, gin.H{"jobs": views, "count": len(views)})
}

type createPostingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Company     string   `json:"company" binding:"required"`
	Location    string   `json:"location"`
	Source      string   `json:"source"`
	URL         string   `json:"url" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (s *Server) createPosting(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	var req createPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted, posting, err := s.postings.Insert(c.Request.Context(), userID, job.Candidate{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Source:      req.Source,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		s.logger.Error("creating posting failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creating posting failed"})
		return
	}
	if !inserted {
		c.JSON(http.StatusConflict, gin.H{"error": "posting with this url already exists"})
		return
	}

	c.JSON(http.StatusCreated, posting)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateStatus(c *gin.Context) {
	userID, id, ok := postingParams(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := job.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.postings.UpdateStatus(c.Request.Context(), userID, id, status); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
			return
		}
		s.logger.Error("updating posting status failed", zap.Int64("posting_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "updating posting failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

func (s *Server) deletePosting(c *gin.Context) {
	userID, id, ok := postingParams(c)
	if !ok {
		return
	}

	if err := s.postings.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
			return
		}
		s.logger.Error("deleting posting failed", zap.Int64("posting_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deleting posting failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) draftCV(c *gin.Context) {
	s.draft(c, "cv")
}

func (s *Server) draftCoverLetter(c *gin.Context) {
	s.draft(c, "cover_letter")
}

func (s *Server) draft(c *gin.Context, kind string) {
	if s.writer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai drafting is not configured"})
		return
	}

	userID, id, ok := postingParams(c)
	if !ok {
		return
	}

	posting, err := s.postings.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
			return
		}
		s.logger.Error("loading posting failed", zap.Int64("posting_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "loading posting failed"})
		return
	}

	p := s.profileOrZero(c.Request.Context(), userID)

	var content string
	if kind == "cv" {
		content, err = s.writer.CV(c.Request.Context(), p, *posting)
	} else {
		content, err = s.writer.CoverLetter(c.Request.Context(), p, *posting)
	}
	if err != nil {
		s.logger.Error("drafting failed",
			zap.String("kind", kind),
			zap.Int64("posting_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "drafting failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": kind, "content": content})
}

func (s *Server) getProfile(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	p, err := s.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		s.logger.Error("loading profile failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "loading profile failed"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *Server) putProfile(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}

	var p profile.Snapshot
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.UserID = userID

	if err := s.profiles.Upsert(c.Request.Context(), p); err != nil {
		s.logger.Error("saving profile failed", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving profile failed"})
		return
	}

	c.JSON(http.StatusOK, p.Sanitized())
}

// profileOrZero loads the user's profile for relevance computation, degrading
// to an empty snapshot so postings still list when no profile exists.
func (s *Server) profileOrZero(ctx context.Context, userID int64) profile.Snapshot {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			s.logger.Warn("loading profile for relevance failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return profile.Snapshot{UserID: userID}
	}
	return p.Sanitized()
}

func userParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return userID, true
}

func postingParams(c *gin.Context) (userID, id int64, ok bool) {
	userID, ok = userParam(c)
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid posting id"})
		return 0, 0, false
	}
	return userID, id, true
}
