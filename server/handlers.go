package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theoremus-urban-solutions/transit-planner/formatter"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
)

type routeRequest struct {
	Source      string `json:"source" form:"source" binding:"required"`
	Destination string `json:"destination" form:"destination" binding:"required"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Stops        int    `json:"stops"`
	Edges        int    `json:"edges"`
	GraphVersion uint64 `json:"graphVersion"`
}

func (s *Server) handleRoutePost(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": planner.StatusError, "message": err.Error()})
		return
	}
	s.answerRoute(c, req)
}

func (s *Server) handleRouteGet(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": planner.StatusError, "message": err.Error()})
		return
	}
	s.answerRoute(c, req)
}

func (s *Server) answerRoute(c *gin.Context, req routeRequest) {
	resp, err := s.finder.FindBestRoute(req.Source, req.Destination)
	switch {
	case errors.Is(err, planner.ErrStopNotFound):
		c.JSON(http.StatusNotFound, formatter.WrapErrorResponse(req.Source, req.Destination, err))
	case err != nil:
		c.JSON(http.StatusInternalServerError, formatter.WrapErrorResponse(req.Source, req.Destination, err))
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handleStops(c *gin.Context) {
	g := s.store.Load()
	c.JSON(http.StatusOK, formatter.StopNames(g, c.Query("q")))
}

func (s *Server) handleHealth(c *gin.Context) {
	g, version := s.store.Snapshot()
	resp := healthResponse{
		Status:       "ok",
		Stops:        g.StopCount(),
		Edges:        g.EdgeCount(),
		GraphVersion: version,
	}
	if resp.Stops == 0 {
		resp.Status = "empty"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRefresh(c *gin.Context) {
	if s.loader == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"status": planner.StatusError, "message": "graph refresh is not configured"})
		return
	}
	stats, err := s.store.Refresh(c.Request.Context(), s.loader)
	if s.OnRefresh != nil {
		s.OnRefresh()
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":       planner.StatusError,
			"message":      err.Error(),
			"graphVersion": stats.Version,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       planner.StatusSuccess,
		"stops":        stats.Stops,
		"edges":        stats.Edges,
		"skippedLinks": stats.Skipped,
		"graphVersion": stats.Version,
	})
}
