package server

import "github.com/gin-gonic/gin"

func (s *Server) handleGlobalStatistics(c *gin.Context) {
	global, err := s.stats.Global(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, global, "")
}

func (s *Server) handleUserStatistics(c *gin.Context) {
	userStats, err := s.stats.ForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, userStats, "")
}
