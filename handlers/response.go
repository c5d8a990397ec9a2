package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storageFailure logs the underlying error and answers 500
func (h *APIHandler) storageFailure(c *gin.Context, handler string, err error) {
	log.Printf("[%s] Error in %s handler: %v", requestID(c), handler, err)
	respondError(c, http.StatusInternalServerError, msgStorageFailure)
}

// RouteNotFound answers any request no route matched
func RouteNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, msgRouteNotFound)
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
