package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elonavr/FitTrack-API/services"
)

// respondError maps the services error kinds onto stable status codes.
// Anything outside the known set is an internal failure and is logged,
// not leaked.
func respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		duplicate  *services.DuplicateNameError
		notFound   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		// StoreError and InvariantError both end up here: internal
		// failures the client gets no detail about.
		log.Printf("controller: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}
