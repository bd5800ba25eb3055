package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response.
// Checks the state store connectivity; never exposes credentials or internals.
func Health(store repository.KVStore, driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":     status == http.StatusOK,
			"store":  storeStatus,
			"driver": driver,
		})
	}
}
