package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/controllers"
	"caretrack/metrics"
	"caretrack/middleware"
)

func Routes(r *gin.Engine) {

	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	controllers.Auth(r)

	// private routes
	r.Use(middleware.JWTAuth())
	controllers.Users(r)
	controllers.Patient(r)
	controllers.Doctor(r)
	controllers.Staff(r)
	controllers.Nurse(r)
	controllers.Lab(r)
	controllers.Bill(r)
	controllers.UserDashboard(r)
}
