package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/middleware"
	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

// Users holds the admin registration surface: each add* endpoint creates the
// role profile and its login account as one unit.
func Users(router *gin.Engine) {
	users := router.Group("/users", middleware.RequireRole(role.Admin))
	{
		users.POST("/addPatient", AddPatient)
		users.POST("/addDoctor", AddDoctor)
		users.POST("/addStaff", AddStaff)
		users.GET("/patients", FetchAllPatients)
		users.GET("/doctors", FetchAllDoctors)
		users.GET("/staff", FetchAllStaff)
	}
}

func AddPatient(c *gin.Context) {
	var in services.CreatePatientInput
	if !bindJSON(c, &in) {
		return
	}
	patient, err := services.CreatePatient(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(patient))
}

func AddDoctor(c *gin.Context) {
	var in services.CreateDoctorInput
	if !bindJSON(c, &in) {
		return
	}
	doctor, err := services.CreateDoctor(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(doctor))
}

func AddStaff(c *gin.Context) {
	var in services.CreateStaffInput
	if !bindJSON(c, &in) {
		return
	}
	staff, err := services.CreateStaff(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(staff))
}
