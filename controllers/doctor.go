package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/services"
	"caretrack/util"
)

func Doctor(router *gin.Engine) {
	doctors := router.Group("/doctors")
	{
		doctors.GET("", FetchAllDoctors)
		doctors.GET("/:doctorId", FetchDoctorByNumber)
	}
}

func FetchAllDoctors(c *gin.Context) {
	filter := services.DoctorFilter{
		Name:               c.Query("name"),
		Specialization:     c.Query("specialization"),
		Department:         c.Query("department"),
		AvailabilityStatus: c.Query("availabilityStatus"),
	}
	doctors, err := services.FetchAllDoctors(c.Request.Context(), filter)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func FetchDoctorByNumber(c *gin.Context) {
	number, ok := parseNumber(c, "doctorId")
	if !ok {
		return
	}
	doctor, err := services.FetchDoctorByNumber(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}
