package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/services"
	"caretrack/util"
)

func Patient(router *gin.Engine) {
	patients := router.Group("/patients")
	{
		patients.GET("", FetchAllPatients)
		patients.GET("/user/:userId", FetchPatientByAccount)
		patients.GET("/:patientId", FetchPatientByNumber)
	}
}

func FetchAllPatients(c *gin.Context) {
	filter := services.PatientFilter{
		Name:            c.Query("name"),
		Gender:          c.Query("gender"),
		BloodGroup:      c.Query("bloodGroup"),
		AdmissionStatus: c.Query("admissionStatus"),
	}
	patients, err := services.FetchAllPatients(c.Request.Context(), filter)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

func FetchPatientByNumber(c *gin.Context) {
	number, ok := parseNumber(c, "patientId")
	if !ok {
		return
	}
	patient, err := services.FetchPatientByNumber(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}

func FetchPatientByAccount(c *gin.Context) {
	patient, err := services.FetchPatientByAccountID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}
