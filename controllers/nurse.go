package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/middleware"
	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

// Nurse is the ward workflow: assigning patients to doctors and opening
// medical records for a patient/doctor pair.
func Nurse(router *gin.Engine) {
	nurse := router.Group("/nurse", middleware.RequireRole(role.Nurse))
	{
		nurse.POST("/assign-patient", AssignPatient)
		nurse.POST("/create-medical-record", CreateMedicalRecord)
		nurse.GET("/patients", FetchAllPatients)
		nurse.GET("/doctors", FetchAllDoctors)
	}
}

type assignPatientRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	PatientID string `json:"patientId" binding:"required"`
}

func AssignPatient(c *gin.Context) {
	var req assignPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	doctor, err := services.AssignPatient(c.Request.Context(), req.DoctorID, req.PatientID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func CreateMedicalRecord(c *gin.Context) {
	var in services.CreateMedicalRecordInput
	if !bindJSON(c, &in) {
		return
	}
	record, err := services.CreateMedicalRecord(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(record))
}
