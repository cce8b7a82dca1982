package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"caretrack/apperr"
	"caretrack/middleware"
	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

func Lab(router *gin.Engine) {
	lab := router.Group("/lab", middleware.RequireRole(role.LabTechnician))
	{
		lab.GET("/medical-records/:patientId", FetchMedicalRecords)
		lab.POST("/upload-report", UploadReport)
	}
}

func FetchMedicalRecords(c *gin.Context) {
	number, ok := parseNumber(c, "patientId")
	if !ok {
		return
	}
	records, err := services.FetchRecordsForPatient(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(records))
}

/*
* Multipart upload: pdfFile plus patientId, doctorId, medicalRecordId,
* testName, testResult form fields. Size and content type are gated before
* the bytes are read into memory.
 */
func UploadReport(c *gin.Context) {
	fileHeader, err := c.FormFile("pdfFile")
	if err != nil {
		util.RespondError(c, apperr.New(apperr.KindValidation, "pdfFile is required"))
		return
	}
	if fileHeader.Size > services.Cfg.MaxReportSize {
		util.RespondError(c, apperr.New(apperr.KindPayloadTooLarge, "report exceeds the maximum upload size"))
		return
	}

	patientID, err := strconv.ParseInt(c.PostForm("patientId"), 10, 64)
	if err != nil {
		util.RespondError(c, apperr.New(apperr.KindValidation, "invalid patientId"))
		return
	}
	doctorID, err := strconv.ParseInt(c.PostForm("doctorId"), 10, 64)
	if err != nil {
		util.RespondError(c, apperr.New(apperr.KindValidation, "invalid doctorId"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondError(c, apperr.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondError(c, apperr.Internal(err))
		return
	}

	report, err := services.UploadTestReport(c.Request.Context(), services.UploadReportInput{
		PatientID:       patientID,
		DoctorID:        doctorID,
		MedicalRecordID: c.PostForm("medicalRecordId"),
		TestName:        c.PostForm("testName"),
		TestResult:      c.PostForm("testResult"),
		Filename:        fileHeader.Filename,
		ContentType:     fileHeader.Header.Get("Content-Type"),
		Data:            data,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(report))
}
