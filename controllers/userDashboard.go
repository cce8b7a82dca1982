package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/services"
	"caretrack/util"
)

// UserDashboard serves the patient-facing views: own records, bills, and
// report PDFs.
func UserDashboard(router *gin.Engine) {
	dashboard := router.Group("/user-dashboard")
	{
		dashboard.GET("/medical-records/:patientId", FetchMedicalRecords)
		dashboard.GET("/bills/:patientId", FetchPatientBills)
		dashboard.GET("/report-pdf/:reportId", FetchReportPDF)
	}
}

func FetchPatientBills(c *gin.Context) {
	number, ok := parseNumber(c, "patientId")
	if !ok {
		return
	}
	bills, err := services.FetchBillsForPatient(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(bills))
}

// FetchReportPDF streams the stored blob back with the original filename and
// content type.
func FetchReportPDF(c *gin.Context) {
	pdf, err := services.FetchReportPDF(c.Request.Context(), c.Param("reportId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", pdf.Filename))
	c.Data(http.StatusOK, pdf.ContentType, pdf.Data)
}
