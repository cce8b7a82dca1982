package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

func Staff(router *gin.Engine) {
	staff := router.Group("/staff")
	{
		staff.GET("", FetchAllStaff)
		staff.GET("/:staffId", FetchStaffByNumber)
	}

	// Subrole conveniences the dashboards list from.
	router.GET("/nurse", staffByRole(role.Nurse))
	router.GET("/labTech", staffByRole(role.LabTechnician))
	router.GET("/biller", staffByRole(role.Biller))
}

func FetchAllStaff(c *gin.Context) {
	filter := services.StaffFilter{
		Name:             c.Query("name"),
		Role:             c.Query("role"),
		Department:       c.Query("department"),
		AttendanceStatus: c.Query("attendanceStatus"),
	}
	staff, err := services.FetchAllStaff(c.Request.Context(), filter)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(staff))
}

func FetchStaffByNumber(c *gin.Context) {
	number, ok := parseNumber(c, "staffId")
	if !ok {
		return
	}
	staff, err := services.FetchStaffByNumber(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(staff))
}

func staffByRole(subrole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, err := services.FetchAllStaff(c.Request.Context(), services.StaffFilter{Role: subrole})
		if err != nil {
			util.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, util.SuccessResponse(staff))
	}
}
