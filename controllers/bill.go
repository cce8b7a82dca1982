package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caretrack/middleware"
	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

func Bill(router *gin.Engine) {
	bill := router.Group("/bill", middleware.RequireRole(role.Biller))
	{
		bill.GET("", FetchAllBills)
		bill.POST("/create", CreateBill)
		bill.GET("/:billId", FetchBillByNumber)
	}
}

func FetchAllBills(c *gin.Context) {
	bills, err := services.FetchAllBills(c.Request.Context(), services.BillFilter{
		PaymentStatus: c.Query("paymentStatus"),
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(bills))
}

func CreateBill(c *gin.Context) {
	var in services.CreateBillInput
	if !bindJSON(c, &in) {
		return
	}
	bill, err := services.CreateBill(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(bill))
}

func FetchBillByNumber(c *gin.Context) {
	number, ok := parseNumber(c, "billId")
	if !ok {
		return
	}
	bill, err := services.FetchBillByNumber(c.Request.Context(), number)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(bill))
}
