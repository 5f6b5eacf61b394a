package main

import (
	"errors"
	"log"
	"net/http"
	"savanablu/src/common"
	"savanablu/src/types"

	"github.com/gin-gonic/gin"
)

func bookingRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created, err := common.CreateBooking(&body)
			if err != nil {
				log.Printf("[CreateBooking] %s\n", err.Error())
				if errors.Is(err, common.ErrValidation) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, common.ErrNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			// unlike the other endpoints this body is consumed by the booking
			// widget's redirect logic, so the fields sit at the top level
			ctx.JSON(http.StatusCreated, created)
		}).
		POST("/payments/confirm", func(ctx *gin.Context) {
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			alreadyProcessed, err := common.ConfirmPayment(body.BookingID)
			if err != nil {
				log.Printf("[ConfirmPayment] %s\n", err.Error())
				if errors.Is(err, common.ErrNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if alreadyProcessed {
				ctx.JSON(http.StatusOK, gin.H{"ok": true, "alreadyProcessed": true})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		}).
		POST("/quote", func(ctx *gin.Context) {
			var body types.QuoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quote, err := common.QuoteForTrip(&body)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": quote})
		})
	return apiv1
}
