package main

import (
	"errors"
	"log"
	"net/http"
	"savanablu/src/common"
	"savanablu/src/db"
	"savanablu/src/middlewares"
	"savanablu/src/models"
	"savanablu/src/store"
	"savanablu/src/types"
	"savanablu/src/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminRoutes(g *gin.Engine) *gin.RouterGroup {
	admin := g.Group(apiPrefix + "/admin")
	admin.Use(middlewares.AuthMiddleware)
	admin.Use(middlewares.AdminMiddleware)

	admin.
		GET("/bookings", func(ctx *gin.Context) {
			status := ctx.Query("status")
			paymentStatus := ctx.Query("paymentStatus")
			bookings := []models.Booking{}
			for _, b := range store.Get().ReadAll() {
				if status != "" && string(b.Status) != status {
					continue
				}
				if paymentStatus != "" && string(b.PaymentStatus) != paymentStatus {
					continue
				}
				bookings = append(bookings, b)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			booking := store.Get().FindByID(id)
			if booking == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings/:id/actions", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			var body types.AdminBookingActionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking *models.Booking
			var err error
			switch body.Action {
			case "cancel":
				booking, err = common.CancelBooking(id, body.Reason)
			case "reverse-payment":
				booking, err = common.ReversePayment(id, body.Reason, body.Amount)
			default:
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + body.Action})
				return
			}
			if err != nil {
				log.Printf("[AdminBookingAction] %s %s: %s\n", body.Action, id, err.Error())
				if errors.Is(err, common.ErrNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, common.ErrValidation) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})

	admin.
		GET("/promos", func(ctx *gin.Context) {
			var promos []models.PromoCode
			if err := db.GetDb().Model(&models.PromoCode{}).Order("code asc").Find(&promos).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": promos, "count": len(promos)})
		}).
		POST("/promos", func(ctx *gin.Context) {
			var body types.CreatePromoRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			active := true
			if body.Active != nil {
				active = *body.Active
			}
			promo := models.PromoCode{
				Code:         strings.TrimSpace(body.Code),
				DiscountType: types.DiscountType(body.DiscountType),
				Value:        body.Value,
				Active:       active,
			}
			if err := db.GetDb().Create(&promo).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": promo})
		}).
		PATCH("/promos/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdatePromoRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.DiscountType != nil {
				updates["discount_type"] = *body.DiscountType
			}
			if body.Value != nil {
				updates["value"] = *body.Value
			}
			if body.Active != nil {
				updates["active"] = *body.Active
			}
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				var promo models.PromoCode
				if err := tx.Model(&models.PromoCode{}).Where("id = ?", params.ID).First(&promo).Error; err != nil {
					return err
				}
				if len(updates) == 0 {
					return nil
				}
				return tx.Model(&models.PromoCode{}).Where("id = ?", params.ID).Updates(updates).Error
			})
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "promo not found"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var promo models.PromoCode
			d.Model(&models.PromoCode{}).Where("id = ?", params.ID).First(&promo)
			ctx.JSON(http.StatusOK, gin.H{"data": promo})
		}).
		DELETE("/promos/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.GetDb().Delete(&models.PromoCode{}, params.ID).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})

	admin.
		GET("/leads", func(ctx *gin.Context) {
			q := db.GetDb().Model(&models.Lead{}).Order("created_at desc")
			if status := ctx.Query("status"); status != "" {
				q = q.Where(&models.Lead{Status: status})
			}
			var leads []models.Lead
			if err := q.Find(&leads).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": leads, "count": len(leads)})
		}).
		GET("/leads/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var lead models.Lead
			if err := db.GetDb().Model(&models.Lead{}).Where("id = ?", params.ID).First(&lead).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			bookings := common.BookingsForLeadEmail(lead.Email)
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"lead": lead, "bookings": bookings}, "count": len(bookings)})
		})

	admin.GET("/finance/summary", func(ctx *gin.Context) {
		byStatus := map[string]int{}
		var grossUSD, depositsUSD, refundedUSD, outstandingUSD float64
		bookings := store.Get().ReadAll()
		for _, b := range bookings {
			byStatus[string(b.Status)]++
			if b.Status == types.BOOKING_CANCELED {
				continue
			}
			grossUSD += b.TotalUSD
			refundedUSD += b.RefundedUSD
			if b.PaymentStatus == types.PAYMENT_CONFIRMED {
				depositsUSD += b.DepositUSD
				outstandingUSD += b.BalanceUSD
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
			"bookings":       len(bookings),
			"byStatus":       byStatus,
			"grossUSD":       utils.Round2(grossUSD),
			"depositsUSD":    utils.Round2(depositsUSD),
			"refundedUSD":    utils.Round2(refundedUSD),
			"outstandingUSD": utils.Round2(outstandingUSD),
		}})
	})

	return admin
}
