package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"savanablu/src/db"
	"savanablu/src/lib"
	"savanablu/src/models"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// cachedList serves read-heavy catalog lists through RedisJSON with the
// database as source of truth. Cache misses and redis outages both fall back
// to a query.
func cachedList[T any](key string, query func() ([]T, error)) ([]T, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		if raw, err := rd.JSONGet(context.Background(), key).Result(); err == nil && raw != "" {
			var items []T
			if err := json.Unmarshal([]byte(raw), &items); err == nil && len(items) > 0 {
				return items, nil
			}
		}
	}
	items, err := query()
	if err != nil {
		return nil, err
	}
	if rd != nil && len(items) > 0 {
		if err := rd.JSONSet(context.Background(), key, "$", &items).Err(); err != nil {
			log.Printf("[catalog] could not cache %s: %s\n", key, err.Error())
		} else {
			rd.Expire(context.Background(), key, 10*time.Minute)
		}
	}
	return items, nil
}

func catalogRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/tours", func(ctx *gin.Context) {
			tours, err := cachedList("savanablu:catalog:tours", func() ([]models.Tour, error) {
				var tours []models.Tour
				err := db.GetDb().
					Model(&models.Tour{}).
					Where(&models.Tour{Active: true}).
					Order("title asc").
					Find(&tours).
					Error
				return tours, err
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tours, "count": len(tours)})
		}).
		GET("/tours/:slug", func(ctx *gin.Context) {
			slug := ctx.Params.ByName("slug")
			var tour models.Tour
			if err := db.GetDb().
				Model(&models.Tour{}).
				Where("slug = ?", slug).
				First(&tour).
				Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tour})
		}).
		GET("/packages", func(ctx *gin.Context) {
			packages, err := cachedList("savanablu:catalog:packages", func() ([]models.TourPackage, error) {
				var packages []models.TourPackage
				err := db.GetDb().
					Model(&models.TourPackage{}).
					Where(&models.TourPackage{Active: true}).
					Order("title asc").
					Find(&packages).
					Error
				return packages, err
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		GET("/packages/:slug", func(ctx *gin.Context) {
			slug := ctx.Params.ByName("slug")
			var pkg models.TourPackage
			if err := db.GetDb().
				Model(&models.TourPackage{}).
				Where("slug = ?", slug).
				First(&pkg).
				Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		})
	return apiv1
}
