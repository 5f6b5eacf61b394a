package main

import (
	"log"
	"net/http"
	"savanablu/src/common"
	"savanablu/src/types"

	"github.com/gin-gonic/gin"
)

func leadRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/leads", func(ctx *gin.Context) {
		var body types.CreateLeadRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lead, created, err := common.CreateLead(&body)
		if err != nil {
			log.Printf("[CreateLead] %s\n", err.Error())
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if !created {
			// Duplicate submission inside the dedupe window still reads as a
			// success to the visitor.
			ctx.JSON(http.StatusOK, gin.H{"data": lead, "deduplicated": true})
			return
		}
		ctx.JSON(http.StatusCreated, gin.H{"data": lead})
	})
	return apiv1
}
