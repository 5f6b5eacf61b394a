package main

import (
	"log"
	"net/http"
	"savanablu/src/db"
	"savanablu/src/models"
	"savanablu/src/types"
	"savanablu/src/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func authRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/auth/login", func(ctx *gin.Context) {
		var body types.LoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d := db.GetDb()
		var user models.User
		d.Model(&models.User{}).Where("email = ?", utils.NormalizeEmail(body.Email)).Find(&user)
		if user.ID < 1 {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
		if err != nil {
			log.Printf("Error generating token: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	})
	return apiv1
}
