package middlewares

import (
	"log"
	"os"
	"savanablu/src/db"
	"savanablu/src/models"
	"savanablu/src/types"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Read at call time so tests can set the secret after init.
func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := strings.Split(bearerToken, " ")[1]
	if reqToken == "" {
		ctx.AbortWithStatus(401)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey(), nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if err == jwt.ErrSignatureInvalid || err == jwt.ErrTokenMalformed {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.AbortWithError(401, err)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	d := db.GetDb()
	var user models.User
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(401)
		return
	}
	d.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)

	if uint(uid) != user.ID || user.ID < 1 {
		ctx.AbortWithStatus(401)
		return
	}
	now := time.Now()
	go d.Model(&models.User{}).Where(&models.User{ID: user.ID}).Update("last_active", &now)
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("role", user.Role)
}

// AdminMiddleware gates the back-office surface. Runs after AuthMiddleware.
func AdminMiddleware(ctx *gin.Context) {
	role := ctx.GetString("role")
	if role != "admin" && role != "operator" {
		ctx.AbortWithStatusJSON(403, gin.H{"error": "insufficient permissions"})
		return
	}
}
