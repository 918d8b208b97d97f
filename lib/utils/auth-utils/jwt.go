package authutils

import (
	"sales-pipeline-backend/config"
	"sales-pipeline-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimUser    = "sub"
	ClaimTenant  = "tenant"
	ClaimCompany = "company"
	ClaimRole    = "role"
)

func GetToken(userID, tenantID, companyID string, role models.UserRole) (tokenString string, err error) {
	return GetTokenWithSecret(config.Conf.Auth.JWTSecret, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec), userID, tenantID, companyID, role)
}

func GetTokenWithSecret(secret string, ttl time.Duration, userID, tenantID, companyID string, role models.UserRole) (tokenString string, err error) {
	now := time.Now()
	claims := jwt.MapClaims{
		ClaimUser:    userID,
		ClaimTenant:  tenantID,
		ClaimCompany: companyID,
		ClaimRole:    string(role),
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetStringClaim(ctx *fiber.Ctx, name string) string {
	value, ok := GetClaims(ctx)[name].(string)
	if !ok {
		return ""
	}
	return value
}
