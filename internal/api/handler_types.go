package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/services"
)

const contextUserIDKey = "userID"

type Handler struct {
	cycles    *services.CycleService
	secretKey []byte
	log       *logrus.Logger
}

func NewHandler(cycles *services.CycleService, secretKey string, log *logrus.Logger) *Handler {
	return &Handler{
		cycles:    cycles,
		secretKey: []byte(secretKey),
		log:       log,
	}
}

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
