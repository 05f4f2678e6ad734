package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgRoleMismatch          = "User found, but role is incorrect"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "User created successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

type AuthController struct {
	Users     *stores.UserStore
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthController(users *stores.UserStore, jwtSecret string, tokenTTL time.Duration) *AuthController {
	return &AuthController{Users: users, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// Signup registers a customer or farmer account.
func (c *AuthController) Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		slog.Error("Password hashing error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user, err := c.Users.Create(ctx.Request.Context(), models.User{
		Name:     signUpData.Name,
		Email:    signUpData.Email,
		Password: hashedPassword,
		Role:     signUpData.Role,
		Location: signUpData.Location,
	})
	if err != nil {
		if errors.Is(err, stores.ErrUserExists) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}
		respondWithStoreError(ctx, "Failed to create user", err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

// Login checks the credentials and the requested role and returns a token.
func (c *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	user, err := c.Users.FindByEmail(ctx.Request.Context(), loginData.Email)
	if err != nil {
		if errors.Is(err, stores.ErrUserNotFound) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}
		respondWithStoreError(ctx, "Failed to log in", err)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}
	if user.Role != loginData.Role {
		sendErrorResponse(ctx, http.StatusForbidden, msgRoleMismatch)
		return
	}

	tokenString, err := utils.GenerateToken(user, c.JWTSecret, c.TokenTTL)
	if err != nil {
		slog.Error("JWT generation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "user": user})
}

func (c *AuthController) Me(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	user, err := c.Users.GetByID(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to load user", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
