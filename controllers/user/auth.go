package userControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/config"
	"github.com/Y3ppi3/northfishclient/models"
)

const birthdayLayout = "2006-01-02"

type RegisterInput struct {
	Username        string  `json:"username" binding:"required,min=3,max=50"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           string  `json:"phone" binding:"required,min=10,max=15"`
	FullName        string  `json:"full_name" binding:"required,min=2,max=100"`
	Password        string  `json:"password" binding:"required,min=6"`
	PasswordConfirm string  `json:"password_confirm" binding:"required"`
	Birthday        *string `json:"birthday"`
}

type LoginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// issueToken generates an HS256 JWT for a user.
func issueToken(cfg *config.Config, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// POST /auth/register
func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Password != input.PasswordConfirm {
			apperr.Respond(c, apperr.Validationf("passwords do not match"))
			return
		}

		var birthday *time.Time
		if input.Birthday != nil && *input.Birthday != "" {
			parsed, err := time.Parse(birthdayLayout, *input.Birthday)
			if err != nil {
				apperr.Respond(c, apperr.Validationf("birthday must be in YYYY-MM-DD format"))
				return
			}
			birthday = &parsed
		}

		var existing int64
		if err := db.Model(&models.User{}).
			Where("username = ? OR email = ? OR phone = ?", input.Username, input.Email, input.Phone).
			Count(&existing).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		if existing > 0 {
			apperr.Respond(c, apperr.Conflictf("username, email or phone already registered"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user := models.User{
			Username:     input.Username,
			Email:        input.Email,
			Phone:        input.Phone,
			FullName:     input.FullName,
			PasswordHash: string(hash),
			Birthday:     birthday,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			apperr.Respond(c, err)
			return
		}

		token, err := issueToken(cfg, user.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":         user,
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// One shared message for unknown phone and wrong password, so the
		// response does not reveal which of the two failed.
		var user models.User
		if err := db.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
			apperr.Respond(c, apperr.Unauthorizedf("invalid phone or password"))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			apperr.Respond(c, apperr.Unauthorizedf("invalid phone or password"))
			return
		}

		token, err := issueToken(cfg, user.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}
