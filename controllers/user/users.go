package userControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Y3ppi3/northfishclient/apperr"
	"github.com/Y3ppi3/northfishclient/middleware"
	"github.com/Y3ppi3/northfishclient/models"
)

type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type UpdateBirthdayInput struct {
	Birthday *string `json:"birthday"` // YYYY-MM-DD, null clears it
}

func currentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, apperr.Unauthorizedf("unauthorized")
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GET /users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.FullName != nil {
			updates["full_name"] = *input.FullName
		}
		if input.Email != nil {
			var taken int64
			if err := db.Model(&models.User{}).
				Where("email = ? AND id <> ?", *input.Email, user.ID).
				Count(&taken).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
			if taken > 0 {
				apperr.Respond(c, apperr.Conflictf("email already registered"))
				return
			}
			updates["email"] = *input.Email
		}
		if input.Phone != nil {
			var taken int64
			if err := db.Model(&models.User{}).
				Where("phone = ? AND id <> ?", *input.Phone, user.ID).
				Count(&taken).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
			if taken > 0 {
				apperr.Respond(c, apperr.Conflictf("phone already registered"))
				return
			}
			updates["phone"] = *input.Phone
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				apperr.Respond(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/me/birthday
func UpdateBirthday(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c, db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input UpdateBirthdayInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
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

		if err := db.Model(user).Update("birthday", birthday).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		user.Birthday = birthday
		c.JSON(http.StatusOK, user)
	}
}
