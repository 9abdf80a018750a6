package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

func ListContacts(ctx *gin.Context) {
	var contacts []models.Contact

	if err := db.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve messages"})
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}

func UnreadContactCount(ctx *gin.Context) {
	var count int64

	if err := db.DB.Model(&models.Contact{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count messages"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func SubmitContact(ctx *gin.Context) {
	var body ContactRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	contact := models.Contact{
		Name:    body.Name,
		Email:   body.Email,
		Message: body.Message,
	}

	if err := db.DB.Create(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit message"})
		return
	}

	ctx.JSON(http.StatusCreated, contact)
}

func MarkContactRead(ctx *gin.Context) {
	var contact models.Contact

	if err := db.DB.First(&contact, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve message"})
		}
		return
	}

	contact.IsRead = true

	if err := db.DB.Save(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update message"})
		return
	}

	ctx.JSON(http.StatusOK, contact)
}

func DeleteContact(ctx *gin.Context) {
	var contact models.Contact

	if err := db.DB.First(&contact, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve message"})
		}
		return
	}

	if err := db.DB.Delete(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete message"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
