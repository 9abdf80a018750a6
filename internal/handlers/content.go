package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

type ContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetContent returns the site content record, creating the default one on
// first access.
func GetContent(ctx *gin.Context) {
	var content models.Content

	err := db.DB.First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = models.Content{Content: "Welcome to my portfolio!"}
		err = db.DB.Create(&content).Error
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get content"})
		return
	}

	ctx.JSON(http.StatusOK, content)
}

func UpdateContent(ctx *gin.Context) {
	var body ContentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var content models.Content

	err := db.DB.First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = models.Content{Content: body.Content}
		err = db.DB.Create(&content).Error
	} else if err == nil {
		content.Content = body.Content
		err = db.DB.Save(&content).Error
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update content"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Content updated successfully"})
}
