package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

type SocialLinkRequest struct {
	Platform     string `json:"platform" binding:"required,oneof=github linkedin twitter facebook instagram youtube medium dev.to stackoverflow website email other"`
	URL          string `json:"url" binding:"required"`
	Icon         string `json:"icon"`
	DisplayName  string `json:"displayName"`
	IsActive     *bool  `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`
}

// ListSocialLinks returns active links in display order (public).
func ListSocialLinks(ctx *gin.Context) {
	var links []models.SocialLink

	if err := db.DB.Where("is_active = ?", true).Order("display_order ASC").Find(&links).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve social links"})
		return
	}

	ctx.JSON(http.StatusOK, links)
}

// ListAllSocialLinks includes inactive links (admin).
func ListAllSocialLinks(ctx *gin.Context) {
	var links []models.SocialLink

	if err := db.DB.Order("display_order ASC").Find(&links).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve social links"})
		return
	}

	ctx.JSON(http.StatusOK, links)
}

func CreateSocialLink(ctx *gin.Context) {
	var body SocialLinkRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	link := models.SocialLink{
		Platform:     body.Platform,
		URL:          body.URL,
		Icon:         body.Icon,
		DisplayName:  body.DisplayName,
		IsActive:     true,
		DisplayOrder: body.DisplayOrder,
	}
	if body.Icon == "" {
		link.Icon = "fas fa-link"
	}
	if body.IsActive != nil {
		link.IsActive = *body.IsActive
	}

	if err := db.DB.Create(&link).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create social link"})
		return
	}

	ctx.JSON(http.StatusCreated, link)
}

func UpdateSocialLink(ctx *gin.Context) {
	var link models.SocialLink

	if err := db.DB.First(&link, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Social link not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve social link"})
		}
		return
	}

	var body SocialLinkRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	link.Platform = body.Platform
	link.URL = body.URL
	link.DisplayName = body.DisplayName
	link.DisplayOrder = body.DisplayOrder
	if body.Icon != "" {
		link.Icon = body.Icon
	}
	if body.IsActive != nil {
		link.IsActive = *body.IsActive
	}

	if err := db.DB.Save(&link).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update social link"})
		return
	}

	ctx.JSON(http.StatusOK, link)
}

func DeleteSocialLink(ctx *gin.Context) {
	var link models.SocialLink

	if err := db.DB.First(&link, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Social link not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve social link"})
		}
		return
	}

	if err := db.DB.Delete(&link).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete social link"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Social link deleted successfully"})
}
