package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

type SkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Proficiency *int   `json:"proficiency" binding:"omitempty,min=0,max=100"`
	Category    string `json:"category" binding:"omitempty,oneof=frontend backend database devops other"`
	Icon        string `json:"icon"`
}

func ListSkills(ctx *gin.Context) {
	var skills []models.Skill

	if err := db.DB.Find(&skills).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve skills"})
		return
	}

	ctx.JSON(http.StatusOK, skills)
}

func CreateSkill(ctx *gin.Context) {
	var body SkillRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	skill := models.Skill{
		Name:        body.Name,
		Proficiency: 75,
		Category:    "other",
		Icon:        body.Icon,
	}
	if body.Proficiency != nil {
		skill.Proficiency = *body.Proficiency
	}
	if body.Category != "" {
		skill.Category = body.Category
	}

	if err := db.DB.Create(&skill).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create skill"})
		return
	}

	ctx.JSON(http.StatusCreated, skill)
}

func UpdateSkill(ctx *gin.Context) {
	var skill models.Skill

	if err := db.DB.First(&skill, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve skill"})
		}
		return
	}

	var body SkillRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	skill.Name = body.Name
	skill.Icon = body.Icon
	if body.Proficiency != nil {
		skill.Proficiency = *body.Proficiency
	}
	if body.Category != "" {
		skill.Category = body.Category
	}

	if err := db.DB.Save(&skill).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update skill"})
		return
	}

	ctx.JSON(http.StatusOK, skill)
}

func DeleteSkill(ctx *gin.Context) {
	var skill models.Skill

	if err := db.DB.First(&skill, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve skill"})
		}
		return
	}

	if err := db.DB.Delete(&skill).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete skill"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
