package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Link           string   `json:"link"`
	SourceCodeLink string   `json:"sourceCodeLink"`
	Tags           []string `json:"tags"`
	Featured       bool     `json:"featured"`
}

func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve projects"})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func ListFeaturedProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Where("featured = ?", true).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve projects"})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func CreateProject(ctx *gin.Context) {
	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	project := models.Project{
		Title:          body.Title,
		Description:    body.Description,
		Image:          body.Image,
		Link:           body.Link,
		SourceCodeLink: body.SourceCodeLink,
		Tags:           datatypes.NewJSONSlice(body.Tags),
		Featured:       body.Featured,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func UpdateProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve project"})
		}
		return
	}

	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	project.Title = body.Title
	project.Description = body.Description
	project.Image = body.Image
	project.Link = body.Link
	project.SourceCodeLink = body.SourceCodeLink
	project.Tags = datatypes.NewJSONSlice(body.Tags)
	project.Featured = body.Featured

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func DeleteProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
