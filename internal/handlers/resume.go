package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

const maxResumeSize = 5 * 1024 * 1024

// UploadResume stores a new resume file and makes it the single active
// record. Deactivation and insertion happen in one transaction so two
// concurrent uploads cannot both end up active.
func UploadResume(ctx *gin.Context) {
	file, err := ctx.FormFile("resume")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	if file.Size > maxResumeSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "File too large (max 5MB)"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF files are allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("Failed to open uploaded resume: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload resume"})
		return
	}
	defer src.Close()

	storedName := fmt.Sprintf("resume-%s.pdf", uuid.NewString())
	path, err := Uploads.Save("resumes", storedName, src)
	if err != nil {
		log.Printf("Failed to store resume file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload resume"})
		return
	}

	resume := models.Resume{
		Filename: file.Filename,
		Path:     path,
		URL:      ctx.PostForm("url"),
		IsActive: true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resume{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&resume).Error
	})
	if err != nil {
		log.Printf("Resume upload failed: %v", err)
		_ = Uploads.Remove(path)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload resume"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Resume uploaded successfully",
		"resume":  resume,
	})
}

// GetResume streams the active resume, or redirects when it points at an
// external URL. ?view=true switches to inline display.
func GetResume(ctx *gin.Context) {
	disposition := "attachment"
	if ctx.Query("view") == "true" {
		disposition = "inline"
	}
	serveActiveResume(ctx, disposition)
}

// ViewResume always streams inline.
func ViewResume(ctx *gin.Context) {
	serveActiveResume(ctx, "inline")
}

func serveActiveResume(ctx *gin.Context, disposition string) {
	resume, ok := activeResume(ctx)
	if !ok {
		return
	}

	if resume.URL != "" {
		ctx.Redirect(http.StatusFound, resume.URL)
		return
	}

	if !Uploads.Exists(resume.Path) {
		log.Printf("Resume file not found at path: %s", resume.Path)
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Resume file not found"})
		return
	}

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, resume.Filename))
	ctx.File(resume.Path)
}

// GetResumeAdmin returns the active record's metadata for management.
func GetResumeAdmin(ctx *gin.Context) {
	var resume models.Resume

	err := db.DB.Where("is_active = ?", true).Order("uploaded_at DESC").First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch resume"})
		return
	}

	ctx.JSON(http.StatusOK, resume)
}

// CheckResume reports availability without exposing content. Public.
func CheckResume(ctx *gin.Context) {
	var count int64

	if err := db.DB.Model(&models.Resume{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check resume availability"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"available": count > 0})
}

type ResumeURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// UpdateResumeURL points the active record at an external URL instead of
// stored bytes.
func UpdateResumeURL(ctx *gin.Context) {
	var body ResumeURLRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "URL is required"})
		return
	}

	var resume models.Resume

	if err := db.DB.Where("is_active = ?", true).Order("uploaded_at DESC").First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "No active resume found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update resume URL"})
		}
		return
	}

	resume.URL = body.URL

	if err := db.DB.Save(&resume).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update resume URL"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Resume URL updated successfully",
		"resume":  resume,
	})
}

// DeleteResume removes the record and its backing file. A file that is
// already gone from disk is tolerated.
func DeleteResume(ctx *gin.Context) {
	var resume models.Resume

	if err := db.DB.First(&resume, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Resume not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete resume"})
		}
		return
	}

	if resume.Path != "" {
		if err := Uploads.Remove(resume.Path); err != nil {
			log.Printf("Failed to remove resume file: %v", err)
		}
	}

	if err := db.DB.Delete(&resume).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete resume"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

func activeResume(ctx *gin.Context) (models.Resume, bool) {
	var resume models.Resume

	err := db.DB.Where("is_active = ?", true).Order("uploaded_at DESC").First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "No resume available"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch resume"})
		}
		return models.Resume{}, false
	}

	return resume, true
}
