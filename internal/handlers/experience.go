package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxLogoSize = 2 * 1024 * 1024

// ListExperience returns all entries ordered for display: explicit order
// first, then newest start date.
func ListExperience(ctx *gin.Context) {
	var experience []models.Experience

	if err := db.DB.Order("display_order ASC").Order("start_date DESC").Find(&experience).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve experience"})
		return
	}

	ctx.JSON(http.StatusOK, experience)
}

// LatestExperience returns the most recent entries; :limit defaults to 3.
func LatestExperience(ctx *gin.Context) {
	limit := 3
	if raw := ctx.Param("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var experience []models.Experience

	if err := db.DB.Order("start_date DESC").Limit(limit).Find(&experience).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve experience"})
		return
	}

	ctx.JSON(http.StatusOK, experience)
}

// CreateExperience accepts a multipart form so the company logo can ride
// along as a file; array fields arrive as JSON-encoded strings.
func CreateExperience(ctx *gin.Context) {
	experience, ok := experienceFromForm(ctx, nil)
	if !ok {
		return
	}

	if err := db.DB.Create(experience).Error; err != nil {
		log.Printf("Error creating experience: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create experience"})
		return
	}

	ctx.JSON(http.StatusCreated, experience)
}

func UpdateExperience(ctx *gin.Context) {
	var existing models.Experience

	if err := db.DB.First(&existing, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve experience"})
		}
		return
	}

	experience, ok := experienceFromForm(ctx, &existing)
	if !ok {
		return
	}

	if err := db.DB.Save(experience).Error; err != nil {
		log.Printf("Error updating experience: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update experience"})
		return
	}

	ctx.JSON(http.StatusOK, experience)
}

func DeleteExperience(ctx *gin.Context) {
	var experience models.Experience

	if err := db.DB.First(&experience, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve experience"})
		}
		return
	}

	removeStoredLogo(experience.CompanyLogo)

	if err := db.DB.Delete(&experience).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete experience"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// experienceFromForm builds an Experience out of the multipart form,
// reusing the existing record on update. Returns false after writing an
// error response.
func experienceFromForm(ctx *gin.Context, existing *models.Experience) (*models.Experience, bool) {
	experience := &models.Experience{}
	if existing != nil {
		experience = existing
	}

	// Fields the form carries overwrite the record, empty values included,
	// so an update can clear a field. Absent fields keep their value.
	if v, present := ctx.GetPostForm("role"); present {
		experience.Role = v
	}
	if v, present := ctx.GetPostForm("company"); present {
		experience.Company = v
	}
	if v, present := ctx.GetPostForm("location"); present {
		experience.Location = v
	}
	if v, present := ctx.GetPostForm("description"); present {
		experience.Description = v
	}
	if v, present := ctx.GetPostForm("companyWebsite"); present {
		experience.CompanyWebsite = v
	}
	if v, present := ctx.GetPostForm("employmentType"); present {
		experience.EmploymentType = v
	}
	if v, present := ctx.GetPostForm("order"); present {
		if parsed, err := strconv.Atoi(v); err == nil {
			experience.DisplayOrder = parsed
		}
	}

	if v := ctx.PostForm("startDate"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate"})
			return nil, false
		}
		experience.StartDate = parsed
	}
	if existing == nil && experience.StartDate.IsZero() {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "startDate is required"})
		return nil, false
	}

	if v, present := ctx.GetPostForm("endDate"); present {
		if v == "" {
			experience.EndDate = nil
		} else {
			parsed, err := parseDate(v)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate"})
				return nil, false
			}
			experience.EndDate = &parsed
		}
	}

	if experience.Role == "" || experience.Company == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Role and company are required"})
		return nil, false
	}

	if v := ctx.PostForm("technologies"); v != "" {
		experience.Technologies = parseStringList(v)
	}
	if v := ctx.PostForm("achievements"); v != "" {
		experience.Achievements = parseStringList(v)
	}

	if !applyLogo(ctx, experience) {
		return nil, false
	}

	return experience, true
}

// applyLogo handles the uploaded logo file or a logo URL form value.
// Replaced or cleared stored logos are deleted from disk, best effort.
func applyLogo(ctx *gin.Context, experience *models.Experience) bool {
	file, err := ctx.FormFile("logo")
	if err == nil {
		if file.Size > maxLogoSize {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "File too large (max 2MB)"})
			return false
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
			return false
		}

		src, err := file.Open()
		if err != nil {
			log.Printf("Failed to open uploaded logo: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload logo"})
			return false
		}
		defer src.Close()

		storedName := fmt.Sprintf("logo-%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		if _, err := Uploads.Save("logos", storedName, src); err != nil {
			log.Printf("Failed to store logo file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload logo"})
			return false
		}

		removeStoredLogo(experience.CompanyLogo)
		experience.CompanyLogo = "/uploads/logos/" + storedName
		return true
	}

	if v, present := ctx.GetPostForm("companyLogo"); present {
		if v == "" {
			removeStoredLogo(experience.CompanyLogo)
		}
		experience.CompanyLogo = v
	}
	return true
}

// removeStoredLogo deletes a locally stored logo; URLs are left alone.
func removeStoredLogo(logo string) {
	if logo == "" || strings.HasPrefix(logo, "http") {
		return
	}

	path := filepath.Join(Uploads.BasePath(), strings.TrimPrefix(logo, "/uploads/"))
	if err := Uploads.Remove(path); err != nil {
		log.Printf("Failed to remove old logo file: %v", err)
	}
}

// parseStringList accepts a JSON array string, falling back to a comma
// split for plain values.
func parseStringList(raw string) datatypes.JSONSlice[string] {
	var list datatypes.JSONSlice[string]
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}

	parts := strings.Split(raw, ",")
	list = list[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
