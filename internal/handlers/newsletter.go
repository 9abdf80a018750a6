package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"github.com/portfolio-dev/portfolio/internal/services"
	"gorm.io/gorm"
)

type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

type SendNewsletterRequest struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Recipients []uint `json:"recipients"`
}

// Subscribe adds a newsletter subscriber. A previously unsubscribed email
// is reactivated in place; an active one is a conflict. The existence check
// and the write share a transaction so concurrent subscribes cannot race
// past the unique email.
func Subscribe(ctx *gin.Context) {
	var body SubscribeRequest

	if err := ctx.BindJSON(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var reactivated bool
	var subscriber models.Subscriber

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&subscriber).Error
		if err == nil {
			if subscriber.IsActive {
				return errAlreadySubscribed
			}

			subscriber.IsActive = true
			subscriber.SubscribedAt = time.Now()
			if body.Name != "" {
				subscriber.Name = body.Name
			}
			reactivated = true
			return tx.Save(&subscriber).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		subscriber = models.Subscriber{
			Email:            email,
			Name:             body.Name,
			IsActive:         true,
			UnsubscribeToken: newUnsubscribeToken(),
		}
		return tx.Create(&subscriber).Error
	})

	if errors.Is(err, errAlreadySubscribed) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email already subscribed"})
		return
	}
	if err != nil {
		log.Printf("Error subscribing: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to subscribe"})
		return
	}

	if reactivated {
		ctx.JSON(http.StatusOK, gin.H{"message": "Subscription reactivated successfully"})
		return
	}

	// Welcome mail is best effort; subscription already succeeded.
	if Mail.Configured() {
		dispatcher := services.NewDispatcher(Mail, FrontendURL)
		welcome := dispatcher.WelcomeBody(subscriber.UnsubscribeToken)
		if err := Mail.Send(subscriber.Email, "Welcome to our Newsletter!", welcome); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
}

var errAlreadySubscribed = errors.New("email already subscribed")

// UnsubscribeByToken handles the public unsubscribe link. Deactivating an
// already-inactive subscriber still succeeds.
func UnsubscribeByToken(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Unsubscribe token is required"})
		return
	}

	var subscriber models.Subscriber

	if err := db.DB.Where("unsubscribe_token = ?", token).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Invalid unsubscribe token"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unsubscribe"})
		}
		return
	}

	deactivate(ctx, &subscriber)
}

// UnsubscribeByEmail handles the form flow.
func UnsubscribeByEmail(ctx *gin.Context) {
	var body UnsubscribeRequest

	if err := ctx.BindJSON(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var subscriber models.Subscriber

	if err := db.DB.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Email not found in subscribers list"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unsubscribe"})
		}
		return
	}

	deactivate(ctx, &subscriber)
}

func deactivate(ctx *gin.Context, subscriber *models.Subscriber) {
	subscriber.IsActive = false

	if err := db.DB.Save(subscriber).Error; err != nil {
		log.Printf("Error unsubscribing: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unsubscribe"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

func ListSubscribers(ctx *gin.Context) {
	var subscribers []models.Subscriber

	if err := db.DB.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		log.Printf("Error fetching subscribers: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve subscribers"})
		return
	}

	ctx.JSON(http.StatusOK, subscribers)
}

func SubscriberCount(ctx *gin.Context) {
	var count int64

	if err := db.DB.Model(&models.Subscriber{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count subscribers"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// DeleteSubscriber is the only hard delete in the subscriber lifecycle.
func DeleteSubscriber(ctx *gin.Context) {
	var subscriber models.Subscriber

	if err := db.DB.First(&subscriber, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Subscriber not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete subscriber"})
		}
		return
	}

	if err := db.DB.Delete(&subscriber).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete subscriber"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Subscriber deleted successfully"})
}

// SendNewsletter dispatches to an explicit recipient list or all active
// subscribers. Per-recipient failures are reported but do not abort the run.
func SendNewsletter(ctx *gin.Context) {
	var body SendNewsletterRequest

	if err := ctx.BindJSON(&body); err != nil || body.Subject == "" || body.Body == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Subject and body are required"})
		return
	}

	if !Mail.Configured() {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Email service not configured"})
		return
	}

	query := db.DB.Where("is_active = ?", true)
	if len(body.Recipients) > 0 {
		query = query.Where("id IN ?", body.Recipients)
	}

	var subscribers []models.Subscriber
	if err := query.Find(&subscribers).Error; err != nil {
		log.Printf("Error fetching newsletter recipients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send newsletter"})
		return
	}

	if len(subscribers) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No active subscribers found"})
		return
	}

	dispatcher := services.NewDispatcher(Mail, FrontendURL)
	sent, failed := dispatcher.Send(subscribers, body.Subject, body.Body, func(subscriber models.Subscriber) {
		now := time.Now()
		if err := db.DB.Model(&models.Subscriber{}).Where("id = ?", subscriber.ID).Update("last_email_sent", now).Error; err != nil {
			log.Printf("Failed to update last_email_sent for %s: %v", subscriber.Email, err)
		}
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Newsletter sent successfully",
		"count":   len(subscribers),
		"sent":    sent,
		"failed":  failed,
	})
}

func newUnsubscribeToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
