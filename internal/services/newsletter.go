package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/portfolio-dev/portfolio/internal/models"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher sends a newsletter to subscribers in fixed-size batches with a
// pause between batches to bound the outbound send rate. Per-recipient
// failures are counted but never abort the run.
type Dispatcher struct {
	Sender      Sender
	FrontendURL string
	BatchSize   int
	BatchPause  time.Duration
}

func NewDispatcher(sender Sender, frontendURL string) *Dispatcher {
	return &Dispatcher{
		Sender:      sender,
		FrontendURL: frontendURL,
		BatchSize:   50,
		BatchPause:  time.Second,
	}
}

// Send dispatches subject/body to every subscriber. onSent runs after each
// successful delivery (used to stamp lastEmailSent). Returns how many sends
// succeeded and how many failed.
func (d *Dispatcher) Send(subscribers []models.Subscriber, subject, body string, onSent func(models.Subscriber)) (sent, failed int) {
	batchSize := d.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	var mu sync.Mutex

	for start := 0; start < len(subscribers); start += batchSize {
		end := start + batchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}
		batch := subscribers[start:end]

		var wg sync.WaitGroup
		for _, subscriber := range batch {
			wg.Add(1)
			go func(subscriber models.Subscriber) {
				defer wg.Done()

				html := d.personalize(body, subscriber)
				if err := d.Sender.Send(subscriber.Email, subject, html); err != nil {
					log.Printf("Newsletter send to %s failed: %v", subscriber.Email, err)
					mu.Lock()
					failed++
					mu.Unlock()
					return
				}

				mu.Lock()
				sent++
				mu.Unlock()

				if onSent != nil {
					onSent(subscriber)
				}
			}(subscriber)
		}
		wg.Wait()

		if end < len(subscribers) && d.BatchPause > 0 {
			time.Sleep(d.BatchPause)
		}
	}

	return sent, failed
}

// WelcomeBody builds the welcome email for a new subscriber.
func (d *Dispatcher) WelcomeBody(unsubscribeToken string) string {
	return fmt.Sprintf(`<h2>Thank you for subscribing!</h2>
<p>You've been added to our newsletter list and will receive updates about our latest content.</p>
<p>If you wish to unsubscribe, <a href="%s">click here</a>.</p>`, d.unsubscribeURL(unsubscribeToken))
}

func (d *Dispatcher) personalize(body string, subscriber models.Subscriber) string {
	name := subscriber.Name
	if name == "" {
		name = "Subscriber"
	}
	personalized := strings.Replace(body, "{name}", name, 1)

	return fmt.Sprintf(`%s
<p style="margin-top: 20px; font-size: 12px; color: #666;">
  If you wish to unsubscribe, <a href="%s">click here</a>.
</p>`, personalized, d.unsubscribeURL(subscriber.UnsubscribeToken))
}

func (d *Dispatcher) unsubscribeURL(token string) string {
	return fmt.Sprintf("%s/unsubscribe?token=%s", strings.TrimRight(d.FrontendURL, "/"), token)
}
