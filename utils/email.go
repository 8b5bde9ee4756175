package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	port, err := strconv.Atoi(config.Port)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", config.Port, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(config.Host, port, config.Username, config.Password)
	return d.DialAndSend(m)
}

func firstName(name string) string {
	if name == "" {
		return "there"
	}
	return strings.Split(name, " ")[0]
}

// emailEnabled reports whether an SMTP host is set. Notification mails are
// skipped quietly without one.
func emailEnabled() bool {
	return os.Getenv("SMTP_HOST") != ""
}

func SendWelcomeEmail(email, name string) {
	if !emailEnabled() {
		return
	}
	go func() {
		subject := "Welcome to UniSale!"
		body := fmt.Sprintf(`<h2>Welcome to UniSale, %s!</h2>
<p>Your account is ready. You can now list things you no longer need and pick up what fellow students are selling.</p>
<p>The UniSale Team</p>`, firstName(name))
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

func SendOrderConfirmation(email, name, orderID string, total decimal.Decimal) {
	if !emailEnabled() {
		return
	}
	go func() {
		subject := fmt.Sprintf("Order Placed - %s", orderID)
		body := fmt.Sprintf(`<h2>Order Placed!</h2>
<p>Hi %s,</p>
<p>Your order <strong>%s</strong> has been placed successfully.</p>
<p>Order total: <strong>&#8377;%s</strong></p>
<p>The UniSale Team</p>`, firstName(name), orderID, total.StringFixed(2))
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}()
}
