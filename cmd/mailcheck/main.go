// Command mailcheck sends one test email with the configured SendGrid
// credentials.
package main

import (
	"context"
	"donow/utils"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, continuing")
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	apiKey, from, to := os.Getenv("SENDGRID_API_KEY"), os.Getenv("NOTIFY_FROM"), os.Getenv("NOTIFY_TO")
	if apiKey == "" || from == "" || to == "" {
		log.Fatal("SENDGRID_API_KEY, NOTIFY_FROM and NOTIFY_TO must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := utils.NewSendGridNotifier(apiKey, from, to).SendTest(ctx); err != nil {
		log.Fatalf("Failed to send test email: %v", err)
	}
	log.Println("success")
}
