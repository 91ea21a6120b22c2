package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/queue"
)

// booking-consumer appends every booking event to a log file.  The path
// defaults to logs/booking.log and can be set with BOOKING_LOG_PATH.
func main() {
	config.LoadDotEnv()
	path := os.Getenv("BOOKING_LOG_PATH")
	if path == "" {
		path = "logs/booking.log"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("booking-consumer: writing %s to %s", queue.BookingQueue, path)
	err := queue.NewConsumer(config.RabbitURL(), path).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("booking-consumer: %v", err)
	}
	log.Println("booking-consumer: stopped")
}
