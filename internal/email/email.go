package email

import (
	"context"
	"fmt"

	"skyjourney/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "booking_cancelled":
		fmt.Printf("send email to %s: booking %s has been cancelled, %d seat(s) released\n",
			event.Email, event.BookingReference, event.SeatsBooked)
	default:
		fmt.Printf("send email to %s: booking %s confirmed for flight %d, %d seat(s), total %s\n",
			event.Email, event.BookingReference, event.FlightID, event.SeatsBooked, event.TotalPrice)
	}
	return nil
}
