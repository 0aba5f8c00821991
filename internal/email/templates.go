package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Domenick1991/lastchanceair/internal/domain"
)

var bookingTemplate = template.Must(template.New("booking").Parse(`<div style="font-family: Arial, sans-serif; line-height:1.5">
  <h2>Booking Confirmed</h2>
  <p>Your LastChance Air booking is confirmed.</p>
  <hr/>
  <p><strong>Reference:</strong> {{.Booking.BookingRef}}</p>
  {{- if .Flight}}
  <p><strong>Flight:</strong> {{.Flight.Airline}} {{.Flight.OriginCode}} &rarr; {{.Flight.DestinationCode}}, {{.Flight.DepartureDate}} {{.Flight.DepartureTime}}</p>
  {{- end}}
  <p><strong>Passenger:</strong> {{.Booking.PassengerName}}{{if .Booking.PassengerAge}} (Age: {{.Booking.PassengerAge}}){{end}}</p>
  <p><strong>Cabin:</strong> {{.Booking.CabinClass}}</p>
  <p><strong>Seat:</strong> {{.Seat}}</p>
  <p><strong>Meal:</strong> {{.Booking.Meal}}</p>
  <p><strong>Drink:</strong> {{.Booking.Drink}}</p>
  <p><strong>Total Paid:</strong> ${{printf "%.2f" .Booking.TotalPrice}}</p>
  <p><strong>Status:</strong> {{.Booking.Status}}</p>
  <hr/>
  <p>Thank you for using <b>LastChance Air</b>.</p>
</div>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Click below to reset your password:</p>
<p><a href="{{.}}">{{.}}</a></p>
<p><small>This link is for demonstration only.</small></p>`))

// BookingConfirmation renders the confirmation mail for b. flight may be nil
// when the catalog has been regenerated since booking.
func BookingConfirmation(b *domain.Booking, flight *domain.Flight) (Message, error) {
	seat := "N/A"
	if b.Seat != nil && *b.Seat != "" {
		seat = *b.Seat
	}

	var buf bytes.Buffer
	err := bookingTemplate.Execute(&buf, struct {
		Booking *domain.Booking
		Flight  *domain.Flight
		Seat    string
	}{Booking: b, Flight: flight, Seat: seat})
	if err != nil {
		return Message{}, fmt.Errorf("render booking email: %w", err)
	}

	return Message{
		To:      b.PassengerEmail,
		Subject: fmt.Sprintf("Your LastChance Air booking %s", b.BookingRef),
		HTML:    buf.String(),
	}, nil
}

func PasswordReset(to, link string) (Message, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, link); err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Reset your LastChance Air password",
		HTML:    buf.String(),
	}, nil
}
