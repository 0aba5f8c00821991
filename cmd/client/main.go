package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/lastchanceair/config"
	"github.com/Domenick1991/lastchanceair/internal/client"
	"github.com/Domenick1991/lastchanceair/internal/domain"
)

func main() {
	emailAddr := flag.String("email", "demo@lastchance.air", "account email")
	password := flag.String("password", "demo-password", "account password")
	passenger := flag.String("passenger", "Demo Traveler", "passenger name")
	seat := flag.String("seat", "1A", "seat label, rows 1-8 and letters A-F")
	cabin := flag.String("cabin", string(domain.CabinBusiness), "economy, business or first")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flow := client.NewFlow(client.NewAPIClient(cfg.Client))

	if err := flow.Login(ctx, *emailAddr, *password); err != nil {
		log.Printf("login failed (%s), signing up", flow.Message())
		if err := flow.SetAuthMode(client.AuthSignup); err != nil {
			log.Fatalf("switch to signup: %v", err)
		}
		if err := flow.Signup(ctx, *emailAddr, *password); err != nil {
			log.Fatalf("signup: %s", flow.Message())
		}
	}
	log.Printf("signed in as %s (id %d), %d cities, %d deals", flow.User().Email, flow.User().ID, len(flow.Cities()), len(flow.Deals()))

	if len(flow.Deals()) == 0 {
		log.Fatalf("no deals available")
	}
	deal := flow.Deals()[0]
	results, err := flow.Search(ctx, deal.OriginCode, deal.DestinationCode, deal.DepartureDate)
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	log.Printf("%d flights %s -> %s around %s", len(results), deal.OriginCode, deal.DestinationCode, deal.DepartureDate)
	if len(results) == 0 {
		log.Fatalf("search returned nothing for a listed deal")
	}

	if err := flow.SelectFlight(results[0]); err != nil {
		log.Fatalf("select flight: %v", err)
	}
	if err := flow.SelectSeat(*seat); err != nil {
		log.Fatalf("select seat: %v", err)
	}
	if err := flow.SetCabin(domain.CabinClass(*cabin)); err != nil {
		log.Fatalf("cabin: %v", err)
	}
	log.Printf("%s %s seat %s %s: $%.2f", results[0].Airline, results[0].DepartureTime, *seat, *cabin, flow.Price())

	booking, err := flow.Submit(ctx, client.Passenger{Name: *passenger, Email: *emailAddr})
	if err != nil {
		log.Fatalf("booking: %s", flow.Message())
	}
	log.Print(flow.Message())
	log.Printf("ref=%s status=%s total=$%.2f", booking.BookingRef, booking.Status, booking.TotalPrice)

	if err := flow.ShowBookings(ctx); err != nil {
		log.Fatalf("bookings: %v", err)
	}
	for _, b := range flow.Bookings() {
		log.Printf("  %s  flight %s  %s  %s", b.BookingRef, b.FlightID, b.CabinClass, b.Status)
	}
}
