// Command sensorgen posts synthetic weather sensor readings to a running
// cloudburst warning server. Readings follow weather patterns that drift
// between clear skies and cloudburst conditions, so the server exercises the
// full classification range over time.
//
// Usage:
//
//	go run ./cmd/sensorgen -api-url http://localhost:8080 -interval 5s
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/simulator"
	"github.com/go-resty/resty/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	apiURL := flag.String("api-url", "http://localhost:8080", "base URL of the warning server")
	interval := flag.Duration("interval", 5*time.Second, "delay between readings")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for the weather simulator")
	flag.Parse()

	if *interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", *interval)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := simulator.New(*seed)
	client := resty.New().
		SetBaseURL(*apiURL).
		SetTimeout(10 * time.Second)

	log.Printf("posting readings to %s every %s (seed %d)", *apiURL, *interval, *seed)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		if err := post(ctx, client, gen); err != nil {
			log.Printf("post failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Print("stopping")
			return nil
		case <-ticker.C:
		}
	}
}

type submitResult struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func post(ctx context.Context, client *resty.Client, gen *simulator.Generator) error {
	reading := gen.Next()

	var result submitResult
	resp, err := client.R().
		SetContext(ctx).
		SetBody(reading).
		SetResult(&result).
		Post("/sensor-data")
	if err != nil {
		return fmt.Errorf("sending reading: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("server rejected reading: %s: %s", resp.Status(), resp.String())
	}

	log.Printf("pattern=%s rainfall=%.1f status=%s reason=%q",
		gen.Pattern(), *reading.Rainfall, result.Status, result.Reason)
	return nil
}
