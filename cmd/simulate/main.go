package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/client"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/config"
)

func main() {
	config.LoadEnv()

	var (
		baseURL   = flag.String("base-url", config.GetEnv("CLIENT_BASE_URL", "http://localhost:8080"), "payment API base URL")
		outcome   = flag.String("outcome", "success", "requested outcome: success or failed")
		prefsPath = flag.String("prefs", "", "path to a JSON preferences file (senderName, senderPhone, senderUpi, paymentAmount)")
		timeout   = flag.Duration("timeout", config.GetEnvDuration("CLIENT_TIMEOUT", 10*time.Second), "per-request timeout")
		delay     = flag.Duration("delay", 1500*time.Millisecond, "simulated processing delay before the redirect")
	)
	flag.Parse()

	if *outcome != "success" && *outcome != "failed" {
		log.Fatalf("invalid -outcome %q: must be success or failed", *outcome)
	}

	opts := []client.Option{
		client.WithTimeout(*timeout),
		client.WithDelay(*delay),
	}
	if *prefsPath != "" {
		opts = append(opts, client.WithPreferences(client.LoadPreferences(*prefsPath)))
	}

	c := client.New(*baseURL, opts...)
	result := c.Simulate(context.Background(), *outcome == "success")

	if result.Failed() && result.Reason != "" {
		fmt.Printf("Payment failed: %s\n", result.Reason)
	}
	fmt.Printf("Redirecting to %s\n", result.Redirect)

	if result.Failed() && *outcome == "success" {
		os.Exit(1)
	}
}
