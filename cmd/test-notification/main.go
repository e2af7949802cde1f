package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vreb/brokerage-workflow/internal/config"
	"github.com/vreb/brokerage-workflow/internal/container"
)

// Isolated check of the configured notification channel.
// Renders the stored invoice and sends it without touching its status.

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	to := flag.String("to", "", "recipient override (defaults to the invoice's bill-to email)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: test-notification [-config path] [-to address] <invoice-number>")
		os.Exit(2)
	}
	number := flag.Arg(0)

	fmt.Println("=== Notification Channel Test ===")
	fmt.Println()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Channel: %s\n", cfg.Notification.Channel)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	if err := c.Start(ctx); err != nil {
		log.Fatalf("Failed to start container: %v", err)
	}
	defer c.Close()

	// Step 1: Load the record
	fmt.Printf("\n[Step 1] Loading invoice %s...\n", number)
	rec, err := c.InvoiceService().Get(number)
	if err != nil {
		log.Fatalf("Failed to load invoice: %v", err)
	}
	rec.ComputeAmounts(c.Profile().VATRate)
	fmt.Printf("✓ %s, total %s\n", rec.BillToName, rec.TotalAmount.StringFixed(2))

	// Step 2: Render the artifact
	fmt.Println("\n[Step 2] Rendering invoice PDF...")
	path, err := c.Renderer().RenderInvoice(rec, c.Profile())
	if err != nil {
		log.Fatalf("Failed to render invoice: %v", err)
	}
	fmt.Printf("✓ Written to %s\n", path)

	// Step 3: Send
	recipient := rec.BillToEmail
	if *to != "" {
		recipient = *to
	}
	fmt.Printf("\n[Step 3] Sending to %s...\n", recipient)
	sent, err := c.Notifier().Send(ctx, recipient, rec, path)
	switch {
	case err != nil:
		log.Fatalf("✗ Transport error: %v", err)
	case !sent:
		fmt.Println("✗ Delivery not accepted (see logs for the reason)")
		os.Exit(1)
	default:
		fmt.Println("✓ Notification sent")
	}
}
