// Command mimgo scores doppelgaenger cells of a stored paired dataset and
// writes the Jaccard similarity column back to storage.
//
// Usage:
//
//	mimgo -config mimgo.toml [-env .env]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "mimgo.toml", "path to the TOML configuration")
	envPath := flag.String("env", ".env", "optional dotenv file with MIMGO_* overrides")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		log.Printf("No %s file found, using environment as is", *envPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		log.Printf("mimgo: %v", err)
		stop()
		os.Exit(1)
	}
}
