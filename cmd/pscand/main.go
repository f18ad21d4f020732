// Command pscand runs the asynchronous scan-task API daemon: a gin/redis
// surface wrapping the same scanner.Sweep the pscan CLI calls directly.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"pscan/api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("pscand: no .env file found, using process environment")
	}

	addr := getenv("PSCAND_ADDR", ":8080")

	if err := api.Run(addr); err != nil {
		log.Fatalf("pscand: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
