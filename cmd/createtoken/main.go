package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
)

// createtoken prints a service-role bearer token for the external scheduler.
func main() {
	secret := flag.String("secret", "", "JWT signing secret (defaults to JWT_SECRET_KEY)")
	ttl := flag.String("ttl", "", "token lifetime, e.g. 8760h (defaults to JWT_SERVICE_EXPIRATION_TIME)")
	flag.Parse()

	_ = godotenv.Load()

	if *secret == "" {
		*secret = os.Getenv("JWT_SECRET_KEY")
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY or -secret is required")
		os.Exit(1)
	}
	if *ttl == "" {
		*ttl = os.Getenv("JWT_SERVICE_EXPIRATION_TIME")
	}
	if *ttl == "" {
		*ttl = "8760h"
	}

	token, expiresAt, err := jwt.NewJWTService(*secret, *ttl).GenerateServiceToken()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to generate token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
