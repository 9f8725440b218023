//go:build ignore

// This script prints secrets for the bundle service admin.
// Run with: go run scripts/generate_keys.go [admin-password]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/guttosm/bundle-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}
	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}

	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else if password, err = generateSecureKey(12); err != nil {
		fail("admin password", err)
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		fail("password hash", err)
	}

	fmt.Println("# Admin login (AUTH_ENABLED=true)")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println("ADMIN_EMAIL=admin@example.com")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
	if len(os.Args) <= 1 {
		fmt.Printf("# generated admin password: %s\n", password)
	}
	fmt.Println()
	fmt.Println("# API key auth (used when AUTH_ENABLED=false)")
	fmt.Printf("API_KEYS=%s\n", apiKey)
}
