// cmd/gentoken/main.go mints a development JWT signed with JWT_SECRET.
// Usage: go run ./cmd/gentoken -user 1 -name admin -role admin -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"inventorybi/internal/config"
	"inventorybi/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	userID := flag.String("user", "1", "user_id claim")
	username := flag.String("name", "admin", "username claim")
	role := flag.String("role", "admin", "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   *userID,
		Username: *username,
		Role:     *role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
