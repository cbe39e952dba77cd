package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"restobot/internal/config"
	"restobot/pkg/bcrypt"
	jwtPkg "restobot/pkg/jwt"
	"restobot/pkg/log"
)

// adminctl prints an ADMIN_PASSWORD_HASH value or a ready admin bearer token.
func main() {
	password := flag.String("hash", "", "print the bcrypt hash of this password")
	subject := flag.String("token", "", "print an admin token for this subject")
	ttl := flag.Duration("ttl", 0, "token lifetime, ADMIN_TOKEN_TTL when zero")
	flag.Parse()

	logger := log.NewLogger()
	if *password == "" && *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *password != "" {
		hash, err := bcrypt.New().HashPassword(*password)
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println(hash)
	}

	if *subject == "" {
		return
	}

	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}
	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.TokenSecret == "" {
		logger.Fatal(jwtPkg.ErrNoSecret)
	}
	if *ttl == 0 {
		*ttl = cfg.AdminTokenTTL
	}

	token, err := jwtPkg.SignAdmin(*subject, *ttl, cfg.TokenSecret)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(token)
}
