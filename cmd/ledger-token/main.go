// Command ledger-token mints a bearer token accepted by the ledger service when
// JWT_SECRET is set.
//
//	ledger-token -subject teller-1 -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/strangecreator1911/icp-banking-system/internal/config"
	"github.com/strangecreator1911/icp-banking-system/shared/middleware"
)

func main() {
	subject := flag.String("subject", "", "token subject (operator or client id)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; the service is running without auth")
	}

	token, err := middleware.IssueToken([]byte(cfg.JWTSecret), *subject, *ttl)
	if err != nil {
		log.WithError(err).Fatal("Failed to issue token")
	}
	fmt.Println(token)
}
