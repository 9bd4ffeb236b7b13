package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"

	"github.com/joho/godotenv"
)

// Prints bearer tokens for local testing. With -hash the password is
// printed as a bcrypt hash instead, for seeding rows by hand.
func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	hash := flag.String("hash", "", "print the bcrypt hash of this password and exit")
	company := flag.Bool("company", false, "issue company tokens instead of user tokens")
	flag.Parse()

	if *hash != "" {
		h, err := security.NewBcryptHasher(security.DefaultCost).Hash(*hash)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("JWT_SECRET is not set; tokens only work with AUTH_MODE=decode")
		secret = "local-dev"
	}

	issuer := auth.NewIssuer(secret, *ttl)
	for _, name := range flag.Args() {
		owner := auth.User(name)
		if *company {
			owner = auth.Company(name)
		}
		token, err := issuer.Issue(owner)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Identity: %s\nAuthorization: Bearer %s\n\n", owner, token)
	}
}
