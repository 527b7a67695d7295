// Command devtoken mints a signed identity token for local testing against
// the API. It uses the same AUTH_JWT_SECRET as the server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/config"
	"github.com/spec-kit/repair-tracker/internal/domain"
)

func main() {
	var (
		id   = pflag.String("id", "", "user id carried in the sub claim")
		name = pflag.String("name", "", "display name")
		role = pflag.String("role", string(domain.RoleFaculty), "admin, technician or faculty")
		ttl  = pflag.Duration("ttl", 0, "token lifetime; defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.Auth.AccessTokenTTL()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, lifetime)
	token, expires, err := tokens.GenerateToken(domain.User{
		ID:          *id,
		DisplayName: *name,
		Role:        domain.Role(*role),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		pflag.Usage()
		os.Exit(2)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expires.Format(time.RFC3339))
}
