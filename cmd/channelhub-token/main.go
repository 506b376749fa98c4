package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"channelhub/internal/core/access"
	"channelhub/internal/platform/config"
	"channelhub/internal/platform/auth"
	"channelhub/internal/platform/logger"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword
var readPassword = term.ReadPassword

func main() {
	authCfg := config.New().Prefix("CORE_AUTH_")

	var (
		fUser = flag.Int64("user", 0, "numeric user id carried in the subject claim")
		fRole = flag.String("role", string(access.RoleCreator), "role claim: owner, admin, member or creator")
		fTTL  = flag.Duration("ttl", authCfg.MayDuration("TTL", 0), "token lifetime, 0 never expires")
	)
	flag.Parse()

	l := logger.Named("token")
	if *fUser <= 0 {
		l.Fatal().Msg("-user must be a positive id")
	}

	secret, err := loadSecret(authCfg)
	if err != nil {
		l.Fatal().Err(err).Msg("read secret")
	}

	s, err := auth.NewHS256(secret, authCfg.MayString("ISSUER", "channelhub"), *fTTL)
	if err != nil {
		l.Fatal().Err(err).Msg("signer")
	}
	tok, err := s.Mint(*fUser, *fRole)
	if err != nil {
		l.Fatal().Err(err).Msg("mint")
	}
	fmt.Println(tok)
}

// loadSecret prefers CORE_AUTH_SECRET and prompts on a terminal otherwise
func loadSecret(cfg config.Conf) ([]byte, error) {
	if s := cfg.MayString("SECRET", ""); s != "" {
		return []byte(s), nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("CORE_AUTH_SECRET is not set and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "signing secret: ")
	b, err := readPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(b))), nil
}
