package main

import (
	"fmt"
	"log"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func main() {
	salt := flag.String("salt", "", "the salt configured in restAPI.jwtAuth.salt")
	issuer := flag.String("issuer", "stake-ledger", "the issuer configured in restAPI.jwtAuth.issuer")
	address := flag.String("address", "", "the address the token acts as")
	sessionTimeout := flag.Duration("sessionTimeout", 0, "the validity of the token, 0 never expires")

	flag.Parse()

	if _, err := ledger.AddressFromString(*address); err != nil {
		log.Fatalf("invalid address: %s", err)
	}

	auth, err := jwt.NewAuth(*salt, *sessionTimeout, *issuer)
	if err != nil {
		log.Fatalf("failed to create jwt auth: %s", err)
	}

	token, err := auth.IssueJWT(*address)
	if err != nil {
		log.Fatalf("failed to issue jwt: %s", err)
	}

	fmt.Println(token)
}
