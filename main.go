package main

import "github.com/iotaledger/stake-ledger/components/app"

func main() {
	app.App().Run()
}
