package app

import (
	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/app/components/profiling"
	"github.com/iotaledger/hive.go/app/components/shutdown"
	"github.com/iotaledger/stake-ledger/components/ledger"
	"github.com/iotaledger/stake-ledger/components/prometheus"
	"github.com/iotaledger/stake-ledger/components/restapi"
	ledgerapi "github.com/iotaledger/stake-ledger/components/restapi/ledger"
	"github.com/iotaledger/stake-ledger/components/ticker"
)

var (
	// Name of the app.
	Name = "stake-ledger"

	// Version of the app.
	Version = "0.1.0"
)

func App() *app.App {
	return app.New(Name, Version,
		app.WithInitComponent(InitComponent),
		app.WithComponents(
			shutdown.Component,
			profiling.Component,
			ledger.Component,
			ticker.Component,
			restapi.Component,
			ledgerapi.Component,
			prometheus.Component,
		),
	)
}

var InitComponent *app.InitComponent

func init() {
	InitComponent = &app.InitComponent{
		Component: &app.Component{
			Name: "App",
		},
		NonHiddenFlags: []string{
			"config",
			"help",
			"version",
		},
	}
}
