package main

import (
	"log"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/stake-ledger/pkg/snapshotcreator"
	"github.com/iotaledger/stake-ledger/tools/genesis-snapshot/presets"
)

func main() {
	parsedOpts, configSelected, configFile := parseFlags()
	opts := presets.Base
	switch configSelected {
	case "docker":
		opts = append(opts, presets.Docker...)
	default:
		configSelected = "default"
	}

	if configFile != "" {
		yamlOpts, err := presets.GenerateFromYaml(configFile)
		if err != nil {
			log.Fatalf("failed to read config file %s: %s", configFile, err)
		}

		configSelected = configFile
		opts = append(opts, yamlOpts...)
	}

	opts = append(opts, parsedOpts...)
	info := snapshotcreator.NewOptions(opts...)

	log.Printf("creating snapshot with config: %s... %s", configSelected, info.FilePath)
	if err := snapshotcreator.CreateSnapshot(opts...); err != nil {
		panic(err)
	}
}

func parseFlags() (opt []options.Option[snapshotcreator.Options], conf string, configFile string) {
	filename := flag.String("filename", "", "the name of the generated snapshot file")
	config := flag.String("config", "", "use ready config: default, docker")
	file := flag.String("file", "", "read the config from the given YAML file")

	flag.Parse()
	opt = []options.Option[snapshotcreator.Options]{}
	if *filename != "" {
		opt = append(opt, snapshotcreator.WithFilePath(*filename))
	}

	return opt, *config, *file
}
