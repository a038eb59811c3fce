// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	xschemparse "github.com/tomachalek/xschem-parse"
	"github.com/tomachalek/xschem-parse/catalog"
	"github.com/tomachalek/xschem-parse/catalog/factory"
	"github.com/tomachalek/xschem-parse/cnf"
)

var (
	version   string
	build     string
	gitCommit string
)

func usage() {
	fmt.Println("\n+-------------------------------------------------------------+")
	fmt.Println("|  xschemparse - a parser for Xschem schematic/symbol files   |")
	fmt.Printf("|                       version %s                         |\n", version)
	fmt.Println("+-------------------------------------------------------------+")
	fmt.Println("\nUsage:")
	fmt.Println("xschemparse [parse] file.sch [file2.sym ...]\n\tparse each file, print any errors, exit non-zero on failure")
	fmt.Println("xschemparse catalog config.json\n\tparse a batch of files and persist a catalog to a database")
	fmt.Println("xschemparse template\n\tdump a sample catalog config to stdout")
	fmt.Println("xschemparse version\n\tshow detailed version information")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
}

// runParse reads each path, parses it, and prints every failure through
// the parser's own caret-underlined rendering. A file that cannot even
// be read counts as an error too.
func runParse(paths []string) int {
	start := time.Now()
	var count, errs int
	for _, path := range paths {
		count++
		contents, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n  --> %s\n", color.RedString("error"), err, path)
			errs++
			continue
		}
		if _, perr := xschemparse.ParseBytesPath(contents, path); perr != nil {
			fmt.Fprintln(os.Stderr, perr)
			errs++
		}
	}
	elapsed := time.Since(start)

	if errs == 0 {
		if count > 0 {
			fmt.Fprintln(os.Stderr, color.GreenString(
				"successfully parsed %d files in %.3fs", count, elapsed.Seconds()))
		}
		return 0
	}
	fmt.Fprintf(os.Stderr, "\n%s\n", color.RedString(
		"found %d errors in %d files in %.3fs", errs, count, elapsed.Seconds()))
	return 1
}

func runCatalog(confPath string) int {
	conf, err := cnf.LoadConf(confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
	}()

	dbWriter, err := factory.NewDatabaseWriter(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog database writer")
	}

	t0 := time.Now()
	statusChan, err := catalog.BuildCatalog(ctx, conf, dbWriter, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build catalog")
	}
	var failed int
	for status := range statusChan {
		if status.Error != nil {
			failed++
			log.Error().Err(status.Error).Str("file", status.File).Msg("catalog build error")
		}
	}
	log.Info().Dur("elapsed", time.Since(t0)).Msg("catalog build finished")
	if failed > 0 {
		return 1
	}
	return 0
}

func dumpTemplate() {
	conf := cnf.CatalogConf{
		Path:         "schematics/",
		FileSuffixes: []string{".sch", ".sym"},
		DB: cnf.DBConf{
			Type: "sqlite",
			Name: "catalog.db",
		},
	}
	b, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to dump a template config")
	}
	fmt.Println(string(b))
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "catalog":
		catalogCommand := flag.NewFlagSet("catalog", flag.ExitOnError)
		catalogCommand.Usage = func() { fmt.Println("Usage: xschemparse catalog conf.json") }
		catalogCommand.Parse(args[1:])
		if catalogCommand.NArg() != 1 {
			catalogCommand.Usage()
			os.Exit(1)
		}
		os.Exit(runCatalog(catalogCommand.Arg(0)))
	case "template":
		dumpTemplate()
	case "version":
		fmt.Printf("xschemparse %s\nbuild date: %s\nlast commit: %s\n", version, build, gitCommit)
	case "parse":
		os.Exit(runParse(args[1:]))
	default:
		// no recognized subcommand: treat every argument as a file path
		os.Exit(runParse(args))
	}
}
