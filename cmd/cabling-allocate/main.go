/*
Copyright 2019 Intel Corporation

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// This application runs the cabling allocator against a project document
// and reports or diffs the result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	cablinglog "github.com/icecake-patchwork/cabling-allocator/pkg/cabling/log"
)

var (
	// Global command line flags
	logLevel = cablinglog.NewLevelFlag(slog.LevelInfo)

	// logCounter tallies warn/error records across the whole process so
	// main can report them once the sub-command returns.
	logCounter = cablinglog.NewCounter(cablinglog.NewHandler(logLevel))
)

type subCmd struct {
	description string
	f           func([]string) error
}

var subCmds = map[string]subCmd{
	"allocate": {
		description: "Run the allocator against a project file and write reports",
		f:           subCmdAllocate,
	},
	"diff": {
		description: "Allocate two project files and report their logical/physical diff",
		f:           subCmdDiff,
	},
	"report": {
		description: "Re-render sessions.csv/bom.csv from an existing result.json",
		f:           subCmdReport,
	},
	"serve": {
		description: "Allocate a project file and serve its metrics over HTTP",
		f:           subCmdServe,
	},
	"help": {
		description: "Display this help",
		f:           subCmdHelp,
	},
}

func main() {
	flag.CommandLine.SetOutput(os.Stdout)
	flag.Usage = usage

	help := flag.Bool("help", false, "Display this help")
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cmd, ok := subCmds[args[0]]
	if !ok {
		fmt.Printf("unknown sub-command %q\n", args[0])
		flag.Usage()
		os.Exit(2)
	}

	err := cmd.f(args[1:])
	if warnings, errors := logCounter.Counts(); warnings > 0 || errors > 0 {
		fmt.Printf("logged %d warning(s), %d error(s)\n", warnings, errors)
	}
	if err != nil {
		fmt.Printf("sub-command %q failed: %v\n", args[0], err)
		os.Exit(1)
	}
}

// nolint:errcheck
func usage() {
	f := flag.CommandLine.Output()
	fmt.Fprint(f, `Usage: cabling-allocate <command> [options]

Available commands:`)

	for _, c := range slices.Sorted(maps.Keys(subCmds)) {
		fmt.Fprintf(f, "\n  %-12s %s", c, subCmds[c].description)
	}

	fmt.Fprint(f, `

Use "cabling-allocate <command> --help" for more information about a command.
`)

	fmt.Fprint(f, "\nGlobal options:\n")
	flag.PrintDefaults()
}

func addGlobalFlags(flagset *flag.FlagSet) {
	flagset.Var(logLevel, "log-level", "log level: debug, info, warn or error")
}

func logger() *slog.Logger {
	return slog.New(logCounter)
}

func subCmdHelp(args []string) error {
	flags := flag.NewFlagSet("help", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	flag.Usage()
	return nil
}
