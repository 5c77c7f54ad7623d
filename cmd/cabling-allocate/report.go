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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/report"
)

func subCmdReport(args []string) error {
	flags := flag.NewFlagSet("report", flag.ExitOnError)
	addGlobalFlags(flags)
	resultFile := flags.String("result-file", "", "path to a previously written result.json")
	outDir := flags.String("out-dir", ".", "directory to write sessions.csv and bom.csv into")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *resultFile == "" {
		return fmt.Errorf("-result-file must be specified")
	}

	data, err := os.ReadFile(*resultFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", *resultFile, err)
	}
	var result allocator.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("decoding %q: %w", *resultFile, err)
	}

	if err := report.WriteAll(*outDir, result); err != nil {
		return err
	}
	fmt.Printf("wrote sessions.csv, bom.csv and result.json to %s\n", *outDir)
	return nil
}
