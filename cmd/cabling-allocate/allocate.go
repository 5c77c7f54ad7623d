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
	"flag"
	"fmt"
	"os"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/report"
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

func subCmdAllocate(args []string) error {
	flags := flag.NewFlagSet("allocate", flag.ExitOnError)
	addGlobalFlags(flags)
	configFile := flags.String("config-file", "", "path to a project document")
	outDir := flags.String("out-dir", ".", "directory to write sessions.csv, bom.csv and result.json into")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configFile == "" {
		return fmt.Errorf("-config-file must be specified")
	}

	project, err := loadProject(*configFile)
	if err != nil {
		return err
	}

	result, err := allocator.Allocate(project, allocator.WithLogger(logger()))
	if err != nil {
		return err
	}

	if err := report.WriteAll(*outDir, result); err != nil {
		return err
	}

	fmt.Printf("allocated %d sessions across %d panels, %d modules, %d cables\n",
		result.Metrics.SessionCount, result.Metrics.PanelCount, result.Metrics.ModuleCount, result.Metrics.CableCount)
	if !result.Complete() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s: %s %v\n", e.Kind, e.Message, e.Entities)
		}
		return fmt.Errorf("allocation incomplete: %d error(s)", len(result.Errors))
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s %v\n", w.Kind, w.Message, w.Entities)
	}
	return nil
}

func loadProject(path string) (*schema.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	project, err := schema.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return project, nil
}
