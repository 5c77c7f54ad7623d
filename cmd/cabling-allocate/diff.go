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
	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/diffengine"
)

func subCmdDiff(args []string) error {
	flags := flag.NewFlagSet("diff", flag.ExitOnError)
	addGlobalFlags(flags)
	oldFile := flags.String("old-config", "", "path to the previous project document")
	newFile := flags.String("new-config", "", "path to the revised project document")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *oldFile == "" || *newFile == "" {
		return fmt.Errorf("-old-config and -new-config must both be specified")
	}

	oldProject, err := loadProject(*oldFile)
	if err != nil {
		return err
	}
	newProject, err := loadProject(*newFile)
	if err != nil {
		return err
	}

	oldResult, err := allocator.Allocate(oldProject, allocator.WithLogger(logger()))
	if err != nil {
		return err
	}
	newResult, err := allocator.Allocate(newProject, allocator.WithLogger(logger()))
	if err != nil {
		return err
	}

	out := struct {
		Logical  diffengine.LogicalDiff  `json:"logical"`
		Physical diffengine.PhysicalDiff `json:"physical"`
	}{
		Logical:  diffengine.Logical(oldResult.Sessions, newResult.Sessions),
		Physical: diffengine.Physical(oldResult.Sessions, newResult.Sessions),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding diff: %w", err)
	}

	fmt.Fprintf(os.Stderr, "logical: +%d -%d ~%d, physical: +%d -%d collisions=%d\n",
		len(out.Logical.Added), len(out.Logical.Removed), len(out.Logical.Modified),
		len(out.Physical.Added), len(out.Physical.Removed), len(out.Physical.Collisions))
	return nil
}
