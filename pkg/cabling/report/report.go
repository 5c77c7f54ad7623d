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

// Package report implements the three documented downstream artifacts of
// §6: sessions.csv, bom.csv, and result.json. None of this is part of the
// allocator core — it is what a caller does with a Result once it has one.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/allocator"
)

// WriteAll writes sessions.csv, bom.csv, and result.json into dir,
// creating it if necessary.
func WriteAll(dir string, result allocator.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report: creating output dir %q: %w", dir, err)
	}

	writers := []struct {
		name string
		fn   func(f *os.File) error
	}{
		{"sessions.csv", func(f *os.File) error { return WriteSessionsCSV(f, result) }},
		{"bom.csv", func(f *os.File) error { return WriteBOMCSV(f, result) }},
		{"result.json", func(f *os.File) error { return WriteResultJSON(f, result) }},
	}

	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		f, err := createReportFile(path)
		if err != nil {
			return fmt.Errorf("report: creating %q: %w", path, err)
		}
		err = w.fn(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("report: writing %q: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("report: closing %q: %w", path, closeErr)
		}
	}
	return nil
}
