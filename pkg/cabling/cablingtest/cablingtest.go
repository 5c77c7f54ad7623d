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

// Package cablingtest holds small test-only helpers shared across the
// module's test suites: multierror-aware error assertions and loading of
// the literal scenario fixtures under pkg/cabling/testdata.
package cablingtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/icecake-patchwork/cabling-allocator/pkg/cabling/schema"
)

// VerifyError checks that err has exactly expectedCount underlying errors
// (when err is a *multierror.Error) and that its message contains every
// string in expectedSubstrings, failing t otherwise.
func VerifyError(t *testing.T, err error, expectedCount int, expectedSubstrings ...string) bool {
	t.Helper()

	if expectedCount == 0 {
		if err != nil {
			t.Errorf("expected no error, got: %v", err)
			return false
		}
		return true
	}

	if err == nil {
		t.Errorf("expected %d error(s), got nil", expectedCount)
		return false
	}

	if merr, ok := err.(*multierror.Error); ok {
		if len(merr.Errors) != expectedCount {
			t.Errorf("expected %d error(s), got %d: %v", expectedCount, len(merr.Errors), merr)
			return false
		}
	} else if expectedCount > 1 {
		t.Errorf("expected %d errors, but got a single non-multierror: %v", expectedCount, err)
		return false
	}

	for _, substring := range expectedSubstrings {
		if !strings.Contains(err.Error(), substring) {
			t.Errorf("expected error to contain %q, got: %v", substring, err)
		}
	}
	return true
}

// FixtureProject decodes pkg/cabling/testdata/<name>.yaml into a Project,
// failing t on any read or decode error.
func FixtureProject(t *testing.T, name string) *schema.Project {
	t.Helper()

	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("cablingtest: reading fixture %q: %v", name, err)
	}
	p, err := schema.Decode(data)
	if err != nil {
		t.Fatalf("cablingtest: decoding fixture %q: %v", name, err)
	}
	return p
}

// FixturePath resolves the on-disk path of a named testdata fixture.
func FixturePath(name string) string {
	return filepath.Join("testdata", name+".yaml")
}
