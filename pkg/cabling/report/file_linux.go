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

//go:build linux

package report

import (
	"os"

	"golang.org/x/sys/unix"
)

// reportFileMode is the mode report files are created with before the
// umask is applied. Reports can carry rack and cabling topology that
// operators don't want world-readable by default, so we pin a umask for
// the duration of the create rather than trust whatever the process
// inherited.
const reportFileMode = 0o640

// createReportFile creates path for writing, forcing a restrictive mode
// regardless of the caller's ambient umask.
func createReportFile(path string) (*os.File, error) {
	old := unix.Umask(0o077)
	defer unix.Umask(old)
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, reportFileMode)
}
