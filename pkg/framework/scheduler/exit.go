// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scheduler

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ExitCode is the process exit status used when the framework cannot make
// progress. Operators and supervisors key on these values.
type ExitCode int

const (
	// ExitInitializationFailure is used when the task snapshot could not be
	// loaded after registration.
	ExitInitializationFailure ExitCode = 1
	// ExitRegistrationFailure is used when the framework id could not be
	// persisted.
	ExitRegistrationFailure ExitCode = 2
	// ExitDisconnected is used when the master event stream ended.
	ExitDisconnected ExitCode = 5
	// ExitError is used when the master reported an error.
	ExitError ExitCode = 6
	// ExitAPIServerTimeout is used when the HTTP server did not come up in
	// time.
	ExitAPIServerTimeout ExitCode = 9
	// ExitProcessingFailure is used when the offer processing loop failed.
	ExitProcessingFailure ExitCode = 13
)

func (c ExitCode) String() string {
	switch c {
	case ExitInitializationFailure:
		return "initialization_failure"
	case ExitRegistrationFailure:
		return "registration_failure"
	case ExitDisconnected:
		return "disconnected"
	case ExitError:
		return "error"
	case ExitAPIServerTimeout:
		return "api_server_timeout"
	case ExitProcessingFailure:
		return "processing_failure"
	}
	return "unknown"
}

// Exiter terminates the process. It is replaced in tests.
type Exiter func(code ExitCode, reason string)

// OSExiter logs the reason and exits the process with code.
func OSExiter(code ExitCode, reason string) {
	log.WithFields(log.Fields{
		"exit_code": int(code),
		"exit_name": code.String(),
		"reason":    reason,
	}).Error("Exiting framework scheduler")
	os.Exit(int(code))
}
