/*
Copyright 2025 The vcrc Authors.

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

package core

import "fmt"

// ConfigurationError reports component parameters or a topology that cannot form a cycle.
type ConfigurationError struct {
	// Field is the dotted path of the offending parameter, e.g. "compressor.efficiency".
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid cycle configuration: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
