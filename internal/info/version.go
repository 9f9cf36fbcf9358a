/**
# Copyright (c) 2022, NVIDIA CORPORATION.  All rights reserved.
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package info

import "strings"

// version is set at build time through go build's -ldflags -X option.
var version = "unknown"

// gitCommit is the hash the binary was built from, also set at build time.
var gitCommit = ""

// GetVersionString returns the version, the commit hash when one was
// recorded at build time, and any extra lines, joined with newlines.
func GetVersionString(more ...string) string {
	v := []string{version}

	if gitCommit != "" {
		v = append(v, "commit: "+gitCommit)
	}

	return strings.Join(append(v, more...), "\n")
}
