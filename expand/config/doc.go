// Copyright the partial-application authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config manages the partialgen configuration file and leveled logging.

Use [Load](filename) to load a configuration from a specific filename, or
[Default]() when no file is given.

Use [SetGlobalConfig](filename) to set filename as the global config, and then
[LoadGlobal]() to load the global config.

A config file is in yaml format. For example:

	log-level: 4
	param-prefix: pa
	marker: github.com/Emerentius/partial-application/partial.Gen
	dry-run: false
*/
package config
