// Copyright 2026 Halcyard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package loader

import "errors"

var (
	// ErrUnsupportedFormat indicates no loader is registered for the
	// file's extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptInput indicates the bytes could not be parsed as the
	// format the loader handles. Deterministic: retrying changes nothing.
	ErrCorruptInput = errors.New("corrupt document input")
)
