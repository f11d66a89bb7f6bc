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


// Package loader parses raw file bytes into documents.
//
// Each Loader handles one source format (plain text, PDF, DOCX) and is a
// pure transform: the caller reads the bytes, the loader only parses them.
// A Registry maps file extensions to loaders and is resolved once at
// startup, keeping format dispatch out of the ingestion workflow.
package loader
