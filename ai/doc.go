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


// Package ai provides abstractions for the AI services raglet depends on.
//
// It defines interfaces for text embedding and grounded answer
// generation, plus the shared configuration and error classification the
// concrete providers (ai/openai, ai/ollama) build on. Workflows depend
// only on these abstractions; provider selection happens once at startup.
package ai
