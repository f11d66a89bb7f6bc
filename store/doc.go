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


// Package store defines the vector store abstraction and its in-memory
// reference implementation.
//
// Persistent backends live in subpackages: store/badger (local, embedded
// BadgerDB) and store/qdrant (remote, REST). All backends share the
// chunk wire codec and filter semantics defined here, and honor the same
// atomicity contract: one AddChunks call is all-or-nothing with respect
// to concurrent readers.
package store
