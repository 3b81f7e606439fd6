// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package recommend assembles mood-aware movie recommendation batches.
//
// # Pipeline
//
// One call to Service.Assemble:
//
//  1. persists the preference set (its id becomes the batch id)
//  2. asks the text source for candidate titles
//  3. resolves the first ResolveLimit candidates with metadata search and
//     credits, concurrently, keeping candidate order
//  4. discovers top-rated movies of the requested genre, concurrently with
//     steps 2 and 3
//  5. merges resolved then discovered entries, dropping duplicate ids
//  6. persists the batch and publishes domain events
//
// If steps 2 to 5 panic or produce nothing, the bundled catalog is ranked
// with the mood heuristic and returned instead. Live and fallback results
// are never blended.
//
// # Collaborators
//
// Every external dependency is injected: source.TextGenerator,
// source.MetadataSource, store.Store and a Publisher. Sources never return
// errors to the pipeline; they return tagged source.Result values and a
// Malformed or Unavailable result simply contributes nothing.
//
// # Thread Safety
//
// Service is safe for concurrent use. Concurrent assemblies for the same
// user write independent batches; the Guard decides which of them is still
// current for the caller.
package recommend
