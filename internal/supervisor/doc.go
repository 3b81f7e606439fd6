// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package supervisor runs MoodReel's long-lived components under a suture
supervision tree.

	moodreel (root)
	├── maintenance   store checkpoints
	├── events        domain event log
	└── api           HTTP server

Each layer is its own supervisor so a crashing event consumer is restarted
with backoff without disturbing the HTTP server. Supervisor lifecycle
events are logged through sutureslog on the zerolog-backed slog handler.
*/
package supervisor
