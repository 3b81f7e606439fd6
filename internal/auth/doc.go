// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package auth verifies the bearer tokens the identity provider issues to
MoodReel clients.

Tokens are HS256 JWTs signed with a shared secret. The subject claim is the
user id every recommendation and feedback row is scoped to. After a token
verifies, Middleware places three things on the request context:

  - the parsed Claims (ClaimsFromContext)
  - the user id, for log enrichment (logging.ContextWithUserID)
  - the raw token, which the remote secrets provider forwards
    (secrets.ContextWithSessionToken)

With SecurityConfig.AuthDisabled every request runs as DevUserID. That mode
exists for local development only and is logged loudly at startup.
*/
package auth
