// Package services defines the [Catalog] interface for music catalog providers and implements it for Audius.
//
// # Catalog Interface
//
// A catalog answers three read-only questions: which tracks match a query, which tracks
// are trending, and where a track's audio can be streamed from.
//
// # Audius Implementation
//
// [AudiusService] talks to a single discovery provider over HTTP. It does not pick
// providers, retry, or cache; every call maps to exactly one upstream request and uses
// the caller's context, so a cancelled inbound request aborts the upstream call.
//
// Search and trending decode the `{"data": [...]}` envelope into [models.Track] values.
// Stream resolution requests `/v1/tracks/{id}/stream` without following redirects and
// returns the Location header.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : network failure, unexpected status, or malformed body
//   - [shared.ErrStreamNotFound] : stream lookup succeeded without a redirect target
//
// Wrapped errors carry the status and a body excerpt for logging. They are not meant to
// be shown to API callers.
package services
