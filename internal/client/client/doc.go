// Package client is the remote entity gateway of the club portal.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see Gateway and its per-entity parts
//     UserAPI, ClubAPI, ActivityAPI, RegistrationAPI, NotificationAPI and
//     BadgeAPI) with exactly one method per entity operation.
//  2. A REST implementation (see HTTPClient) that tags every request with an
//     X-Request-ID, decodes JSON bodies and classifies failures.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failure is an *Error whose Kind is transport, rejected or malformed.
// Match with errors.Is against ErrTransport, ErrRejected, ErrMalformed,
// ErrUnauthorized or ErrNotFound; ServerMessage and UserMessage expose the
// server-supplied text of a rejection.
//
// The gateway keeps no cache. Reads always reach the network.
package client
