// Package cli is the interactive club portal client.
//
// NewApp wires configuration, the local SQLite store, the REST gateway, the
// session store and the per-role services. App.Run restores the previous
// session and starts a REPL whose command set follows the current view:
// guest, student, club manager or admin, as chosen by the router. While the
// student view is active a background poller keeps the student's
// registration list fresh.
package cli
