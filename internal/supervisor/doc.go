// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

	RootSupervisor ("cinematch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogService      loads artifacts once, then exits
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The HTTP server starts immediately so probes can answer while the catalog
is loading. Supervisor events (restarts, backoff, stop timeouts) are logged
through sutureslog into the zerolog-backed slog handler.
*/
package supervisor
