// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every ballot-box route.

WithLogging gives each request an id. An X-Request-ID sent by a proxy is
reused, otherwise a UUID is minted. The id goes back in the response header,
into the request context (read it with RequestID) and onto both log lines.
The completion line records the status the handler actually wrote, 200 when
it never called WriteHeader, and the elapsed milliseconds.

	mux.HandleFunc("POST /cast-vote", middleware.WithLogging(h.CastVote))

CORS opens the API to the browser voting page. Only GET, POST and OPTIONS are
offered; X-Request-ID may be sent and is exposed to scripts. Preflight
requests are answered here and never reach the mux.

JSONResponse and ErrorResponse write the response envelope. Errors carry
"status": "error", the HTTP status text and a message:

	middleware.ErrorResponse(w, http.StatusConflict, "Voter has already voted")

GetClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
host part of RemoteAddr.
*/
package middleware
