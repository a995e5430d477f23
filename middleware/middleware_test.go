// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-box/models"
)

// captureLogs routes the default logger into a buffer for the rest of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// completedRecord returns the "request completed" log line
func completedRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %s", scanner.Text())
		}
		if rec["msg"] == "request completed" {
			return rec
		}
	}
	t.Fatal("no request completed log line")
	return nil
}

func TestWithLogging_LogsWrittenStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name: "explicit created",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, models.MessageResponse{Status: models.StatusSuccess})
			},
			status: http.StatusCreated,
		},
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			},
			status: http.StatusOK,
		},
		{
			name: "conflict",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusConflict, "Voter has already voted")
			},
			status: http.StatusConflict,
		},
		{
			name: "unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
			},
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			w := httptest.NewRecorder()
			WithLogging(tt.handler)(w, httptest.NewRequest("POST", "/cast-vote", nil))

			if w.Code != tt.status {
				t.Errorf("Expected response status %d, got %d", tt.status, w.Code)
			}
			rec := completedRecord(t, buf)
			if got, _ := rec["status"].(float64); int(got) != tt.status {
				t.Errorf("Expected logged status %d, got %v", tt.status, rec["status"])
			}
			if rec["path"] != "/cast-vote" || rec["method"] != "POST" {
				t.Errorf("Unexpected method/path in log: %v %v", rec["method"], rec["path"])
			}
			if rec["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Errorf("Logged id %v does not match header %q", rec["request_id"], w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	captureLogs(t)

	t.Run("generated", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		WithLogging(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestID(r.Context())
		})(w, httptest.NewRequest("GET", "/get-results", nil))

		header := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(header); err != nil {
			t.Errorf("Expected a UUID request id, got %q", header)
		}
		if seen != header {
			t.Errorf("Context id %q does not match header %q", seen, header)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		var seen string
		req := httptest.NewRequest("GET", "/get-results", nil)
		req.Header.Set(RequestIDHeader, "edge-42")
		w := httptest.NewRecorder()
		WithLogging(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestID(r.Context())
		})(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "edge-42" {
			t.Errorf("Expected upstream id echoed, got %q", got)
		}
		if seen != "edge-42" {
			t.Errorf("Expected upstream id in context, got %q", seen)
		}
	})

	t.Run("distinct per request", func(t *testing.T) {
		handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {})
		first, second := httptest.NewRecorder(), httptest.NewRecorder()
		handler(first, httptest.NewRequest("GET", "/", nil))
		handler(second, httptest.NewRequest("GET", "/", nil))
		if first.Header().Get(RequestIDHeader) == second.Header().Get(RequestIDHeader) {
			t.Error("Expected a fresh id for each request")
		}
	})
}

func TestRequestID_Missing(t *testing.T) {
	if id := RequestID(httptest.NewRequest("GET", "/", nil).Context()); id != "" {
		t.Errorf("Expected empty id outside WithLogging, got %q", id)
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight stops here", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("OPTIONS", "/cast-vote", nil)
		req.Header.Set("Origin", "https://vote.example.org")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for preflight, got %d", w.Code)
		}
		if called {
			t.Error("Preflight should not reach the wrapped handler")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://vote.example.org" {
			t.Errorf("Expected origin reflected, got %q", got)
		}
	})

	t.Run("only read and submit methods", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/get-candidates", nil))

		methods := w.Header().Get("Access-Control-Allow-Methods")
		if methods != "GET, POST, OPTIONS" {
			t.Errorf("Unexpected allowed methods %q", methods)
		}
		for _, m := range []string{"PUT", "DELETE", "PATCH"} {
			if strings.Contains(methods, m) {
				t.Errorf("%s should not be allowed", m)
			}
		}
	})

	t.Run("request id header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/get-candidates", nil))

		if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, RequestIDHeader) || !strings.Contains(got, "Content-Type") {
			t.Errorf("Expected Content-Type and %s allowed, got %q", RequestIDHeader, got)
		}
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != RequestIDHeader {
			t.Errorf("Expected %s exposed, got %q", RequestIDHeader, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin without Origin header, got %q", got)
		}
	})

	t.Run("other requests pass through", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/cast-vote", nil))
		if !called {
			t.Error("Expected POST to reach the wrapped handler")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"ipv4 with port", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"ipv6 with port", "[::1]:12345", nil, "::1"},
		{"no port", "192.0.2.1", nil, "192.0.2.1"},
		{"first forwarded hop", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
		{"forwarded hop with spaces", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "  203.0.113.5 ,10.0.0.2"}, "203.0.113.5"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"forwarded wins over real ip", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.7"}, "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorResponse_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Candidate not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != models.StatusError || resp.Error != "Not Found" || resp.Message != "Candidate not found" {
		t.Errorf("Unexpected envelope: %+v", resp)
	}
}

func TestParseJSONBody_CandidateID(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    models.CandidateID
		wantErr bool
	}{
		{"number", `{"voter_id":"V1","candidate_id":7}`, 7, false},
		{"string from a form", `{"voter_id":"V1","candidate_id":"7"}`, 7, false},
		{"absent", `{"voter_id":"V1"}`, 0, false},
		{"not numeric", `{"voter_id":"V1","candidate_id":"seven"}`, 0, true},
		{"broken json", `{"voter_id":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.CastVoteRequest
			err := ParseJSONBody(httptest.NewRequest("POST", "/cast-vote", strings.NewReader(tt.body)), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && req.CandidateID != tt.want {
				t.Errorf("Expected candidate_id %d, got %d", tt.want, req.CandidateID)
			}
		})
	}
}
