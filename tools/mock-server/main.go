// Package main implements a deliberately unreliable bokdeok backend for
// exercising client failure handling. It answers the same routes as the
// development server but can reject scrap changes, expire tokens, and
// answer errors in each payload shape backends are known to send.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/donaldgifford/bokdeok/internal/mockapi"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// Failure modes for scrap mutations.
const (
	failNone    = "none"
	failServer  = "server"  // 500 {"data":{"message":...}}
	failExpire  = "expire"  // 401 {"message":...}
	failText    = "text"    // 400 plain text
	failTimeout = "timeout" // sleeps past the client timeout
)

type options struct {
	fail        string
	expireAfter int64
	latency     time.Duration
	hang        time.Duration
}

type server struct {
	opts   options
	log    *slog.Logger
	houses []domain.HouseDTO

	served atomic.Int64 // authenticated requests

	mu     sync.Mutex
	scraps map[domain.ListingID]struct{}
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fail := flag.String("fail", failNone, "scrap mutation failure: none, server, expire, text, timeout")
	expireAfter := flag.Int64("expire-after", 0, "answer 401 after this many authenticated requests (0 disables)")
	latency := flag.Duration("latency", 0, "delay added to every response")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv, err := newServer(options{
		fail:        *fail,
		expireAfter: *expireAfter,
		latency:     *latency,
		hang:        30 * time.Second,
	}, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting flaky bokdeok server", "addr", addr, "fail", *fail, "expire_after", *expireAfter)

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Minute,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newServer(opts options, logger *slog.Logger) (*server, error) {
	switch opts.fail {
	case failNone, failServer, failExpire, failText, failTimeout:
	default:
		return nil, fmt.Errorf("unknown failure mode %q", opts.fail)
	}

	houses, err := mockapi.Houses()
	if err != nil {
		return nil, err
	}

	s := &server{
		opts:   opts,
		log:    logger,
		houses: houses,
		scraps: make(map[domain.ListingID]struct{}),
	}
	for _, id := range mockapi.MockScraps {
		s.scraps[id] = struct{}{}
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", s.login)
	mux.HandleFunc("GET /api/v1/user/profile", s.authed(s.profile))
	mux.HandleFunc("GET /api/v1/scrap", s.authed(s.listScraps))
	mux.HandleFunc("POST /api/v1/scrap/{id}", s.authed(s.setScrap(true)))
	mux.HandleFunc("DELETE /api/v1/scrap/{id}", s.authed(s.setScrap(false)))
	mux.HandleFunc("GET /api/v1/estate", s.estates)
	return s.delay(mux)
}

func (s *server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path)
		if s.opts.latency > 0 {
			time.Sleep(s.opts.latency)
		}
		next.ServeHTTP(w, r)
	})
}

// authed rejects requests without a bearer token, and every request once
// expire-after is exceeded.
func (s *server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
			return
		}
		n := s.served.Add(1)
		if s.opts.expireAfter > 0 && n > s.opts.expireAfter {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		}
		next(w, r)
	}
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}
	user := mockapi.MockUser
	user.Email = creds.Email
	writeJSON(w, http.StatusOK, map[string]any{"token": "flaky-token", "user": user})
}

func (s *server) profile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mockapi.MockUser)
}

func (s *server) listScraps(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ids := make([]domain.ListingID, 0, len(s.scraps))
	for id := range s.scraps {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, ids)
}

func (s *server) setScrap(scrapped bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := domain.ListingID(r.PathValue("id"))

		switch s.opts.fail {
		case failServer:
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"data": map[string]string{"message": "scrap store unavailable"},
			})
			return
		case failExpire:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		case failText:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck // best-effort write in mock server
			w.Write([]byte("scrap rejected"))
			return
		case failTimeout:
			select {
			case <-time.After(s.opts.hang):
			case <-r.Context().Done():
				return
			}
		}

		s.mu.Lock()
		if scrapped {
			s.scraps[id] = struct{}{}
		} else {
			delete(s.scraps, id)
		}
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"id": id, "scrapped": scrapped})
	}
}

func (s *server) estates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.houses)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
