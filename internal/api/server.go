package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/session"
)

// Options tunes the presentation delays. Both are applied after the state change
// has been committed, so a client that hangs up early never leaves it half done.
type Options struct {
	RevealDelay time.Duration
	MatchDelay  time.Duration
}

// Server serves one save slot over HTTP/JSON.
type Server struct {
	session   *session.Session
	log       *zap.Logger
	opts      Options
	startTime time.Time
}

func NewServer(sess *session.Session, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{session: sess, log: log, opts: opts, startTime: time.Now()}
}

// Routes sets up the router with its middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/state/reset", s.handleReset)

		r.Get("/packs", s.handleListPacks)
		r.Post("/packs/{packID}/open", s.handleOpenPack)

		r.Post("/cards/{cardID}/sell", s.handleSellCard)
		r.Post("/cards/{cardID}/lock", s.handleToggleLock)

		r.Get("/lineup", s.handleLineup)
		r.Put("/lineup/{slot}", s.handleEquip)
		r.Delete("/lineup/{slot}", s.handleUnequip)
		r.Post("/lineup/optimize", s.handleOptimize)

		r.Get("/auction", s.handleAuction)
		r.Post("/auction/refresh", s.handleAuctionRefresh)
		r.Post("/auction/{cardID}/buy", s.handleBuyListing)

		r.Get("/opponent", s.handleOpponent)
		r.Post("/wager", s.handleWager)

		r.Get("/wheel", s.handleWheel)
		r.Post("/wheel/spin", s.handleSpin)

		r.Get("/quests", s.handleQuests)
		r.Post("/quests/{questID}/claim", s.handleClaimQuest)

		r.Get("/sets", s.handleSets)
		r.Post("/sets/{setID}/claim", s.handleClaimSet)

		r.Post("/scout", s.handleScout)
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

// pause waits out a presentation delay unless the client goes away first.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		CatalogVersion: s.session.Engine().Catalog.Version,
		Uptime:         time.Since(s.startTime).Round(time.Second).String(),
		RequestID:      middleware.GetReqID(r.Context()),
	})
}
