package network

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"snake-web/game/types"
)

// RecentScores is how many past games /api/highscore returns
const RecentScores = 10

// ScoreSource is the read side of storage.Store
type ScoreSource interface {
	LoadHighScore() (int, error)
	RecentScores(n int) ([]int, error)
}

// Server exposes the hub and the score API over HTTP
type Server struct {
	hub    *Hub
	scores ScoreSource
	logger *log.Logger
}

func NewServer(hub *Hub, scores ScoreSource) *Server {
	return &Server{
		hub:    hub,
		scores: scores,
		logger: log.New(os.Stderr, "[http] ", log.LstdFlags|log.Lmsgprefix),
	}
}

func (s *Server) SetLogger(l *log.Logger) {
	s.logger = l
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(corsMiddleware)

	r.Get("/ws", s.hub.ServeWs)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/highscore", s.handleHighScore)
		r.Get("/maps", s.handleMaps)
	})

	return r
}

// HTTPServer wraps the router for addr
func (s *Server) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

type highScoreResponse struct {
	HighScore int   `json:"highScore"`
	Recent    []int `json:"recent"`
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	high, err := s.scores.LoadHighScore()
	if err != nil {
		s.logger.Printf("load high score: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load high score")
		return
	}
	recent, err := s.scores.RecentScores(RecentScores)
	if err != nil {
		s.logger.Printf("recent scores: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if recent == nil {
		recent = []int{}
	}
	writeJSON(w, http.StatusOK, highScoreResponse{HighScore: high, Recent: recent})
}

type mapInfo struct {
	ID         string `json:"id"`
	Background string `json:"background"`
	Obstacles  int    `json:"obstacles"`
}

type mapsResponse struct {
	Maps         []mapInfo          `json:"maps"`
	Difficulties []types.Difficulty `json:"difficulties"`
}

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	resp := mapsResponse{
		Difficulties: []types.Difficulty{types.Easy, types.Medium, types.Hard},
	}
	for _, id := range types.MapIDs {
		m, err := types.LookupMap(id)
		if err != nil {
			continue
		}
		resp.Maps = append(resp.Maps, mapInfo{ID: m.ID, Background: m.Background, Obstacles: len(m.Obstacles)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
