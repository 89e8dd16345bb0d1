package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eyobt/schoolhub/internal/bootstrap"
	"github.com/eyobt/schoolhub/internal/config"
	"github.com/eyobt/schoolhub/internal/db"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	config *config.Config
	router *gin.Engine
	db     *db.PostgresDB
	http   *http.Server
}

// NewServer loads configuration, connects the database and builds the router.
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, err
	}

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database)
	if err != nil {
		database.Close()
		return nil, err
	}

	router := bootstrap.SetupRouter(cfg, deps)

	s := &Server{
		config: cfg,
		router: router,
		db:     database,
	}
	s.setupStaticFileServing()

	return s, nil
}

// setupStaticFileServing exposes uploaded profile pictures.
func (s *Server) setupStaticFileServing() {
	s.router.Static("/uploads", s.config.Server.StoragePath)
}

// Run starts the HTTP server and blocks until shutdown completes.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.http.Addr).Msg("Starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		s.db.Close()
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the HTTP server and closes the database pool.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("Server forced to shutdown")
			err = shutdownErr
		}
	}

	s.db.Close()
	log.Info().Msg("Server exited")
	return err
}
