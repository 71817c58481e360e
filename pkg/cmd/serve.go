package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gilchrisn/heterogeneous-graphlets/pkg/api"
	"github.com/gilchrisn/heterogeneous-graphlets/pkg/store"
)

var allowedOrigins []string

var serveCmd = &cobra.Command{
	Use:   "serve [nodes.csv edges.csv]",
	Short: "Serve graph metadata and per-edge graphlet counts over HTTP",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := loadGraph(args)
		if err != nil {
			return err
		}
		classifier, err := newClassifier(g)
		if err != nil {
			return err
		}

		var s *store.Store
		if path := config.StorePath(); path != "" {
			if s, err = store.Open(store.Options{Path: path, ReadOnly: true}); err != nil {
				return err
			}
			defer s.Close()
			if meta, err := s.GetMeta(); err == nil {
				log.Info().
					Str("run_id", meta.RunID).
					Int64("edges", meta.Edges).
					Msg("Serving stored edge counters")
			}
		}

		server := &http.Server{
			Addr:         config.ServerAddress(),
			Handler:      api.CORS(api.NewRouter(api.NewHandlers(classifier, s)), allowedOrigins),
			ReadTimeout:  config.ServerReadTimeout(),
			WriteTimeout: config.ServerWriteTimeout(),
		}

		errs := make(chan error, 1)
		go func() {
			log.Info().
				Str("address", server.Addr).
				Int("nodes", g.NumberOfNodes()).
				Int("edges", g.NumberOfEdges()).
				Msg("HTTP server starting")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errs <- err
			}
			close(errs)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errs:
			return err
		case <-quit:
		}

		log.Info().Msg("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		log.Info().Msg("Server shutdown complete")
		return nil
	},
}

func init() {
	addGraphFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("store", "", "badger directory of counters written by count --store")
	serveCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", nil, "CORS origins; all when empty")
}
