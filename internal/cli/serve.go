package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/futurita/flowbox/pkg/boardfile"
	"github.com/futurita/flowbox/pkg/config"
	"github.com/futurita/flowbox/pkg/container"
	"github.com/futurita/flowbox/pkg/render/svg"
)

// newServeCmd creates the serve command: a read-only HTTP view of the board
// set for sharing and quick inspection. All mutation still happens through
// the editor; the server never writes to the store.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only HTTP view of the board set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			c, st, cfg, err := openContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeMux(c, cfg),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Info("serving board set", "addr", addr, "boards", c.Len())
			printInfo("listening on %s", StyleHighlight.Render("http://"+addr))

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return cmd.Context().Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8423", "listen address")
	return cmd
}

// boardSummary is the list entry shape served at /boards.
type boardSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Nodes      int    `json:"nodes"`
	Connectors int    `json:"connectors"`
	Active     bool   `json:"active"`
}

// newServeMux builds the read-only router over a loaded container.
func newServeMux(c *container.Container, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/boards", func(w http.ResponseWriter, req *http.Request) {
		active := c.ActiveEntry()
		out := make([]boardSummary, 0, c.Len())
		for _, e := range c.Entries() {
			out = append(out, boardSummary{
				ID:         e.Board.ID,
				Title:      e.Board.Title,
				Nodes:      e.Board.NodeCount(),
				Connectors: e.Board.ConnectorCount(),
				Active:     active != nil && e.Board.ID == active.Board.ID,
			})
		}
		writeJSON(w, out)
	})

	r.Get("/boards/{id}", func(w http.ResponseWriter, req *http.Request) {
		e, err := c.Find(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		e.Session.Flush()
		writeJSON(w, boardfile.FromBoard(e.Board))
	})

	r.Get("/boards/{id}/svg", func(w http.ResponseWriter, req *http.Request) {
		e, err := c.Find(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := svg.Export(e.Session, cfg.Canvas.Width, cfg.Canvas.Height, w); err != nil && !errors.Is(err, context.Canceled) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
