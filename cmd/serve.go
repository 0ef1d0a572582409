package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/etnz/contracts"
	"github.com/etnz/contracts/date"
	"github.com/etnz/contracts/renderer"
	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the reports over HTTP" }
func (*serveCmd) Usage() string {
	return `painel serve [-addr <address>]

  Serves the dashboard, the financial table and the contract audits as
  HTML pages:

    /                  executive dashboard
    /financeiro        financial table
    /contrato/{id}     audit of a contract

  The fiscal year is selected with the "ano" query parameter. The snapshot
  is reloaded when the files of the data directory change.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := Logger()
	defer logger.Sync()

	if _, err := Today(); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -today: %v\n", err)
		return subcommands.ExitUsageError
	}
	s := newServer(*dataDir, logger)
	s.year = *year
	if *today != "" {
		s.today = func() date.Date { on, _ := Today(); return on }
	}
	if err := s.reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.watch(ctx); err != nil {
		logger.Warn("snapshot will not be reloaded", zap.Error(err))
	}

	srv := &http.Server{Addr: c.addr, Handler: s.routes(), ReadHeaderTimeout: 10 * time.Second}
	logger.Info("serving", zap.String("addr", c.addr), zap.String("dir", *dataDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// server renders the reports of a snapshot directory to HTML.
type server struct {
	dir    string
	year   int // 0 for the year of today
	today  func() date.Date
	logger *zap.Logger
	md     goldmark.Markdown

	analyzer *contracts.Analyzer

	mu   sync.RWMutex
	snap *contracts.Snapshot
}

func newServer(dir string, logger *zap.Logger) *server {
	return &server{
		dir:      dir,
		today:    date.Today,
		logger:   logger,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		analyzer: &contracts.Analyzer{Memo: contracts.NewMemo(4096), Logger: logger},
	}
}

// reload reads the snapshot again and drops the cached exercises.
func (s *server) reload() error {
	snap, err := contracts.LoadSnapshot(s.dir)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	s.mu.Lock()
	s.snap = snap
	s.analyzer.Memo.Purge()
	s.mu.Unlock()
	s.logger.Info("snapshot loaded", zap.String("dir", s.dir), zap.Int("contracts", len(snap.Contracts)))
	return nil
}

func (s *server) snapshot() *contracts.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// watch reloads the snapshot whenever one of its files is written, until ctx is done.
func (s *server) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !snapshotFile(ev.Name) || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)) {
					continue
				}
				s.logger.Debug("snapshot changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
				if err := s.reload(); err != nil {
					s.logger.Warn("reload failed", zap.Error(err))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func snapshotFile(name string) bool {
	switch filepath.Base(name) {
	case contracts.ContractsFile, contracts.HistoriesFile, contracts.CommitmentsFile:
		return true
	}
	return false
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /financeiro", s.handleTable)
	mux.HandleFunc("GET /contrato/{id...}", s.handleContract)
	return mux
}

// period reads the fiscal year of the request.
func (s *server) period(r *http.Request) (int, date.Date, error) {
	on := s.today()
	y := s.year
	if y == 0 {
		y = on.Year()
	}
	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, on, fmt.Errorf("invalid year %q", v)
		}
		y = n
	}
	return y, on, nil
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	y, on, err := s.period(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := s.analyzer.Dashboard(r.Context(), s.snapshot(), y, on)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.page(w, fmt.Sprintf("Painel %d", y), renderer.RenderDashboard(d))
}

func (s *server) handleTable(w http.ResponseWriter, r *http.Request) {
	y, on, err := s.period(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := s.analyzer.Table(r.Context(), s.snapshot(), y, on)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.page(w, fmt.Sprintf("Financeiro %d", y), renderer.TableMarkdown(t))
}

func (s *server) handleContract(w http.ResponseWriter, r *http.Request) {
	y, on, err := s.period(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := audit(s.analyzer, s.snapshot(), r.PathValue("id"), y, on)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.page(w, "Contrato "+a.Contract.Number, renderer.RenderContract(a, renderer.ContractRenderOptions{}))
}

func (s *server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("report failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<nav><a href="/">Painel</a> | <a href="/financeiro">Financeiro</a></nav>
{{.Body}}
</body>
</html>
`))

// page converts a markdown report to an HTML page.
func (s *server) page(w http.ResponseWriter, title, md string) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(md), &body); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		s.logger.Warn("write failed", zap.Error(err))
	}
}
