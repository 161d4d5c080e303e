package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"FlipPulse/internal/domain/models"
	"FlipPulse/internal/usecase"
	"FlipPulse/pkg/cache"
	"FlipPulse/pkg/config"
	xhttp "FlipPulse/pkg/http"
	applogger "FlipPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	refresher  *usecase.Refresher
	handler    xhttp.Handler
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	refresher *usecase.Refresher,
	handler xhttp.Handler,
	c cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		refresher: refresher,
		handler:   handler,
		cache:     c,
	}
}

// Run starts the refresher and HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	a.refresher.Start(ctx)
	a.logger.Info("refresher started", applogger.Duration("interval", a.cfg.Refresh.Interval))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// RunOnce performs a single fetch-and-evaluate pass and prints the top
// recommendations to stdout. No server is started.
func (a *App) RunOnce(ctx context.Context, top int) error {
	if err := a.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	cands, at := a.refresher.Snapshot()
	if top > 0 && len(cands) > top {
		cands = cands[:top]
	}
	printFlips(os.Stdout, cands)
	fmt.Printf("\n%d candidates, snapshot %s, tax model %s\n",
		len(cands), at.Format("15:04:05"), a.refresher.Params().TaxModel)

	a.closeCache()
	return nil
}

func printFlips(w io.Writer, cands []models.FlipCandidate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tBUY\tSELL\tTAX\tMARGIN\tQTY\tGP NEEDED\tEST PROFIT\tROI%\tETA h\tGP/H\tVOL\tSRC\tHA\tSCORE")
	for _, c := range cands {
		ha := ""
		if c.HASafe {
			ha = "safe"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%s\t%.0f\t%d\t%s\t%s\t%.1f\n",
			c.Name, c.Buy, c.Sell, c.Tax, c.ProfitUnit, c.Qty, c.GPNeeded, c.EstProfit,
			c.ROIPct, etaString(c.HoursToClear), c.ProfitPerHour, c.Volume, c.PriceSource, ha, c.Score)
	}
	_ = tw.Flush()
}

func etaString(v models.NullableFloat) string {
	if !v.IsFinite() {
		return "inf"
	}
	return fmt.Sprintf("%.1f", float64(v))
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.closeCache()

	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) closeCache() {
	if closer, ok := a.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
}
