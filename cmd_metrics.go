package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"synth911/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// startMetricsServer exposes the metrics registry on addr when addr is set.
func startMetricsServer(addr string) {
	if addr == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		logger.Info("metrics server listening", zap.String("addr", addr+"/metrics"))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()
}

// finishMetrics pushes metrics to the Pushgateway and, with --wait, keeps
// the process alive until ctx is cancelled so the last values can be scraped.
func finishMetrics(ctx context.Context, out io.Writer, job string) {
	if settings.PushURL != "" {
		if err := push.New(settings.PushURL, job).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error("error pushing to Pushgateway", zap.String("url", settings.PushURL), zap.Error(err))
		} else {
			fmt.Fprintln(out, "\nMetrics successfully pushed to Pushgateway")
		}
	}

	if waitForScrape && settings.MetricsAddr != "" {
		fmt.Fprintln(out, "\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		<-ctx.Done()
		fmt.Fprintln(out, "\nExiting...")
	} else if settings.MetricsAddr != "" && settings.PushURL == "" {
		// Small delay to allow a final scrape
		time.Sleep(100 * time.Millisecond)
	}
}
