// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/driplabs/drip/log"
)

func initLogger(verbosity int) {
	var level slog.Level
	switch {
	case verbosity <= 0:
		level = slog.LevelError
	case verbosity == 1:
		level = slog.LevelWarn
	case verbosity <= 3:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	w := os.Stderr
	log.Init(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	}))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drip")
}

func startAPIServer(handler http.Handler, addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.WithMessagef(err, "listen API addr [%v]", addr)
	}

	srv := &http.Server{Handler: handler}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		srv.Serve(listener)
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		wg.Wait()
	}, nil
}

// handleExitSignal process termination signals, returning a channel closed on
// the first one.
func handleExitSignal() <-chan struct{} {
	exitSignal := make(chan struct{})
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		close(exitSignal)
	}()
	return exitSignal
}
