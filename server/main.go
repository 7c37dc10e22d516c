package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg"
)

func main() {
	addr := flag.String("addr", fmt.Sprintf(":%d", pkg.DefaultPort), "tcp service address")
	wsAddr := flag.String("ws", ":8080", "http service address for websocket players, empty to disable")
	gridSize := flag.Int("grid", pkg.DefaultGridSize, "grid size")
	seed := flag.Int64("seed", 0, "fleet placement seed, 0 for a random one")
	debug := flag.Bool("debug", false, "log every message")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "server",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server := NewServer(Config{GridSize: *gridSize, Seed: *seed}, NewSender(logger), logger)
	go server.Run(ctx)

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", "addr", *addr, "err", err)
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc(pkg.WebsocketPath, func(w http.ResponseWriter, r *http.Request) {
			ServeWs(server, w, r)
		})
		httpServer := &http.Server{Addr: *wsAddr, Handler: mux}
		go func() {
			<-ctx.Done()
			_ = httpServer.Close()
		}()
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("ListenAndServe", "err", err)
			}
		}()
		logger.Info("listening", "transport", "ws", "addr", *wsAddr+pkg.WebsocketPath)
	}

	logger.Info("listening", "transport", "tcp", "addr", ln.Addr().String(), "grid", *gridSize)
	if err := server.ServeTCP(ln); err != nil {
		logger.Fatal("accept", "err", err)
	}
}
