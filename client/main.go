package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg"
	"github.com/rallen090/BattleShip/pkg/commander"
)

func main() {
	ip := flag.String("ip", "127.0.0.1", "server ip address")
	port := flag.Int("port", pkg.DefaultPort, "server port")
	transportName := flag.String("transport", "tcp", "tcp or ws")
	commanderFlag := flag.Int("commander", int(commander.Probability), "1 random, 2 probability")
	trials := flag.Int("n", 1, "number of games")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	debug := flag.Bool("debug", false, "log every message and the probability grid")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "client",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	commanderType, err := commander.ParseType(*commanderFlag)
	if err != nil {
		logger.Fatal("commander", "err", err)
	}
	newCommander, err := commander.NewFactory(commanderType, commander.WithLogger(logger))
	if err != nil {
		logger.Fatal("commander", "err", err)
	}
	newChannel, err := channelFactory(*transportName, *ip, *port)
	if err != nil {
		logger.Fatal("transport", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting", "server", *ip, "port", *port, "transport", *transportName,
		"commander", commanderType, "n", *trials, "parallel", *parallel)
	start := time.Now()

	results := NewRunner(newChannel, newCommander, logger).Run(ctx, *trials, *parallel)
	logSummary(logger, Summarize(results))
	logger.Info("done", "duration", time.Since(start))
}
