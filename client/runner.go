package main

import (
	"context"
	"fmt"
	"math"
	"net"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg"
	"github.com/rallen090/BattleShip/pkg/commander"
	"github.com/rallen090/BattleShip/pkg/session"
	"github.com/rallen090/BattleShip/pkg/transport"
)

// Runner plays independent games. Every game gets its own channel and
// commander.
type Runner struct {
	newChannel   func() transport.Channel
	newCommander func() commander.Commander
	logger       *log.Logger
}

func NewRunner(newChannel func() transport.Channel, newCommander func() commander.Commander, logger *log.Logger) *Runner {
	return &Runner{
		newChannel:   newChannel,
		newCommander: newCommander,
		logger:       logger,
	}
}

// Run plays trials games, at most parallel at a time, and returns their
// results in start order.
func (r *Runner) Run(ctx context.Context, trials, parallel int) []session.Result {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]session.Result, trials)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < parallel; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.play(ctx, i)
			}
		}()
	}

	for i := 0; i < trials; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (r *Runner) play(ctx context.Context, trial int) session.Result {
	sess := session.New(r.newChannel(), r.newCommander(), r.logger.With("trial", trial))
	result, err := sess.Play(ctx)
	if err != nil {
		r.logger.Warn("game failed", "trial", trial, "session", result.SessionID, "err", err)
	}
	return result
}

type Stats struct {
	Avg      float64
	Min, Max int
}

func (s Stats) String() string {
	return fmt.Sprintf("Avg: %05.2f | Min: %02d | Max: %02d", s.Avg, s.Min, s.Max)
}

type Summary struct {
	Games     int
	Victories int
	Defeats   int
	// Failures counts games that ended without a winner.
	Failures int

	Shots, Hits, Misses Stats
}

// Summarize aggregates the results of finished games. Failed games only count
// towards Games and Failures.
func Summarize(results []session.Result) Summary {
	summary := Summary{Games: len(results)}
	var shots, hits, misses []int
	for _, result := range results {
		switch result.State {
		case session.Won:
			summary.Victories++
		case session.Lost:
			summary.Defeats++
		default:
			summary.Failures++
			continue
		}
		shots = append(shots, result.Shots)
		hits = append(hits, result.Hits)
		misses = append(misses, result.Misses)
	}

	summary.Shots = stats(shots)
	summary.Hits = stats(hits)
	summary.Misses = stats(misses)
	return summary
}

func stats(values []int) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Min: math.MaxInt, Max: math.MinInt}
	total := 0
	for _, v := range values {
		total += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Avg = float64(total) / float64(len(values))
	return s
}

func logSummary(logger *log.Logger, summary Summary) {
	logger.Info(fmt.Sprintf("%d games complete!", summary.Games),
		"victories", summary.Victories,
		"defeats", summary.Defeats,
		"failures", summary.Failures)
	logger.Info("Shots  - " + summary.Shots.String())
	logger.Info("Hits   - " + summary.Hits.String())
	logger.Info("Misses - " + summary.Misses.String())
}

// channelFactory returns a constructor for channels of the named transport.
func channelFactory(name, ip string, port int) (func() transport.Channel, error) {
	addr := net.JoinHostPort(ip, strconv.Itoa(port))
	switch name {
	case "tcp":
		return func() transport.Channel { return transport.NewTCPChannel(addr) }, nil
	case "ws":
		url := "ws://" + addr + pkg.WebsocketPath
		return func() transport.Channel { return transport.NewWebsocketChannel(url) }, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}
