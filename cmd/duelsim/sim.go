package main

import (
	"context"
	"log/slog"

	"github.com/milk9111/duel/match"
	"github.com/milk9111/duel/session"
)

type tally struct {
	Rounds   int
	Wins     [match.Slots]int
	Draws    int
	Timeouts int
}

// simulate plays rounds on s, restarting between them. A round that runs
// past maxTime seconds of match time is a timeout.
func simulate(ctx context.Context, s *session.Session, rounds int, maxTime float64) (tally, error) {
	var out tally
	dt := s.Config().TickSeconds()
	for round := 1; round <= rounds; round++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		elapsed := 0.0
		for !s.Match().Outcome().Over && elapsed < maxTime {
			s.Step(ctx)
			elapsed += dt
		}

		out.Rounds++
		outcome := s.Match().Outcome()
		switch {
		case !outcome.Over:
			out.Timeouts++
			slog.Info("round timed out", "round", round, "elapsed", elapsed)
		case outcome.Winner == 0:
			out.Draws++
			slog.Info("round drawn", "round", round, "elapsed", elapsed)
		default:
			out.Wins[outcome.Winner-1]++
			slog.Info("round won", "round", round, "winner", outcome.Winner, "elapsed", elapsed)
		}
		s.Restart()
	}
	return out, nil
}
