package rng

import (
	"fmt"

	"github.com/safing/drng/entropy"
	"github.com/safing/drng/mgr"
)

// osFeeder supplies the feed with entropy from the platform sources.
func (s *Service) osFeeder(ctx *mgr.WorkerCtx) error {
	entropyBytes := minFeedEntropy / 8
	feeder := s.NewFeeder()
	defer feeder.CloseFeeder()

	for {
		// gather
		seed, err := entropy.Seed(entropyBytes)
		if err != nil {
			return fmt.Errorf("could not acquire os entropy: %w", err)
		}

		// feed
		select {
		case feeder.input <- &entropyData{
			data:    seed,
			entropy: entropyBytes * 8,
		}:
		case <-ctx.Done():
			return nil
		}
	}
}
