package rng

import (
	"time"

	"github.com/safing/drng/mgr"
)

func getFullFeedDuration() time.Duration {
	// full feed every 5x time of reseedAfterSeconds
	secsUntilFullFeed := reseedAfterSeconds * 5

	// full feed at most once every ten minutes
	if secsUntilFullFeed < 600 {
		secsUntilFullFeed = 600
	}

	return time.Duration(secsUntilFullFeed) * time.Second
}

// fullFeeder periodically drains all gathered entropy into the
// generator, even if no bytes were read in the meantime.
func (s *Service) fullFeeder(ctx *mgr.WorkerCtx) error {
	fullFeedDuration := getFullFeedDuration()

	for {
		select {
		case <-time.After(fullFeedDuration):

			s.lock.Lock()
		feedAll:
			for {
				select {
				case data := <-s.feed:
					s.gen.Reseed(data)
					s.lastFeed = time.Now()
				default:
					break feedAll
				}
			}
			s.lock.Unlock()

		case <-ctx.Done():
			return nil
		}
	}
}
