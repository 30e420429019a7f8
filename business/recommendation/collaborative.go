package recommendation

import (
	"comicSnap/pkg/logger"
	"context"
	"sort"
)

// collaborativeScores sums sim(peer) * rating over every comic a similar peer
// rated at or above the endorsement threshold. Scores are not normalized.
func (s *Service) collaborativeScores(ctx context.Context, sims map[uint]float64) map[string]float64 {
	scores := make(map[string]float64)
	threshold := s.cfg.StrongEndorsementThreshold

	// fixed visiting order keeps float sums identical across runs
	peers := make([]uint, 0, len(sims))
	for peer := range sims {
		peers = append(peers, peer)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })

	for _, peer := range peers {
		items, err := s.store.GetHighRatings(ctx, peer, threshold)
		if err != nil {
			logger.Warn("collaborative_peer_skipped",
				"trace_id", TraceIDFromContext(ctx),
				"peer_id", peer,
				"error", err,
			)
			continue
		}

		sim := sims[peer]
		for _, it := range items {
			if it.Rating < threshold {
				continue
			}
			scores[it.ComicID] += sim * float64(it.Rating)
		}
	}

	return scores
}
