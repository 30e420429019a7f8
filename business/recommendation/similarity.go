package recommendation

import (
	"comicSnap/pkg/logger"
	"context"
	"fmt"
	"math"
)

// computeSimilarities returns the cosine similarity between userID and every
// other user sharing at least one rated comic. Peers without overlap are
// absent from the map, and the user is never compared with itself.
func (s *Service) computeSimilarities(ctx context.Context, userID uint) (map[uint]float64, error) {
	target, err := s.store.GetRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings of user %d: %w", userID, err)
	}

	sims := make(map[uint]float64)
	if len(target) == 0 {
		return sims, nil
	}

	peers, err := s.store.GetOtherUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list peers of user %d: %w", userID, err)
	}

	for _, peer := range peers {
		if peer == userID {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context error: %w", err)
		}

		ratings, err := s.store.GetRatings(ctx, peer)
		if err != nil {
			logger.Warn("similarity_peer_skipped",
				"trace_id", TraceIDFromContext(ctx),
				"user_id", userID,
				"peer_id", peer,
				"error", err,
			)
			continue
		}

		if sim, ok := cosineSimilarity(target, ratings); ok {
			sims[peer] = sim
		}
	}

	return sims, nil
}

// cosineSimilarity is computed over the shared items only. ok is false when
// a and b share nothing; a zero denominator yields 0.
func cosineSimilarity(a, b map[string]int) (sim float64, ok bool) {
	var dot, normA, normB float64
	shared := 0

	for item, ra := range a {
		rb, found := b[item]
		if !found {
			continue
		}
		shared++
		dot += float64(ra * rb)
		normA += float64(ra * ra)
		normB += float64(rb * rb)
	}

	if shared == 0 {
		return 0, false
	}

	den := math.Sqrt(normA) * math.Sqrt(normB)
	if den == 0 {
		return 0, true
	}

	sim = dot / den
	// rounding can push identical vectors a hair above 1
	if sim > 1 {
		sim = 1
	}
	return sim, true
}
