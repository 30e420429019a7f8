package recommendation

import (
	"comicSnap/domain"
	"math"
	"sort"
	"strings"
)

const (
	rejectConsumed  = "consumed"
	rejectNoTitle   = "missing_title"
	rejectNoID      = "missing_id"
	rejectDuplicate = "duplicate"
)

// scoreCandidates filters, scores and ranks catalog candidates.
//
//	score = publisher mean (first matching top publisher)
//	      + collaborative score
//	score *= 1 + weight   when the comic has an explicit preference and score != 0
//
// Ties keep catalog order. The result has at most limit entries.
func scoreCandidates(
	profile domain.UserProfile,
	collab map[string]float64,
	candidates []domain.CandidateItem,
	limit int,
) []domain.RecommendationEntry {
	entries := make([]domain.RecommendationEntry, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if reason, ok := rejectCandidate(c, profile.ConsumedItems, seen); !ok {
			RecommendationCandidatesRejectedTotal.WithLabelValues(reason).Inc()
			continue
		}
		seen[c.ID] = struct{}{}

		score := 0.0
		if mean, ok := publisherMean(c.Publisher, profile.TopPublishers); ok {
			score += mean
		}
		score += collab[c.ID]

		if w, ok := profile.ExplicitPreferences[c.ID]; ok && score != 0 {
			if w < 0 {
				w = 0
			}
			score *= 1 + w
		}

		entries = append(entries, domain.RecommendationEntry{
			ID:        c.ID,
			Title:     c.Title,
			Cover:     orDefault(c.CoverURL, domain.DefaultCoverURL),
			Publisher: orDefault(c.Publisher, domain.UnknownPublisher),
			Year:      orDefault(c.Year, domain.UnknownYear),
			Score:     roundScore(score),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func rejectCandidate(c domain.CandidateItem, consumed, seen map[string]struct{}) (string, bool) {
	if strings.TrimSpace(c.ID) == "" {
		return rejectNoID, false
	}
	if !domain.UsableTitle(c.Title) {
		return rejectNoTitle, false
	}
	if _, ok := consumed[c.ID]; ok {
		return rejectConsumed, false
	}
	if _, ok := seen[c.ID]; ok {
		return rejectDuplicate, false
	}
	return "", true
}

func publisherMean(publisher string, top []domain.PublisherAffinity) (float64, bool) {
	if publisher == "" {
		return 0, false
	}
	for _, p := range top {
		if p.Publisher == publisher {
			return p.MeanRating, true
		}
	}
	return 0, false
}

func roundScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	// half to even, like Python's round(v, 2)
	return math.RoundToEven(v*100) / 100
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
