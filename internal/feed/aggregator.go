package feed

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Aggregator merges the four activity streams into one ordered
// timeline. The time window and page size are tuning knobs, not part
// of the merge algorithm.
type Aggregator struct {
	source   Source
	window   time.Duration
	pageSize int
	now      func() time.Time
}

func NewAggregator(source Source, window time.Duration, pageSize int) *Aggregator {
	return &Aggregator{
		source:   source,
		window:   window,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// SimpleFeed builds the merged timeline for everyone followerID
// follows. Events are de-duplicated exactly and ordered by actor,
// then item type, then recency. Read-only.
func (a *Aggregator) SimpleFeed(ctx context.Context, followerID string) ([]Event, error) {
	since := a.now().Add(-a.window)

	games, err := a.source.PublishedGames(ctx, followerID, since)
	if err != nil {
		return nil, err
	}

	comments, err := a.source.Comments(ctx, followerID, since)
	if err != nil {
		return nil, err
	}

	plays, err := a.source.SessionPlays(ctx, followerID, since)
	if err != nil {
		return nil, err
	}

	favorites, err := a.source.Favorites(ctx, followerID, since)
	if err != nil {
		return nil, err
	}

	merged := make([]Event, 0, len(games)+len(comments)+len(favorites))
	merged = append(merged, games...)
	merged = append(merged, comments...)
	merged = append(merged, firstPlays(plays)...)
	merged = append(merged, favorites...)

	merged = dedupe(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].UserID != merged[j].UserID {
			return merged[i].UserID < merged[j].UserID
		}
		if merged[i].ItemType != merged[j].ItemType {
			return merged[i].ItemType < merged[j].ItemType
		}
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	if a.pageSize > 0 && len(merged) > a.pageSize {
		merged = merged[:a.pageSize]
	}

	return merged, nil
}

// firstPlays keeps, per (user, game) pair, only the earliest qualifying
// session. A min-by-timestamp reduction, not a filter.
func firstPlays(plays []SessionPlay) []Event {
	type pairKey struct {
		userID string
		gameID string
	}

	earliest := make(map[pairKey]SessionPlay)
	var order []pairKey
	for _, p := range plays {
		key := pairKey{userID: p.UserID, gameID: p.GameID}
		current, seen := earliest[key]
		if !seen {
			order = append(order, key)
			earliest[key] = p
			continue
		}
		if p.CreatedAt.Before(current.CreatedAt) {
			earliest[key] = p
		}
	}

	out := make([]Event, 0, len(order))
	for _, key := range order {
		p := earliest[key]
		out = append(out, Event{
			UserID:       p.UserID,
			Username:     p.Username,
			ProfilePhoto: p.ProfilePhoto,
			PrimaryText:  fmt.Sprintf("%s played %q for the first time", p.Username, p.GameTitle),
			ItemType:     ItemTypeSession,
			TargetID:     p.GameID,
			TargetImage:  p.GameThumbnail,
			Timestamp:    p.CreatedAt,
		})
	}
	return out
}

// dedupe drops exact repeats: same actor, item type, target and
// timestamp.
func dedupe(events []Event) []Event {
	type eventKey struct {
		userID   string
		itemType string
		targetID string
		ts       int64
	}

	seen := make(map[eventKey]struct{}, len(events))
	out := events[:0]
	for _, e := range events {
		key := eventKey{
			userID:   e.UserID,
			itemType: e.ItemType,
			targetID: e.TargetID,
			ts:       e.Timestamp.UnixNano(),
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
