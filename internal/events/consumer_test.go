package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"eco3/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	scores    map[uint]float64
	impact    int64
	published []events.Event
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{scores: map[uint]float64{}}
}

func (b *fakeBoard) AddScore(_ context.Context, userID uint, delta float64) error {
	b.scores[userID] += delta
	return nil
}

func (b *fakeBoard) Top(_ context.Context, n int64) ([]events.Entry, error) {
	out := make([]events.Entry, 0, len(b.scores))
	for id, score := range b.scores {
		out = append(out, events.Entry{UserID: id, Score: score})
	}
	return out, nil
}

func (b *fakeBoard) AddImpact(_ context.Context, delta int64) (int64, error) {
	b.impact += delta
	return b.impact, nil
}

func (b *fakeBoard) Publish(_ context.Context, ev events.Event) error {
	b.published = append(b.published, ev)
	return nil
}

type sent struct {
	userID  uint
	message string
}

type fakeNotifier struct {
	sent []sent
}

func (n *fakeNotifier) Notify(_ context.Context, userID uint, message string) error {
	n.sent = append(n.sent, sent{userID: userID, message: message})
	return nil
}

func feed(t *testing.T, handler func(context.Context, string, []byte, []byte) error, a events.Activity) {
	t.Helper()
	b, err := json.Marshal(a)
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), "eco3.activity", nil, b))
}

func TestActivityWeights(t *testing.T) {
	board := newFakeBoard()
	handler := events.NewActivityHandler(board, &fakeNotifier{})

	feed(t, handler, events.Activity{UserID: 1, Kind: events.ActivityPostCreated, At: time.Now()})
	feed(t, handler, events.Activity{UserID: 1, Kind: events.ActivityLikeCreated, At: time.Now()})
	feed(t, handler, events.Activity{UserID: 2, Kind: events.ActivityLikeCreated, At: time.Now()})

	assert.Equal(t, 6.0, board.scores[1])
	assert.Equal(t, 1.0, board.scores[2])
	assert.Equal(t, int64(7), board.impact)
}

func TestLikeNotifiesPostOwner(t *testing.T) {
	board := newFakeBoard()
	notifier := &fakeNotifier{}
	handler := events.NewActivityHandler(board, notifier)

	feed(t, handler, events.Activity{
		UserID:  2,
		Kind:    events.ActivityLikeCreated,
		PostID:  10,
		OwnerID: 1,
		At:      time.Now(),
	})

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, uint(1), notifier.sent[0].userID)
	assert.NotEmpty(t, notifier.sent[0].message)
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	board := newFakeBoard()
	notifier := &fakeNotifier{}
	handler := events.NewActivityHandler(board, notifier)

	feed(t, handler, events.Activity{
		UserID:  1,
		Kind:    events.ActivityLikeCreated,
		PostID:  10,
		OwnerID: 1,
		At:      time.Now(),
	})
	feed(t, handler, events.Activity{
		UserID:  1,
		Kind:    events.ActivityPostCreated,
		PostID:  11,
		OwnerID: 1,
		At:      time.Now(),
	})

	assert.Empty(t, notifier.sent)
	// the fold itself still ran
	assert.Equal(t, 6.0, board.scores[1])
}

func TestEventsPublishedPerActivity(t *testing.T) {
	board := newFakeBoard()
	handler := events.NewActivityHandler(board, &fakeNotifier{})

	feed(t, handler, events.Activity{UserID: 3, Kind: events.ActivityPostCreated, At: time.Now()})

	require.Len(t, board.published, 2)
	assert.Equal(t, events.EventLeaderboardUpdated, board.published[0].Kind)
	require.Len(t, board.published[0].Leaderboard, 1)
	assert.Equal(t, uint(3), board.published[0].Leaderboard[0].UserID)

	assert.Equal(t, events.EventImpactUpdated, board.published[1].Kind)
	assert.Equal(t, int64(5), board.published[1].ImpactTotal)
}

func TestMalformedRecordSkipped(t *testing.T) {
	board := newFakeBoard()
	handler := events.NewActivityHandler(board, &fakeNotifier{})

	// must commit (return nil) without touching the board
	require.NoError(t, handler(context.Background(), "eco3.activity", nil, []byte("{not json")))
	assert.Empty(t, board.scores)
	assert.Empty(t, board.published)
}

func TestUnknownKindIgnored(t *testing.T) {
	board := newFakeBoard()
	handler := events.NewActivityHandler(board, &fakeNotifier{})

	feed(t, handler, events.Activity{UserID: 1, Kind: "profile_updated", At: time.Now()})
	assert.Empty(t, board.scores)
	assert.Zero(t, board.impact)
}
