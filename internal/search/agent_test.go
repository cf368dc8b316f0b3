package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkai/event-scout/internal/scoring"
	"github.com/networkai/event-scout/internal/types"
)

// stubScorer assigns scores by event title.
type stubScorer struct {
	scores map[string]float64
}

func (s *stubScorer) Score(_ context.Context, event *types.Event, _ []string, _ string) scoring.Result {
	return scoring.Result{Score: s.scores[event.Title], Highlight: "stub"}
}

func writeCorpus(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "event_name,description,event_date,location,url\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixedNow() time.Time {
	return time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)
}

func TestFindTopEvents_RanksByCombinedScore(t *testing.T) {
	path := writeCorpus(t,
		`Low,desc,2025-05-01,SF,https://lu.ma/low`,
		`High,desc,2025-05-01,SF,https://lu.ma/high`,
		`Mid,desc,2025-05-01,SF,https://lu.ma/mid`,
	)

	agent := NewAgent(&stubScorer{scores: map[string]float64{
		"Low": 0.1, "High": 0.9, "Mid": 0.5,
	}}, nil, Options{CorpusPath: path, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), []string{"B2B"}, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "High", events[0].Title)
	assert.Equal(t, "Mid", events[1].Title)
	assert.Equal(t, "Low", events[2].Title)
}

func TestFindTopEvents_DropsPastEvents(t *testing.T) {
	path := writeCorpus(t,
		`Past,desc,2025-03-01,SF,https://lu.ma/past`,
		`Future,desc,2025-05-01,SF,https://lu.ma/future`,
	)

	agent := NewAgent(&stubScorer{scores: map[string]float64{"Past": 1, "Future": 0.5}},
		nil, Options{CorpusPath: path, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Future", events[0].Title)
}

func TestFindTopEvents_DropsPastEventsWithTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	csv := "event_name,description,event_date,event_time,location,url\n" +
		"Past,desc,2025-04-10,6:00 PM,SF,https://lu.ma/past\n" +
		"Future,desc,2025-05-01,7:00 PM,SF,https://lu.ma/future\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	agent := NewAgent(&stubScorer{scores: map[string]float64{"Past": 1, "Future": 0.5}},
		nil, Options{CorpusPath: path, Now: fixedNow})

	// The time suffix must not defeat date parsing and smuggle the past
	// event through the unparseable-date policy.
	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Future", events[0].Title)
}

func TestFindTopEvents_KeepsUnparseableDates(t *testing.T) {
	path := writeCorpus(t,
		`Mystery,desc,TBD,SF,https://lu.ma/mystery`,
	)

	agent := NewAgent(&stubScorer{scores: map[string]float64{"Mystery": 0.4}},
		nil, Options{CorpusPath: path, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)

	// No parsed date: the relevance score passes through unchanged.
	assert.Equal(t, 0.4, events[0].CombinedScore)
	assert.Equal(t, "TBD", events[0].FormattedDate)
}

func TestFindTopEvents_TruncatesToMaxResults(t *testing.T) {
	rows := make([]string, 15)
	scores := make(map[string]float64)
	for i := range rows {
		title := string(rune('A' + i))
		rows[i] = title + `,desc,2025-05-01,SF,https://lu.ma/` + title
		scores[title] = 0.5
	}
	path := writeCorpus(t, rows...)

	agent := NewAgent(&stubScorer{scores: scores}, nil,
		Options{CorpusPath: path, MaxResults: 10, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

func TestFindTopEvents_SameDayEventKept(t *testing.T) {
	path := writeCorpus(t,
		`Today,desc,2025-04-20,SF,https://lu.ma/today`,
	)

	agent := NewAgent(&stubScorer{scores: map[string]float64{"Today": 0.5}},
		nil, Options{CorpusPath: path, RecencyWeight: 0.2, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)

	// Same-day recency is exactly 1.0.
	assert.Equal(t, 1.0, events[0].RecencyScore)
	assert.InDelta(t, 0.8*0.5+0.2, events[0].CombinedScore, 1e-9)
}

func TestFindTopEvents_MissingCorpus(t *testing.T) {
	agent := NewAgent(&stubScorer{}, nil,
		Options{CorpusPath: filepath.Join(t.TempDir(), "missing.csv"), Now: fixedNow})

	_, err := agent.FindTopEvents(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestFindTopEvents_EmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("event_name,url\n"), 0o644))

	agent := NewAgent(&stubScorer{}, nil, Options{CorpusPath: path, Now: fixedNow})

	events, err := agent.FindTopEvents(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, events)
}
