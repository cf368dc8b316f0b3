package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_MergesSpeakerRowsByURL(t *testing.T) {
	csv := `event_name,description,event_date,location,url,host_name,speaker_name,speaker_title
AI Summit,Annual gathering,June 15 2025,San Francisco,https://lu.ma/ai-summit,TechCorp,Jane Doe,CTO
AI Summit,Annual gathering,June 15 2025,San Francisco,https://lu.ma/ai-summit,TechCorp,John Roe,VP Sales
Sales Mixer,Evening mixer,July 1 2025,Oakland,https://lu.ma/sales-mixer,GrowthCo,,
`

	events, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 2)

	summit := events[0]
	assert.Equal(t, "AI Summit", summit.Title)
	assert.Equal(t, "https://lu.ma/ai-summit", summit.URL)
	require.Len(t, summit.Speakers, 2)
	assert.Equal(t, "Jane Doe", summit.Speakers[0].Name)
	assert.Equal(t, "John Roe", summit.Speakers[1].Name)

	mixer := events[1]
	assert.Equal(t, "Sales Mixer", mixer.Title)
	assert.Empty(t, mixer.Speakers)
}

func TestRead_DeduplicatesSpeakers(t *testing.T) {
	csv := `event_name,url,speaker_name
Demo Night,https://lu.ma/demo,Alice
Demo Night,https://lu.ma/demo,Alice
`

	events, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Speakers, 1)
}

func TestRead_ColumnAliases(t *testing.T) {
	csv := `event_title,event_summary,host_company,url,speaker_details,speaker_name
Pitch Night,Founders pitch,SeedFund,https://lu.ma/pitch,Angel investor,Sam Lee
`

	events, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "Pitch Night", event.Title)
	assert.Equal(t, "Founders pitch", event.Description)
	assert.Equal(t, "SeedFund", event.Host)
	require.Len(t, event.Speakers, 1)
	assert.Equal(t, "Angel investor", event.Speakers[0].Detail)
}

func TestRead_SkipsRowsWithoutURLOrTitle(t *testing.T) {
	csv := `event_name,url
,
Good Event,https://lu.ma/good
`

	events, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Good Event", events[0].Title)
}

func TestRead_PlaceholderValuesBecomeEmpty(t *testing.T) {
	csv := `event_name,location,url,speaker_name
Mixer,Not specified,https://lu.ma/mixer,Not specified
`

	events, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Location)
	assert.Empty(t, events[0].Speakers)
}

func TestRead_EmptyInput(t *testing.T) {
	events, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.csv")
	assert.Error(t, err)
}
