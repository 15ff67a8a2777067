package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"meetscribe/internal/app/model"
)

func TestToExcel(t *testing.T) {
	name := "Alice Wong"
	confidence := 0.91
	report := &model.Report{
		SourceURL:      "https://recordings.example.com/meeting.wav",
		TotalDuration:  100,
		Transcriptions: []string{"Speaker-0 (00:00:00 - 00:01:00): hello there"},
		SpeakerStats: map[int]*model.SpeakerStats{
			1: {SpeakerID: 1, TotalDuration: 40, TotalWords: 80, Percentage: 40, WordsPerMinute: 120},
			0: {
				SpeakerID:      0,
				TotalDuration:  60,
				TotalWords:     150,
				Percentage:     60,
				WordsPerMinute: 150,
				IdentifiedName: &name,
				Confidence:     &confidence,
			},
		},
		Summary: "short recap",
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ToExcel(report, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 3)

	transcript := file.Sheets[0]
	assert.Equal(t, "Transcript", transcript.Name)
	assert.Equal(t, "Speaker-0 (00:00:00 - 00:01:00): hello there", transcript.Rows[0].Cells[0].Value)

	speakers := file.Sheets[1]
	require.True(t, len(speakers.Rows) >= 3)
	assert.Equal(t, "Speaker", speakers.Rows[0].Cells[0].Value)
	assert.Equal(t, "Speaker-0", speakers.Rows[1].Cells[0].Value)
	assert.Equal(t, "Alice Wong", speakers.Rows[1].Cells[1].Value)
	assert.Equal(t, "0.91", speakers.Rows[1].Cells[2].Value)
	assert.Equal(t, "Speaker-1", speakers.Rows[2].Cells[0].Value)
	assert.Equal(t, "", speakers.Rows[2].Cells[1].Value)

	assert.Equal(t, "Summary", file.Sheets[2].Name)
	assert.Equal(t, "short recap", file.Sheets[2].Rows[0].Cells[0].Value)
}
