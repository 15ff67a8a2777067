// Package export writes finished reports to spreadsheet form for
// offline review.
package export

import (
	"fmt"
	"sort"

	"github.com/tealeg/xlsx"

	"meetscribe/internal/app/model"
)

// ToExcel writes the report's transcript and speaker analytics to an
// xlsx workbook at outputFilePath.
func ToExcel(report *model.Report, outputFilePath string) error {
	file := xlsx.NewFile()

	transcript, err := file.AddSheet("Transcript")
	if err != nil {
		return err
	}
	for _, line := range report.Transcriptions {
		transcript.AddRow().AddCell().Value = line
	}

	speakers, err := file.AddSheet("Speakers")
	if err != nil {
		return err
	}

	headerRow := speakers.AddRow()
	headerRow.AddCell().Value = "Speaker"
	headerRow.AddCell().Value = "Identified Name"
	headerRow.AddCell().Value = "Confidence"
	headerRow.AddCell().Value = "Talk Time (s)"
	headerRow.AddCell().Value = "Words"
	headerRow.AddCell().Value = "Percentage"
	headerRow.AddCell().Value = "Words/Minute"

	for _, stats := range sortedStats(report) {
		row := speakers.AddRow()
		row.AddCell().Value = fmt.Sprintf("Speaker-%d", stats.SpeakerID)
		if stats.IdentifiedName != nil {
			row.AddCell().Value = *stats.IdentifiedName
		} else {
			row.AddCell().Value = ""
		}
		if stats.Confidence != nil {
			row.AddCell().Value = fmt.Sprintf("%.2f", *stats.Confidence)
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = fmt.Sprintf("%.2f", stats.TotalDuration)
		row.AddCell().Value = fmt.Sprint(stats.TotalWords)
		row.AddCell().Value = fmt.Sprintf("%.1f%%", stats.Percentage)
		row.AddCell().Value = fmt.Sprintf("%.1f", stats.WordsPerMinute)
	}

	if report.Summary != "" {
		summarySheet, err := file.AddSheet("Summary")
		if err != nil {
			return err
		}
		summarySheet.AddRow().AddCell().Value = report.Summary
	}

	return file.Save(outputFilePath)
}

func sortedStats(report *model.Report) []*model.SpeakerStats {
	ids := make([]int, 0, len(report.SpeakerStats))
	for id := range report.SpeakerStats {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*model.SpeakerStats, 0, len(ids))
	for _, id := range ids {
		out = append(out, report.SpeakerStats[id])
	}
	return out
}
