// package formatter renders track listings for the terminal and exports them as CSV or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/tunelyf/internal/models"
	"github.com/desertthunder/tunelyf/internal/shared"
)

const maxCellWidth = 40

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders a heading.
func Title(s string) string { return styles.title.Render(s) }

// Success renders a confirmation line.
func Success(s string) string { return styles.ok.Render(s) }

// Warning renders a non-fatal notice.
func Warning(s string) string { return styles.warn.Render(s) }

// Failure renders an error line.
func Failure(s string) string { return styles.err.Render(s) }

// Help renders hint text.
func Help(s string) string { return styles.help.Render(s) }

// RenderTable draws tracks as a bordered table numbered from start+1.
func RenderTable(tracks []models.Track, start int) string {
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", start+i+1),
			Truncate(track.Title, maxCellWidth),
			Truncate(track.Uploader, maxCellWidth/2),
			Truncate(track.Genre, maxCellWidth/2),
			shared.FormatDuration(track.Duration),
			track.ID,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.help).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.title.MarginBottom(0).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "TITLE", "ARTIST", "GENRE", "LENGTH", "ID").
		Rows(rows...)

	return t.String()
}

// ExportToCSV converts tracks to CSV format with columns: ID, Title, Artist, Genre, Duration, Tags
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Genre", "Duration", "Tags"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		duration := ""
		if track.Duration != nil {
			duration = fmt.Sprintf("%d", *track.Duration)
		}
		record := []string{
			track.ID,
			track.Title,
			track.Uploader,
			track.Genre,
			duration,
			track.Tags.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText converts tracks to a numbered plain text list
func ExportToText(tracks []models.Track, start int) ([]byte, error) {
	var buf bytes.Buffer

	for i, track := range tracks {
		artist := track.Uploader
		if artist == "" {
			artist = "Unknown"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s] (%s)\n", start+i+1, artist, track.Title, shared.FormatDuration(track.Duration), track.ID))
	}

	return buf.Bytes(), nil
}

// Truncate shortens s to at most width runes, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
