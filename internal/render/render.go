// Package render prints match results for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// DefaultTop is how many parties a ranking shows unless told otherwise.
const DefaultTop = 10

const (
	StrongValue   = "Sterk"
	GoodValue     = "Goed"
	PartialValue  = "Deels"
	DistantValue  = "Ver weg"
	percentFormat = "%d%%"
)

var (
	StrongColor  = color.New(color.FgGreen, color.Bold)
	GoodColor    = color.New(color.FgGreen)
	PartialColor = color.New(color.FgYellow)
	DistantColor = color.New(color.FgRed)
)

// Options controls what Result prints.
type Options struct {
	Format Format
	// Top limits the ranking. Zero or less prints every party.
	Top int
	// Source is printed under the ranking when set.
	Source string
}

// PlainLabel names how close a match percentage is.
func PlainLabel(percentage int) string {
	switch {
	case percentage >= 75:
		return StrongValue
	case percentage >= 60:
		return GoodValue
	case percentage >= 40:
		return PartialValue
	default:
		return DistantValue
	}
}

// ColorLabel is PlainLabel colored for the terminal.
func ColorLabel(percentage int) string {
	text := PlainLabel(percentage)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case PartialValue:
		return PartialColor.Sprint(text)
	default:
		return DistantColor.Sprint(text)
	}
}

// Result writes the ranking and the category breakdown.
func Result(w io.Writer, result sw.ScoreResult, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sw.ScoreResult{
			PartyScores:       result.Top(opts.Top),
			CategoryBreakdown: result.CategoryBreakdown,
		})
	}

	if err := Ranking(w, result, opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return Breakdown(w, result)
}

// Ranking prints the best matching parties.
func Ranking(w io.Writer, result sw.ScoreResult, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Party", "Match", "Label"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	scores := result.Top(opts.Top)
	data := make([][]string, 0, len(scores))
	for i, p := range scores {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			p.PartyName,
			fmt.Sprintf(percentFormat, p.MatchPercentage),
			ColorLabel(p.MatchPercentage),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Showing top %d of %d parties", len(scores), len(result.PartyScores))
	if opts.Source != "" {
		fmt.Fprintf(w, " (calculated %s)", opts.Source)
	}
	fmt.Fprintln(w)
	return nil
}

// Breakdown prints per-category engagement plus how well the best party
// matches inside each category.
func Breakdown(w io.Writer, result sw.ScoreResult) error {
	var best *sw.PartyScore
	if len(result.PartyScores) > 0 {
		best = &result.PartyScores[0]
	}

	headers := []string{"Category", "Questions", "Answered", "Important"}
	if best != nil {
		headers = append(headers, best.PartyName)
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range sw.Categories {
		stats := result.CategoryBreakdown[c]
		row := []string{
			string(c),
			strconv.Itoa(stats.QuestionsCount),
			strconv.Itoa(stats.AnsweredCount),
			strconv.Itoa(stats.ImportantCount),
		}
		if best != nil {
			row = append(row, categoryMatch(best.CategoryMatches[c]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func categoryMatch(m sw.CategoryMatch) string {
	if m.Count == 0 {
		return "-"
	}
	return fmt.Sprintf(percentFormat, int(math.Round(m.Percentage())))
}
