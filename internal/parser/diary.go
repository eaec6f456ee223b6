package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

// Occasion is one named meal or drink grouping on a diary day with its
// subtotal kcal text as it appears on the page.
type Occasion struct {
	Name     string
	KcalText string
}

// DiaryDay is the raw extraction of one "printDiary" block. DateText is the
// full human-readable heading (e.g. "Monday 03 March 2025"); ExerciseText is
// empty when the day had no exercise section.
type DiaryDay struct {
	DateText     string
	Occasions    []Occasion
	ExerciseText string
}

// ParseDiary extracts one DiaryDay per printDiary block from the diary
// report page. Occasion sub-blocks missing a name or subtotal cell are
// skipped; a day block without a date heading is skipped entirely.
func ParseDiary(html string, logger arbor.ILogger) ([]DiaryDay, error) {
	doc, err := createDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diary HTML: %w", err)
	}

	var days []DiaryDay
	doc.Find("div.printDiary").Each(func(i int, entry *goquery.Selection) {
		dateText := strings.TrimSpace(entry.Find("h1").First().Text())
		if dateText == "" {
			logger.Debug().Int("block", i).Msg("Diary block has no date heading, skipping")
			return
		}

		day := DiaryDay{DateText: dateText}

		entry.Find("div.occasionTags").Each(func(_ int, occasion *goquery.Selection) {
			name, ok := occasion.Attr("data-occasioname")
			if !ok || name == "" {
				logger.Debug().Str("date", dateText).Msg("Occasion block missing name attribute, skipping")
				return
			}
			subtotal := strings.TrimSpace(occasion.Find("th.colNutri.subtot").First().Text())
			if subtotal == "" {
				logger.Debug().Str("date", dateText).Str("occasion", name).Msg("Occasion block missing subtotal, skipping")
				return
			}
			day.Occasions = append(day.Occasions, Occasion{Name: name, KcalText: subtotal})
		})

		if exercise := entry.Find("div.occasionExercise").First(); exercise.Length() > 0 {
			day.ExerciseText = strings.TrimSpace(exercise.Find("th.colNutri.subtot").First().Text())
		}

		days = append(days, day)
	})

	return days, nil
}
