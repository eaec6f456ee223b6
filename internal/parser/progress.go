package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

// MeasurementRow is one raw progress-table row: the date cell text and the
// measurement cell text including its unit suffix.
type MeasurementRow struct {
	DateText  string
	ValueText string
}

// ParseMassTable extracts rows from the weight progress table
// (table.dataTableContent, td.colDate + td.colWeight). Rows missing either
// cell are skipped; the waist table shares the dataTableContent class but
// its rows have no weight cell, so they fall through the same skip.
func ParseMassTable(html string, logger arbor.ILogger) ([]MeasurementRow, error) {
	return parseProgressTable(html, "table.dataTableContent", "td.colWeight.colorPrimary", logger)
}

// ParseWaistTable extracts rows from the waist progress table
// (table.dataTableContent.dataTableOther, td.colDate + td.colMeasureType).
func ParseWaistTable(html string, logger arbor.ILogger) ([]MeasurementRow, error) {
	return parseProgressTable(html, "table.dataTableContent.dataTableOther", "td.colMeasureType", logger)
}

func parseProgressTable(html, tableSelector, valueSelector string, logger arbor.ILogger) ([]MeasurementRow, error) {
	doc, err := createDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse progress HTML: %w", err)
	}

	var rows []MeasurementRow
	doc.Find(tableSelector).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			dateCell := row.Find("td.colDate").First()
			valueCell := row.Find(valueSelector).First()

			if dateCell.Length() == 0 || valueCell.Length() == 0 {
				// Header rows and rows for other measure kinds land here.
				logger.Debug().Str("table", tableSelector).Int("row", i).Msg("Progress row missing required cell, skipping")
				return
			}

			rows = append(rows, MeasurementRow{
				DateText:  strings.TrimSpace(dateCell.Text()),
				ValueText: strings.TrimSpace(valueCell.Text()),
			})
		})
	})

	return rows, nil
}
