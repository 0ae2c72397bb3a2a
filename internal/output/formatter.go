// internal/output/formatter.go
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/table"

	"github.com/DM20911/Shodan-AI/internal/core"
	"github.com/DM20911/Shodan-AI/internal/core/logger"
	"github.com/DM20911/Shodan-AI/internal/shodan"
	"github.com/DM20911/Shodan-AI/internal/translate"
)

// FormatResults formats a search response into the specified format.
// limit caps how many matches are rendered (<=0 means all).
func FormatResults(question string, tr translate.Translation, result *shodan.SearchResult, outputFormat string, limit int) (string, error) {
	log := logger.GetLogger()
	matches := result.Matches
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	switch outputFormat {
	case "json":
		data := map[string]interface{}{
			"question": question,
			"query":    tr.Query,
			"source":   tr.Source,
			"total":    result.Total,
			"matches":  matches,
		}
		jsonData, err := json.MarshalIndent(data, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonData), nil
	case "csv":
		var b strings.Builder
		writer := csv.NewWriter(&b)
		if err := writer.Write([]string{"ip", "port", "org", "product", "country", "city", "hostnames"}); err != nil {
			return "", fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, m := range matches {
			row := []string{
				m.IPStr,
				strconv.Itoa(m.Port),
				m.Org,
				m.Product,
				m.Location.CountryName,
				m.Location.City,
				strings.Join(m.Hostnames, " "),
			}
			if err := writer.Write(row); err != nil {
				return "", fmt.Errorf("failed to write match to CSV: %w", err)
			}
		}
		writer.Flush()
		return b.String(), nil
	case "txt":
		lines := make([]string, 0, len(matches))
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("%s:%d | %s | %s", m.IPStr, m.Port, m.Org, locationString(m)))
		}
		return strings.Join(lines, "\n"), nil
	case "console":
		return formatConsole(question, tr, result, matches), nil
	default:
		log.Errorf("Unsupported output format: %s", outputFormat)
		return "", core.ErrOutputFormat
	}
}

func formatConsole(question string, tr translate.Translation, result *shodan.SearchResult, matches []shodan.Match) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 70) + "\n")
	b.WriteString(fmt.Sprintf("QUESTION: %s\n", question))
	b.WriteString(fmt.Sprintf("SHODAN QUERY: %s\n", tr.Query))
	b.WriteString(fmt.Sprintf("QUERY SOURCE: %s\n", tr.Source))
	b.WriteString(strings.Repeat("=", 70) + "\n\n")

	if result.Total == 0 {
		b.WriteString("No results. Shodan answered fine but found no matches for the\n")
		b.WriteString("generated query. Try broader filters, another product or country.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Total results: %d\n\n", result.Total))

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "IP", "Port", "Org", "Product", "Location", "Hostnames"})
	for i, m := range matches {
		t.AppendRow(table.Row{
			i + 1,
			m.IPStr,
			m.Port,
			m.Org,
			m.Product,
			locationString(m),
			strings.Join(m.Hostnames, ", "),
		})
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(matches) < result.Total {
		b.WriteString(fmt.Sprintf("\nShowing %d of %d results.\n", len(matches), result.Total))
	}
	return b.String()
}

func locationString(m shodan.Match) string {
	if m.Location.City != "" {
		return m.Location.CountryName + " - " + m.Location.City
	}
	return m.Location.CountryName
}

// WriteOutput writes content to a specified file.
func WriteOutput(filepath string, content string) error {
	log := logger.GetLogger()
	err := os.WriteFile(filepath, []byte(content), 0644) // 0644 is standard file permissions
	if err != nil {
		log.Errorf("Failed to write output to %s: %v", filepath, err)
		return core.ErrFileWrite
	}
	return nil
}
