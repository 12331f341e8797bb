package insight

import (
	"fmt"
	"strings"

	"github.com/geopredictor/geopredictor-api/internal/domain"
)

// noActivityLine is the valid empty-state input fed to the model when the
// filtered period has no records.
const noActivityLine = "No notable activity recorded for this period and location."

// BuildPrompt serializes a summary into the urban-analyst prompt. The
// structure asks for three fixed sections so the dashboard can display
// the response verbatim.
func BuildPrompt(s domain.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an urban data analyst for the city of **%s**, working with an AI forecasting system.\n", s.Region)
	fmt.Fprintf(&b, "The analysis date is %s and the period of interest is from %dh to %dh. ",
		s.Date.Format("02/01/2006"), s.HourFrom, s.HourTo)
	fmt.Fprintf(&b, "The day of the week is %s. The simulated rainfall forecast for this day is %gmm.\n\n", s.DayName, s.RainfallMM)

	b.WriteString("**Observed Data for the Selected Period and Location:**\n")
	if s.Empty() {
		b.WriteString(noActivityLine)
		b.WriteString("\n")
	} else {
		for _, cs := range s.Categories {
			fmt.Fprintf(&b, "- Type: %s\n", cs.Label)
			fmt.Fprintf(&b, "  Affected Locations: %s\n", strings.Join(cs.Locations, ", "))
			fmt.Fprintf(&b, "  Geographic Areas: %s\n", strings.Join(cs.Areas, ", "))
			fmt.Fprintf(&b, "  Average Intensity: %.1f (out of 10)\n", cs.MeanIntensity)
			fmt.Fprintf(&b, "  Peak Intensity: %.1f (out of 10)\n", cs.MaxIntensity)
		}
	}

	fmt.Fprintf(&b, "\nBased on this data and on typical urban patterns (commute peaks, tourist flow, flood-prone areas) for a city like %s:\n", s.Region)
	fmt.Fprintf(&b, "1. **Pattern Analysis:** Concisely describe what is happening or expected to happen in **%s** during the selected period, highlighting the most relevant areas and occurrence types.\n", s.Region)
	fmt.Fprintf(&b, "2. **Forecast:** Based on the historical patterns implicit in the dataset and the current data, predict how the situation may evolve over the **next 2-4 hours** in **%s**.\n", s.Region)
	fmt.Fprintf(&b, "3. **Actionable Recommendations:** Provide 2-3 specific, practical recommendations for the responsible agencies (e.g. Traffic Department, Civil Defense, Tourism Office) to manage the situation or optimize resources in **%s**.\n", s.Region)
	b.WriteString("Format your answer in clear sections: **Pattern Analysis**, **Forecast**, and **Actionable Recommendations**.")

	return b.String()
}
