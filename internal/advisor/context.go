// Package advisor turns the current ponds and logs into a context summary and
// forwards questions to a text-generation service.
package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/timeseries"
)

const (
	// ContextLogsPerPond caps how many recent logs each pond contributes.
	ContextLogsPerPond = 3

	noPondsSentence = "The user has no ponds registered yet."
	noLogsSentence  = "No recent readings."
	dateLayout      = "2006-01-02"
)

// BuildContext summarizes every pond with its most recent readings, newest
// first.
func BuildContext(ponds []domain.Pond, logs []domain.ParameterLog) string {
	if len(ponds) == 0 {
		return noPondsSentence
	}
	var b strings.Builder
	b.WriteString("Current culture information:\n")
	for _, p := range ponds {
		fmt.Fprintf(&b, "- Pond: %s (%sL, Status: %s).\n", p.Name, num(p.Volume), p.Status)
		recent := timeseries.RecentHistory(logs, p.ID, ContextLogsPerPond)
		if len(recent) == 0 {
			b.WriteString("  " + noLogsSentence + "\n")
			continue
		}
		b.WriteString("  Latest readings:\n")
		for _, l := range recent {
			fmt.Fprintf(&b, "    [%s]: pH %s, Temp %s°C, OD %s",
				l.Timestamp.Local().Format(dateLayout), num(l.PH), num(l.Temperature), num(l.OpticalDensity))
			if l.AddedMedium > 0 {
				fmt.Fprintf(&b, ", added %sL of medium", num(l.AddedMedium))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
