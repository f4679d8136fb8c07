package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/alexanderramin/spirulina/internal/timeseries"
)

// FormatPondList renders the pond registry with each pond's latest pH.
func FormatPondList(ponds []domain.Pond, logs []domain.ParameterLog) string {
	if len(ponds) == 0 {
		return RenderBox("Ponds", Dim("No ponds yet. Add one with `spirulina pond add`."))
	}
	headers := []string{"ID", "NAME", "STRAIN", "VOLUME", "STATUS", "PH", "LAST READING"}
	rows := make([][]string, 0, len(ponds))
	for _, p := range ponds {
		latest := timeseries.Latest(logs, p.ID)
		ph, last := Dim("--"), Dim("--")
		if v, ok := latest.PH.Get(); ok {
			ph = PH(v)
		}
		if at, ok := latest.At.Get(); ok {
			last = HumanDate(at)
		}
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			Bold(p.Name),
			p.Strain,
			Liters(p.Volume),
			StatusPill(p.Status),
			ph,
			last,
		})
	}
	return RenderBox("Ponds", RenderTable(headers, rows, 3, 5))
}

// FormatPondDetail renders a pond card: latest reading, recent history and
// harvests.
func FormatPondDetail(v *service.PondDetailView) string {
	var b strings.Builder
	p := v.Pond

	b.WriteString(Bold(p.Name) + "  " + StatusPill(p.Status) + "\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleMuted.Render("ID     "), Dim(p.ID))
	fmt.Fprintf(&b, "%s  %s\n", StyleMuted.Render("STRAIN "), StyleText.Render(p.Strain))
	fmt.Fprintf(&b, "%s  %s\n", StyleMuted.Render("VOLUME "), StyleText.Render(Liters(p.Volume)))
	fmt.Fprintf(&b, "%s  %s\n", StyleMuted.Render("CREATED"), StyleText.Render(HumanDate(p.CreatedAt)))

	b.WriteString("\n" + Header("Latest reading") + "\n")
	b.WriteString(formatReading(v.Latest))
	if v.PHAlert {
		b.WriteString(StyleAlert.Render(fmt.Sprintf("pH out of range (%s to %s): check the culture.",
			Number(timeseries.PHLow), Number(timeseries.PHHigh))) + "\n")
	}

	b.WriteString("\n" + Header("History") + "\n")
	if len(v.Recent) == 0 {
		b.WriteString(Dim("No readings yet.") + "\n")
	} else {
		b.WriteString(FormatLogTable(v.Recent))
	}

	if len(v.Harvests) > 0 {
		var wet float64
		for _, h := range v.Harvests {
			wet += h.WetWeight
		}
		b.WriteString("\n" + Header("Harvests") + "\n")
		fmt.Fprintf(&b, "%d harvests, %s wet\n", len(v.Harvests), Kilograms(wet))
	}

	return RenderBox("Pond", strings.TrimRight(b.String(), "\n"))
}

func formatReading(r timeseries.Reading) string {
	at, ok := r.At.Get()
	if !ok {
		return Dim("No readings yet.") + "\n"
	}
	ph, _ := r.PH.Get()
	temp, _ := r.Temperature.Get()
	od, _ := r.OpticalDensity.Get()
	sal, _ := r.Salinity.Get()
	return fmt.Sprintf("pH %s   %s°C   OD %s   salinity %s   %s\n",
		PH(ph), Number(temp), Number(od), Number(sal), Dim(Timestamp(at)))
}

// FormatPondCreated confirms a new pond.
func FormatPondCreated(p domain.Pond) string {
	return fmt.Sprintf("%s Pond %s created (%s, %s) %s\n",
		StyleOK.Render("✔"), Bold(p.Name), Liters(p.Volume), p.Strain, Dim(p.DisplayID()))
}

// FormatPondRemoved confirms a deletion and warns about records left behind.
func FormatPondRemoved(name string, orphanLogs, orphanHarvests int) string {
	out := fmt.Sprintf("%s Pond %s removed\n", StyleOK.Render("✔"), Bold(name))
	if orphanLogs+orphanHarvests > 0 {
		out += StyleWarn.Render(fmt.Sprintf(
			"  %d logs and %d harvests still reference it and will show as %q.",
			orphanLogs, orphanHarvests, service.UnknownPond)) + "\n"
	}
	return out
}
