package simulation

import "github.com/UnknownOlympus/cellsim/internal/models"

// Summarize aggregates results per service class. Classes are listed in the
// order they first appear; classes with no devices are omitted.
func Summarize(results []models.DeviceResult) []models.ClassSummary {
	index := make(map[models.ServiceClass]int)
	var summary []models.ClassSummary

	for _, r := range results {
		pos, ok := index[r.Class]
		if !ok {
			pos = len(summary)
			index[r.Class] = pos
			summary = append(summary, models.ClassSummary{Class: r.Class})
		}

		s := &summary[pos]
		s.Devices++
		if r.Connected() {
			s.Connected++
		}
		s.MeanDownlinkMbps += r.DownlinkMbps
		s.MeanUplinkMbps += r.UplinkMbps
		s.MeanSatisfaction += r.Satisfaction
	}

	for i := range summary {
		n := float64(summary[i].Devices)
		summary[i].MeanDownlinkMbps /= n
		summary[i].MeanUplinkMbps /= n
		summary[i].MeanSatisfaction /= n
	}

	return summary
}
