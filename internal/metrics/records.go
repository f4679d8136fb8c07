package metrics

import (
	"context"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/prometheus/client_golang/prometheus"
)

// recordsCollector reads collection sizes from the store at scrape time.
type recordsCollector struct {
	store       *service.Store
	records     *prometheus.Desc
	activePonds *prometheus.Desc
	volume      *prometheus.Desc
	wetWeight   *prometheus.Desc
}

// RegisterRecords registers gauges computed from the store on each scrape.
func RegisterRecords(reg prometheus.Registerer, store *service.Store) error {
	return reg.Register(&recordsCollector{
		store: store,
		records: prometheus.NewDesc(metricPrefix+"records",
			"Stored records by collection", []string{"collection"}, nil),
		activePonds: prometheus.NewDesc(metricPrefix+"active_ponds",
			"Ponds with status Active", nil, nil),
		volume: prometheus.NewDesc(metricPrefix+"culture_volume_liters",
			"Total volume of all ponds in liters", nil, nil),
		wetWeight: prometheus.NewDesc(metricPrefix+"harvest_wet_weight_grams",
			"Total recorded wet harvest weight in grams", nil, nil),
	})
}

func (c *recordsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.activePonds
	ch <- c.volume
	ch <- c.wetWeight
}

func (c *recordsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()
	ponds := c.store.Ponds(ctx)
	logs := c.store.Logs(ctx)
	harvests := c.store.Harvests(ctx)

	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(len(ponds)), string(domain.CollectionPonds))
	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(len(logs)), string(domain.CollectionLogs))
	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(len(harvests)), string(domain.CollectionHarvests))
	ch <- prometheus.MustNewConstMetric(c.activePonds, prometheus.GaugeValue, float64(timeseries.ActiveCount(ponds)))
	ch <- prometheus.MustNewConstMetric(c.volume, prometheus.GaugeValue, timeseries.TotalVolume(ponds))
	ch <- prometheus.MustNewConstMetric(c.wetWeight, prometheus.GaugeValue, timeseries.TotalWetWeight(harvests))
}
