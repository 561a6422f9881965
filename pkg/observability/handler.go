package observability

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/mfadel/weblet/pkg/router"
	"github.com/mfadel/weblet/pkg/wire"
)

// Handler returns a route handler serving the Prometheus text
// exposition format. The server does not use net/http, so promhttp
// cannot be mounted; instead the gathered metric families are encoded
// with expfmt and returned through the regular response path.
//
// Pass prometheus.DefaultGatherer unless the embedding application
// maintains its own registry.
func Handler(gatherer prometheus.Gatherer) router.Handler {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)

	return func(_ *wire.Request) (*wire.Response, error) {
		var families []*dto.MetricFamily
		families, err := gatherer.Gather()
		if err != nil {
			return nil, fmt.Errorf("gathering metrics: %w", err)
		}

		var buf bytes.Buffer
		enc := expfmt.NewEncoder(&buf, format)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return nil, fmt.Errorf("encoding metric family %q: %w", mf.GetName(), err)
			}
		}

		return wire.Build(200, "OK", buf.Bytes(),
			wire.Field{Name: "Content-Type", Value: string(format)},
		), nil
	}
}
