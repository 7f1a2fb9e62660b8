package metrics_test

import (
	"testing"

	"github.com/okian/lcboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))

		Convey("Then construction registers all metric families", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})

		Convey("And registering twice on the same registry panics", func() {
			So(func() {
				metrics.NewManager(metrics.WithPrometheusRegistry(reg))
			}, ShouldPanic)
		})
	})

	Convey("Given the global manager", t, func() {
		Convey("When recording activity through the package helpers", func() {
			metrics.RecordReportRun(12.5, 2)
			metrics.RecordUpstreamRequest("recent_ac_submissions", "200", 40)
			metrics.RecordUserFetchFailure()
			metrics.RecordHTTPRequest("report", "POST", "200")
			metrics.RecordHTTPRequestDuration("report", "POST", "200", 55)
			metrics.RecordRelayRequest("200")
			metrics.UpdateSystemMemoryUsage(1 << 20)
			metrics.UpdateSystemGoroutineCount(12)
			metrics.RecordSystemGCPauseTime(0.3)

			Convey("Then the shared registry gathers without error", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 5)
			})
		})
	})
}
