package logger_test

import (
	"context"
	"testing"

	"github.com/okian/lcboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello",
					logger.String("user", "alice"),
					logger.Int("count", 2),
					logger.Bool("ok", true),
				)
			}, ShouldNotPanic)
		})

		Convey("And Named returns a scoped logger", func() {
			So(func() {
				logger.Named("report").Warn(context.Background(), "degraded",
					logger.Error(nil),
				)
			}, ShouldNotPanic)
		})

		Convey("And level parsing accepts known names", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("And Sync never fails", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}
