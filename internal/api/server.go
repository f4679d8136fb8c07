// Package api serves the culture log, dosage calculator and advisor over a
// JSON HTTP API.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const apiRoot = "/api"

// HTTPObserver records request outcomes; *metrics.Metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(method, route string, code int, duration time.Duration)
}

// Deps are the services the API exposes. Advisor, Metrics and Observer are
// optional.
type Deps struct {
	Store    *service.Store
	Advisor  *advisor.Advisor
	Metrics  http.Handler
	Observer HTTPObserver
}

// BuildServer registers every route on a new echo instance.
func BuildServer(deps Deps, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}

	e.Use(middleware.Recover())
	e.Use(LogHandlerFunc)
	if deps.Observer != nil {
		e.Use(observe(deps.Observer))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}

	g := e.Group(apiRoot)
	g.GET("/ponds", ListPondsHandler(deps.Store))
	g.POST("/ponds", CreatePondHandler(deps.Store))
	g.GET("/ponds/:id", GetPondHandler(deps.Store, "id"))
	g.DELETE("/ponds/:id", DeletePondHandler(deps.Store, "id"))
	g.GET("/ponds/:id/logs", PondLogsHandler(deps.Store, "id"))
	g.GET("/logs", ListLogsHandler(deps.Store))
	g.POST("/logs", CreateLogHandler(deps.Store))
	g.GET("/harvests", HarvestLedgerHandler(deps.Store))
	g.POST("/harvests", CreateHarvestHandler(deps.Store))
	g.GET("/dashboard", DashboardHandler(deps.Store))
	g.GET("/dosage/:mode", DosageHandler(deps.Store, "mode"))
	g.GET("/export", ExportHandler(deps.Store))
	g.POST("/import", ImportHandler(deps.Store))
	if deps.Advisor != nil {
		g.POST("/advisor", AdvisorHandler(deps.Store, deps.Advisor))
	}

	return e
}

// SetLevel maps debug|info|warn|error|off onto the echo logger.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s. falling back to warn", loglevel)
	}
}

// LogHandlerFunc logs each request and its response latency.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		begin := time.Now()
		c.Logger().Debugf("< request %s %s", meth, path)

		err := next(c)

		c.Logger().Infof(
			"> response status = %d for %s %s in %v / error = %v",
			c.Response().Status, meth, path, time.Since(begin), err,
		)
		return err
	}
}

func observe(obs HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)
			code := c.Response().Status
			var he *echo.HTTPError
			if err != nil {
				code = http.StatusInternalServerError
				if asHTTPError(err, &he) {
					code = he.Code
				}
			}
			obs.ObserveHTTP(c.Request().Method, c.Path(), code, time.Since(begin))
			return err
		}
	}
}
