package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/labstack/echo/v4"
)

type PondRequest struct {
	Name   string            `json:"name"`
	Volume float64           `json:"volume"`
	Status domain.PondStatus `json:"status"`
	Strain string            `json:"strain"`
}

type LogRequest struct {
	PondID         string  `json:"pondId"`
	PH             float64 `json:"ph"`
	Temperature    float64 `json:"temperature"`
	OpticalDensity float64 `json:"opticalDensity"`
	Salinity       float64 `json:"salinity"`
	AddedMedium    float64 `json:"addedMedium"`
	Notes          string  `json:"notes"`
}

type HarvestRequest struct {
	PondID    string                   `json:"pondId"`
	WetWeight float64                  `json:"wetWeight"`
	DryWeight domain.Optional[float64] `json:"dryWeight"`
	BatchID   domain.Optional[string]  `json:"batchId"`
	Notes     string                   `json:"notes"`
}

func decodeJSON(c echo.Context, v any) error {
	req := c.Request()
	ctype := strings.ToLower(req.Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return BadRequest("unexpected content type. it should be application/json", nil)
	}
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return BadRequest("can not understand the requested json", err)
	}
	return nil
}

func ListPondsHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, store.Ponds(c.Request().Context()))
	}
}

func CreatePondHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(PondRequest)
		if err := decodeJSON(c, body); err != nil {
			return err
		}
		pond, err := store.AddPond(c.Request().Context(), domain.PondDraft{
			Name:   body.Name,
			Volume: body.Volume,
			Status: body.Status,
			Strain: body.Strain,
		})
		if err != nil {
			return fromStoreError(err)
		}
		return c.JSON(http.StatusCreated, pond)
	}
}

func GetPondHandler(store *service.Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		detail, err := store.PondDetail(c.Request().Context(), c.Param(param))
		if err != nil {
			return fromStoreError(err)
		}
		return c.JSON(http.StatusOK, detail)
	}
}

type DeleteResponse struct {
	Removed          bool `json:"removed"`
	OrphanedLogs     int  `json:"orphanedLogs"`
	OrphanedHarvests int  `json:"orphanedHarvests"`
}

// DeletePondHandler answers 200 even when the pond was already gone.
func DeletePondHandler(store *service.Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(param)
		removed, err := store.DeletePond(ctx, id)
		if err != nil {
			return fromStoreError(err)
		}
		logs, harvests := store.Orphans(ctx, id)
		return c.JSON(http.StatusOK, DeleteResponse{Removed: removed, OrphanedLogs: logs, OrphanedHarvests: harvests})
	}
}

// PondLogsHandler lists a pond's logs; ?order=desc returns newest first.
func PondLogsHandler(store *service.Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		logs := store.Logs(c.Request().Context())
		id := c.Param(param)
		switch strings.ToLower(c.QueryParam("order")) {
		case "", "asc":
			return c.JSON(http.StatusOK, timeseries.LogsForPond(logs, id))
		case "desc":
			return c.JSON(http.StatusOK, timeseries.RecentLogs(logs, id))
		default:
			return BadRequest("order must be asc or desc", nil)
		}
	}
}

func ListLogsHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, store.Logs(c.Request().Context()))
	}
}

func CreateLogHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(LogRequest)
		if err := decodeJSON(c, body); err != nil {
			return err
		}
		log, err := store.AddLog(c.Request().Context(), domain.LogDraft{
			PondID:         body.PondID,
			PH:             body.PH,
			Temperature:    body.Temperature,
			OpticalDensity: body.OpticalDensity,
			Salinity:       body.Salinity,
			AddedMedium:    body.AddedMedium,
			Notes:          body.Notes,
		})
		if err != nil {
			return fromStoreError(err)
		}
		return c.JSON(http.StatusCreated, log)
	}
}

// HarvestLedgerHandler returns the ledger page; ?visible=N restores a
// load-more position.
func HarvestLedgerHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		pager := timeseries.NewPager()
		if v := c.QueryParam("visible"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return BadRequest("visible must be a non-negative integer", err)
			}
			pager = timeseries.PagerAt(n)
		}
		return c.JSON(http.StatusOK, store.HarvestLedger(c.Request().Context(), pager))
	}
}

func CreateHarvestHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(HarvestRequest)
		if err := decodeJSON(c, body); err != nil {
			return err
		}
		harvest, err := store.AddHarvest(c.Request().Context(), domain.HarvestDraft{
			PondID:    body.PondID,
			WetWeight: body.WetWeight,
			DryWeight: body.DryWeight,
			BatchID:   body.BatchID,
			Notes:     body.Notes,
		})
		if err != nil {
			return fromStoreError(err)
		}
		return c.JSON(http.StatusCreated, harvest)
	}
}
