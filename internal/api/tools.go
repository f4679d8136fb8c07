package api

import (
	"net/http"
	"strings"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/dosage"
	"github.com/alexanderramin/spirulina/internal/importer"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/labstack/echo/v4"
)

func DashboardHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, store.Dashboard(c.Request().Context()))
	}
}

type DosageLine struct {
	Name      string          `json:"name"`
	Rate      string          `json:"rate"`
	Amount    float64         `json:"amount"`
	Formatted string          `json:"formatted"`
	Unit      string          `json:"unit"`
	Function  string          `json:"function,omitempty"`
	Category  dosage.Category `json:"category,omitempty"`
	Note      string          `json:"note,omitempty"`
}

type DosageResponse struct {
	Mode      dosage.Mode  `json:"mode"`
	Title     string       `json:"title"`
	Input     float64      `json:"input"`
	InputUnit string       `json:"inputUnit"`
	Lines     []DosageLine `json:"lines"`
	Footnote  string       `json:"footnote"`
	Presets   []float64    `json:"presets"`
}

// DosageHandler computes a recipe. ?amount= is the liters or grams; when
// it is missing, new-medium uses ?pond='s volume and otherwise the mode
// default. Invalid amounts compute as zero.
func DosageHandler(store *service.Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		mode, err := dosage.ParseMode(c.Param(param))
		if err != nil {
			return NotFound(err.Error(), err)
		}

		amount := dosage.DefaultInput[mode]
		if raw, ok := c.QueryParams()["amount"]; ok && len(raw) > 0 {
			amount = dosage.ParseQuantity(raw[0])
		} else if pondID := c.QueryParam("pond"); pondID != "" && mode == dosage.ModeNewMedium {
			pond, err := store.Pond(c.Request().Context(), pondID)
			if err != nil {
				return fromStoreError(err)
			}
			amount = pond.Volume
		}

		res, err := dosage.Calculate(mode, amount)
		if err != nil {
			return BadRequest(err.Error(), err)
		}
		out := DosageResponse{
			Mode:      res.Recipe.Mode,
			Title:     res.Recipe.Title,
			Input:     res.Input,
			InputUnit: res.Recipe.InputUnit,
			Footnote:  res.Recipe.Footnote,
			Presets:   dosage.Presets[mode],
			Lines:     make([]DosageLine, 0, len(res.Lines)),
		}
		for _, l := range res.Lines {
			out.Lines = append(out.Lines, DosageLine{
				Name:      l.Nutrient.Name,
				Rate:      l.RateLabel(mode),
				Amount:    l.Amount,
				Formatted: l.Formatted(),
				Unit:      l.Nutrient.Unit,
				Function:  l.Nutrient.Function,
				Category:  l.Nutrient.Category,
				Note:      l.Nutrient.Note,
			})
		}
		return c.JSON(http.StatusOK, out)
	}
}

type AdvisorRequest struct {
	Question string `json:"question"`
}

type AdvisorResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}

// AdvisorHandler always answers 200; advisory failures come back as a
// fallback reply.
func AdvisorHandler(store *service.Store, adv *advisor.Advisor) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(AdvisorRequest)
		if err := decodeJSON(c, body); err != nil {
			return err
		}
		question := strings.TrimSpace(body.Question)
		if question == "" {
			return BadRequest("question is required", nil)
		}
		ctx := c.Request().Context()
		answer := adv.Ask(ctx, question, store.Ponds(ctx), store.Logs(ctx))
		return c.JSON(http.StatusOK, AdvisorResponse{Answer: answer, Fallback: advisor.IsFallback(answer)})
	}
}

func ExportHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="spirulina-backup.json"`)
		return c.JSON(http.StatusOK, store.Export(c.Request().Context()))
	}
}

func ImportHandler(store *service.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		bundle := new(importer.Bundle)
		if err := decodeJSON(c, bundle); err != nil {
			return err
		}
		res, err := store.Import(c.Request().Context(), bundle)
		if err != nil {
			return fromStoreError(err)
		}
		return c.JSON(http.StatusOK, map[string]int{
			"ponds":           res.Ponds,
			"logs":            res.Logs,
			"harvests":        res.Harvests,
			"skippedPonds":    res.SkippedPonds,
			"skippedLogs":     res.SkippedLogs,
			"skippedHarvests": res.SkippedHarvests,
		})
	}
}

