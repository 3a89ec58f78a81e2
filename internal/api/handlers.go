package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saarthak-dev/medtimer/internal/adherence"
	"github.com/saarthak-dev/medtimer/internal/clock"
	apperrors "github.com/saarthak-dev/medtimer/internal/errors"
	"github.com/saarthak-dev/medtimer/internal/export"
	"github.com/saarthak-dev/medtimer/internal/metrics"
)

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name can't be empty"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": name,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.config.Security.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": tokenString, "name": name})
}

func (s *Server) handleListMedicines(c *fiber.Ctx) error {
	now := clock.Now()
	s.store.RefreshAll(now)

	meds := s.store.Medicines()
	if c.Query("sort") == "time" {
		meds = s.store.SortedByTime(now)
	}

	rows := make([]fiber.Map, 0, len(meds))
	for _, m := range meds {
		rows = append(rows, fiber.Map{
			"id":         m.ID,
			"name":       m.Name,
			"time_str":   m.TimeStr,
			"remind_min": m.RemindMin,
			"status":     m.Status,
			"taken_at":   m.TakenAt,
			"color":      m.Status.Color(),
		})
	}
	return c.JSON(rows)
}

func (s *Server) handleAddMedicine(c *fiber.Ctx) error {
	var req struct {
		Name      string `json:"name"`
		TimeStr   string `json:"time_str"`
		RemindMin int    `json:"remind_min"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	id, err := s.store.Add(req.Name, req.TimeStr, req.RemindMin)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
			"code":  apperrors.GetCode(err),
		})
	}

	return c.Status(201).JSON(fiber.Map{"id": id})
}

func (s *Server) handleEditMedicine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var req struct {
		Name      string `json:"name"`
		TimeStr   string `json:"time_str"`
		RemindMin int    `json:"remind_min"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	// An unknown id is a silent no-op by design, so edit never 404s.
	if err := s.store.Edit(id, req.Name, req.TimeStr, req.RemindMin); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
			"code":  apperrors.GetCode(err),
		})
	}

	return c.SendStatus(204)
}

func (s *Server) handleDeleteMedicine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	s.store.Delete(id)
	return c.SendStatus(204)
}

func (s *Server) handleMarkTaken(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	s.store.MarkTaken(id)
	return c.SendStatus(204)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	now := clock.Now()
	s.store.RefreshAll(now)

	scheduled, taken, pct := adherence.TodayCounts(s.store.Medicines())
	rows, weeklyPct := adherence.WeeklyTable(s.store.History(), now)
	streak := adherence.CurrentStreak(s.store.History(), now)

	return c.JSON(fiber.Map{
		"user": c.Locals("user"),
		"today": fiber.Map{
			"scheduled":     scheduled,
			"taken":         taken,
			"adherence_pct": pct,
		},
		"weekly": fiber.Map{
			"rows":        rows,
			"average_pct": weeklyPct,
		},
		"streak":        streak,
		"encouragement": adherence.EncouragementFor(pct),
		"tip":           adherence.TipFor(pct),
	})
}

func (s *Server) handleExportCSV(c *fiber.Ctx) error {
	now := clock.Now()
	s.store.RefreshAll(now)

	data, err := export.CSV(s.store.Medicines())
	if err != nil {
		s.logger.Error("Failed to export CSV", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "failed to export csv"})
	}

	metrics.Exports.WithLabelValues("csv").Inc()
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="medtimer_today.csv"`)
	return c.Send(data)
}

func (s *Server) handleExportPDF(c *fiber.Ctx) error {
	now := clock.Now()
	s.store.RefreshAll(now)

	data, err := export.PDF(s.store.Medicines(), now)
	if err != nil {
		s.logger.Error("Failed to export PDF", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "failed to export pdf"})
	}

	metrics.Exports.WithLabelValues("pdf").Inc()
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="medtimer_today.pdf"`)
	return c.Send(data)
}
