package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inspiration-notes/app"
	"inspiration-notes/services"
)

// GetIntegrityReport runs the read-only store audit
func GetIntegrityReport(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := a.IntegrityService.Check()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to run integrity check", err)
		}

		return success(c, fiber.Map{"report": report})
	}
}

// RepairOrphans reassigns orphaned inspirations to the given theme
// (the default theme when move_to is absent). Repair never runs as part of
// the audit itself; it has to be asked for.
func RepairOrphans(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		moveTo := c.Query("move_to")
		if moveTo == "" {
			moveTo = a.ThemeService.DefaultTheme()
		}

		repaired, err := a.IntegrityService.RepairOrphans(moveTo)
		if err != nil {
			if errors.Is(err, services.ErrThemeNotFound) {
				return notFound(c, "Move target theme not found")
			}
			return serverErrorWithDetails(c, "Failed to repair orphans", err)
		}

		return success(c, fiber.Map{"repaired": repaired})
	}
}
