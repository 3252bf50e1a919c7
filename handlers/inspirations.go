package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inspiration-notes/app"
	"inspiration-notes/models"
	"inspiration-notes/services"
)

// GetInspirations lists inspirations. With ?theme= it filters by theme,
// with ?q= it searches content and theme name.
func GetInspirations(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			inspirations []models.Inspiration
			err          error
		)

		switch {
		case c.Query("q") != "":
			inspirations, err = a.InspirationService.Search(c.Query("q"))
		case c.Query("theme") != "":
			inspirations, err = a.InspirationService.ListByTheme(c.Query("theme"))
		default:
			inspirations, err = a.InspirationService.List()
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch inspirations", err)
		}

		return success(c, fiber.Map{"inspirations": inspirations})
	}
}

// GetInspiration retrieves a single inspiration by id
func GetInspiration(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return badRequest(c, "Invalid inspiration id")
		}

		insp, err := a.InspirationService.Get(id)
		if err != nil {
			if errors.Is(err, services.ErrInspirationNotFound) {
				return notFound(c, "Inspiration not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch inspiration", err)
		}

		return success(c, fiber.Map{"inspiration": insp})
	}
}

// GetInspirationCount returns the total count, or the per-theme count
// with ?theme=.
func GetInspirationCount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			count int
			err   error
		)

		if theme := c.Query("theme"); theme != "" {
			count, err = a.InspirationService.CountByTheme(theme)
		} else {
			count, err = a.InspirationService.Count()
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count inspirations", err)
		}

		return success(c, fiber.Map{"count": count})
	}
}

// CreateInspiration stores a new inspiration
func CreateInspiration(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateInspirationRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		insp, err := a.InspirationService.Save(req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidContent):
				return badRequest(c, "Content must be between 1 and 500 characters")
			case errors.Is(err, services.ErrThemeNotFound):
				return notFound(c, "Theme not found")
			}
			return serverErrorWithDetails(c, "Failed to save inspiration", err)
		}

		return created(c, fiber.Map{"inspiration": insp})
	}
}

// UpdateInspiration replaces an inspiration's content, theme and word count
func UpdateInspiration(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return badRequest(c, "Invalid inspiration id")
		}

		var req models.UpdateInspirationRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		insp, err := a.InspirationService.Update(id, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidContent):
				return badRequest(c, "Content must be between 1 and 500 characters")
			case errors.Is(err, services.ErrInspirationNotFound):
				return notFound(c, "Inspiration not found")
			case errors.Is(err, services.ErrThemeNotFound):
				return notFound(c, "Theme not found")
			}
			return serverErrorWithDetails(c, "Failed to update inspiration", err)
		}

		return success(c, fiber.Map{"inspiration": insp})
	}
}

// DeleteInspiration removes an inspiration by id
func DeleteInspiration(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return badRequest(c, "Invalid inspiration id")
		}

		if err := a.InspirationService.Delete(id); err != nil {
			if errors.Is(err, services.ErrInspirationNotFound) {
				return notFound(c, "Inspiration not found")
			}
			return serverErrorWithDetails(c, "Failed to delete inspiration", err)
		}

		return success(c, fiber.Map{"message": "Inspiration deleted successfully"})
	}
}
