package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inspiration-notes/app"
	"inspiration-notes/models"
	"inspiration-notes/services"
)

// GetThemes lists all themes. The order query parameter accepts
// name (default), last_used and count.
func GetThemes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order := models.ThemeOrder(c.Query("order", string(models.ThemeOrderName)))

		themes, err := a.ThemeService.List(order)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch themes", err)
		}

		return success(c, fiber.Map{"themes": themes})
	}
}

// GetTheme retrieves a single theme by name
func GetTheme(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")

		theme, err := a.ThemeService.Get(name)
		if err != nil {
			if errors.Is(err, services.ErrThemeNotFound) {
				return notFound(c, "Theme not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch theme", err)
		}

		return success(c, fiber.Map{"theme": theme})
	}
}

// CreateTheme creates a new theme
func CreateTheme(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateThemeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		theme, err := a.ThemeService.Create(req)
		if err != nil {
			var nameErr *services.NameError
			switch {
			case errors.As(err, &nameErr):
				return badRequest(c, nameErr.Error())
			case errors.Is(err, services.ErrThemeExists):
				return conflict(c, "Theme with this name already exists")
			}
			return serverErrorWithDetails(c, "Failed to create theme", err)
		}

		return created(c, fiber.Map{"theme": theme})
	}
}

// RenameTheme renames a theme and cascades the change to its inspirations
func RenameTheme(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		oldName := c.Params("name")

		var req models.RenameThemeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.ThemeService.Rename(oldName, req.NewName); err != nil {
			var nameErr *services.NameError
			switch {
			case errors.As(err, &nameErr):
				return badRequest(c, nameErr.Error())
			case errors.Is(err, services.ErrThemeNotFound):
				return notFound(c, "Theme not found")
			case errors.Is(err, services.ErrThemeExists):
				return conflict(c, "Theme with this name already exists")
			}
			return serverErrorWithDetails(c, "Failed to rename theme", err)
		}

		return success(c, fiber.Map{"message": "Theme renamed successfully"})
	}
}

// DeleteTheme deletes a theme after reassigning its inspirations
func DeleteTheme(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		moveTo := c.Query("move_to")

		if err := a.ThemeService.Delete(name, moveTo); err != nil {
			switch {
			case errors.Is(err, services.ErrProtectedTheme):
				return forbidden(c, "The default theme cannot be deleted")
			case errors.Is(err, services.ErrSameTheme):
				return badRequest(c, "Move target must be a different theme")
			case errors.Is(err, services.ErrThemeNotFound):
				return notFound(c, "Theme not found")
			}
			return serverErrorWithDetails(c, "Failed to delete theme", err)
		}

		return success(c, fiber.Map{
			"message": "Theme deleted. Its inspirations were moved, not destroyed.",
		})
	}
}
