package handler

import (
	"errors"

	charmlog "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"entryapi/internal/model"
	"entryapi/internal/repository"
	"entryapi/internal/service"
)

// CreateEntry godoc
// @Summary Create an entry
// @Accept json
// @Produce json
// @Param body body service.CreateEntryInput true "Entry content"
// @Success 200 {object} model.Entry
// @Failure 422 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /entries/ [post]
func CreateEntry(svc service.EntryService, log *charmlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateEntryInput
		if err := c.App().Config().JSONDecoder(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", `body must be a JSON object with a string "content" field`)
		}

		entry, err := svc.Create(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "content is required")
			case errors.Is(err, repository.ErrValueTooLong):
				return writeError(c, fiber.StatusUnprocessableEntity, "CONTENT_TOO_LONG", "content exceeds 255 characters")
			default:
				log.Error("create entry failed", "request_id", requestIDFromCtx(c), "error", err)
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(entry)
	}
}

// ListEntries godoc
// @Summary List all entries
// @Produce json
// @Success 200 {array} model.Entry
// @Failure 500 {object} errorPayload
// @Router /entries/ [get]
func ListEntries(svc service.EntryService, log *charmlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			log.Error("list entries failed", "request_id", requestIDFromCtx(c), "error", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if items == nil {
			items = []model.Entry{}
		}
		return c.JSON(items)
	}
}
