package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/load"
	"github.com/ANIKETSHETTY47/coolcalc/internal/repository"
	"github.com/ANIKETSHETTY47/coolcalc/internal/service"
	"github.com/ANIKETSHETTY47/coolcalc/internal/thermal"
)

const defaultUser = "anonymous"

var productTables = map[domain.RoomType]thermal.Table{
	domain.Freezer:      thermal.FreezerProducts,
	domain.ColdRoom:     thermal.ColdRoomProducts,
	domain.BlastFreezer: thermal.BlastFreezerProducts,
}

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	g := app.Group("/")
	g.Get("products/:room", func(c *fiber.Ctx) error {
		room, err := domain.ParseRoomType(c.Params("room"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(thermal.ProductNames(productTables[room]))
	})

	rooms := g.Group("rooms/:room")
	rooms.Get("forms/:stage", func(c *fiber.Ctx) error {
		room, stage, err := roomStage(c)
		if err != nil {
			return fail(c, err)
		}
		payload, err := svcs.Forms.Get(c.UserContext(), room, stage)
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	})
	rooms.Put("forms/:stage", func(c *fiber.Ctx) error {
		room, stage, err := roomStage(c)
		if err != nil {
			return fail(c, err)
		}
		if err := svcs.Forms.Set(c.UserContext(), room, stage, c.Body()); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	rooms.Post("calculate", func(c *fiber.Ctx) error {
		room, err := domain.ParseRoomType(c.Params("room"))
		if err != nil {
			return fail(c, err)
		}
		res, err := svcs.Calculations.Calculate(c.UserContext(), room)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"result": res, "summary": res.Summary()})
	})
	rooms.Post("evaluate", func(c *fiber.Ctx) error {
		room, err := domain.ParseRoomType(c.Params("room"))
		if err != nil {
			return fail(c, err)
		}
		forms, err := service.DecodeForms(room, c.Body())
		if err != nil {
			return fail(c, err)
		}
		res, err := svcs.Calculations.Evaluate(room, forms)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"result": res, "summary": res.Summary()})
	})
	rooms.Get("report", func(c *fiber.Ctx) error {
		room, err := domain.ParseRoomType(c.Params("room"))
		if err != nil {
			return fail(c, err)
		}
		doc, err := svcs.Calculations.Report(c.UserContext(), room)
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(doc)
	})
	rooms.Post("share", func(c *fiber.Ctx) error {
		room, err := domain.ParseRoomType(c.Params("room"))
		if err != nil {
			return fail(c, err)
		}
		out, err := svcs.Share.Share(c.UserContext(), userID(c), room)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	})

	g.Get("calculations", func(c *fiber.Ctx) error {
		items, err := svcs.Calculations.History(c.UserContext(), userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Delete("calculations/:id", func(c *fiber.Ctx) error {
		if err := svcs.Calculations.Delete(c.UserContext(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func roomStage(c *fiber.Ctx) (domain.RoomType, domain.Stage, error) {
	room, err := domain.ParseRoomType(c.Params("room"))
	if err != nil {
		return "", "", err
	}
	stage, err := domain.ParseStage(room, c.Params("stage"))
	if err != nil {
		return "", "", err
	}
	return room, stage, nil
}

func userID(c *fiber.Ctx) string {
	if id := c.Get("X-User-ID"); id != "" {
		return id
	}
	return defaultUser
}

// fail maps service errors onto status codes. Every failure is reported to the
// caller; none of them stop the server.
func fail(c *fiber.Ctx, err error) error {
	var missing *load.MissingInputError
	var degenerate *load.DegenerateInputError
	switch {
	case errors.Is(err, domain.ErrUnknownRoom), errors.Is(err, domain.ErrUnknownStage), errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidForm):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &missing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "stage": missing.Stage})
	case errors.As(err, &degenerate):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "field": degenerate.Field})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
