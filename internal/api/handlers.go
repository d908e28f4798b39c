package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.cycles.FetchProfile(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) StartPeriod(c *fiber.Ctx) error {
	var input periodDateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := requiredDate(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.cycles.StartPeriod(currentUserID(c), date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) EndPeriod(c *fiber.Ctx) error {
	var input periodDateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := requiredDate(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.cycles.EndPeriod(currentUserID(c), date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) AppendCycle(c *fiber.Ctx) error {
	var input cycleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	cycle, err := validateCycleInput(input)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.cycles.RecordCycle(currentUserID(c), cycle)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) AppendSymptom(c *fiber.Ctx) error {
	cycleIndex, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle index")
	}

	var input symptomInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	symptom, err := validateSymptomInput(input)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.cycles.LogSymptom(currentUserID(c), symptom, cycleIndex)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) UpdateInsights(c *fiber.Ctx) error {
	var input insightInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	insight, err := validateInsightInput(input)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.cycles.UpdateInsights(currentUserID(c), insight)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	window, err := handler.cycles.Predictions(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(window)
}

func (handler *Handler) SyncCalendar(c *fiber.Ctx) error {
	events, err := handler.cycles.ResyncCalendar(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"synced": len(events), "events": events})
}
