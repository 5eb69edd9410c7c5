package api

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/engram/pkg/eventstream"
	"github.com/papercomputeco/engram/pkg/memory"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LearnRequest is the JSON body of a learn request.
type LearnRequest struct {
	Value int `json:"value"`
}

// CheckResponse is the JSON body of a check response.
type CheckResponse struct {
	Clone int    `json:"clone"`
	Value string `json:"value"`
}

// CloneResponse is the JSON body of a clone response.
type CloneResponse struct {
	// Clone is the number assigned to the newly created clone.
	Clone int `json:"clone"`
}

// CountResponse is the JSON body of the clone count response.
type CountResponse struct {
	Count int `json:"count"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleCount returns the number of clones in the registry.
func (s *Server) handleCount(c *fiber.Ctx) error {
	return c.JSON(CountResponse{Count: s.registry.Count()})
}

// handleCheck returns the textual top of a clone's learned history.
func (s *Server) handleCheck(c *fiber.Ctx) error {
	number, err := cloneNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	value, err := s.registry.Check(number)
	if err != nil {
		return s.registryError(c, err)
	}

	return c.JSON(CheckResponse{Clone: number, Value: value})
}

// handleLearn appends a fact to a clone's learned history.
func (s *Server) handleLearn(c *fiber.Ctx) error {
	number, err := cloneNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	var req LearnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	if err := s.registry.Learn(number, req.Value); err != nil {
		return s.registryError(c, err)
	}

	event := eventstream.NewOperationEvent("learn", number)
	event.Value = &req.Value
	s.publish(c.Context(), event)

	return c.SendStatus(fiber.StatusNoContent)
}

// handleRollback undoes a clone's most recently learned fact.
func (s *Server) handleRollback(c *fiber.Ctx) error {
	number, err := cloneNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := s.registry.Rollback(number); err != nil {
		return s.registryError(c, err)
	}

	s.publish(c.Context(), eventstream.NewOperationEvent("rollback", number))

	return c.SendStatus(fiber.StatusNoContent)
}

// handleRelearn redoes a clone's most recently rolled-back fact.
func (s *Server) handleRelearn(c *fiber.Ctx) error {
	number, err := cloneNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := s.registry.Relearn(number); err != nil {
		return s.registryError(c, err)
	}

	s.publish(c.Context(), eventstream.NewOperationEvent("relearn", number))

	return c.SendStatus(fiber.StatusNoContent)
}

// handleClone duplicates a clone and returns the new clone's number.
func (s *Server) handleClone(c *fiber.Ctx) error {
	number, err := cloneNumber(c)
	if err != nil {
		return badRequest(c, err)
	}

	newNumber, err := s.registry.Clone(number)
	if err != nil {
		return s.registryError(c, err)
	}

	event := eventstream.NewOperationEvent("clone", number)
	event.NewClone = &newNumber
	s.publish(c.Context(), event)

	return c.JSON(CloneResponse{Clone: newNumber})
}

// cloneNumber parses the :number route parameter.
func cloneNumber(c *fiber.Ctx) (int, error) {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		return 0, errors.New("clone number must be an integer")
	}
	return number, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
}

// registryError maps core errors onto HTTP statuses: unknown clone numbers
// are 404, empty-history failures are 409.
func (s *Server) registryError(c *fiber.Ctx, err error) error {
	var invalid memory.InvalidCloneError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	}

	if errors.Is(err, memory.ErrEmptyHistory) {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}

// publish emits an operation event. Publish failures never fail the request;
// they are logged and dropped.
func (s *Server) publish(ctx context.Context, event *eventstream.OperationAppliedEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishOperation(ctx, event); err != nil {
		s.logger.Warn("failed to publish operation event",
			slog.String("op", event.Op),
			slog.Int("clone", event.Clone),
			slog.Any("error", err),
		)
	}
}
