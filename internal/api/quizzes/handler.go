package quizzes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"quizgen/config"
	"quizgen/internal/core/quiz"
	"quizgen/internal/services/quizstore"
	"quizgen/pkg/apperror"
	"quizgen/pkg/apperror/status"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// editRequest is the PATCH body. Options maps an option index to its new text.
type editRequest struct {
	Question      *string           `json:"question" validate:"omitempty,min=1"`
	Options       map[string]string `json:"options" validate:"omitempty,dive,keys,number,endkeys,required"`
	CorrectAnswer *int              `json:"correctAnswer" validate:"omitempty,min=0"`
}

type shareResponse struct {
	QuizID string `json:"quizId"`
	URL    string `json:"url"`
}

type handler struct {
	store     quizstore.Store
	publicURL string
	validate  *validator.Validate
}

// load fetches the quiz named by the id param. When ok is false the error
// response has already been written and err is the result of that write.
func (h *handler) load(c fiber.Ctx) (q quiz.Quiz, ok bool, err error) {
	q, err = h.store.Get(context.Background(), c.Params("id"))
	if err != nil {
		return quiz.Quiz{}, false, h.storeError(c, err)
	}
	return q, true, nil
}

func (h *handler) storeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, quizstore.ErrNotFound):
		return apperror.NotFound(config.ModuleQuiz, c, status.QuizNotFound, err.Error())
	case errors.Is(err, quiz.ErrInvalidEdit):
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidEdit, err.Error())
	default:
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}
}

func (h *handler) HandleGet(c fiber.Ctx) error {
	q, ok, err := h.load(c)
	if !ok {
		return err
	}
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: "quiz found",
		Data:    q,
	})
}

// questionIndex parses the index param. Like load, ok is false once a 400
// has been written.
func (h *handler) questionIndex(c fiber.Ctx) (i int, ok bool, err error) {
	i, err = strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, false, apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, "question index must be an integer")
	}
	return i, true, nil
}

func (h *handler) edit(c fiber.Ctx, message string, cmds ...quiz.Command) error {
	updated, err := h.store.Update(context.Background(), c.Params("id"), func(q *quiz.Quiz) error {
		edited, err := quiz.Apply(*q, cmds...)
		if err != nil {
			return err
		}
		*q = edited
		return nil
	})
	if err != nil {
		return h.storeError(c, err)
	}
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: message,
		Data:    updated,
	})
}

func (h *handler) HandlePatchQuestion(c fiber.Ctx) error {
	index, ok, err := h.questionIndex(c)
	if !ok {
		return err
	}

	var req editRequest
	if err := c.Bind().JSON(&req); err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, err.Error())
	}
	cmds, err := editCommands(index, req)
	if err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, err.Error())
	}
	if len(cmds) == 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, "nothing to update")
	}
	return h.edit(c, "question updated", cmds...)
}

// editCommands orders the edits as question text, options by index, then the
// correct answer.
func editCommands(index int, req editRequest) ([]quiz.Command, error) {
	var cmds []quiz.Command
	if req.Question != nil {
		cmds = append(cmds, quiz.UpdateQuestionText{Question: index, Text: *req.Question})
	}
	options := make([]int, 0, len(req.Options))
	texts := make(map[int]string, len(req.Options))
	for k, v := range req.Options {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("option key %q must be an integer", k)
		}
		options = append(options, i)
		texts[i] = v
	}
	sort.Ints(options)
	for _, i := range options {
		cmds = append(cmds, quiz.UpdateOptionText{Question: index, Option: i, Text: texts[i]})
	}
	if req.CorrectAnswer != nil {
		cmds = append(cmds, quiz.SetCorrectAnswer{Question: index, Option: *req.CorrectAnswer})
	}
	return cmds, nil
}

func (h *handler) HandleDeleteQuestion(c fiber.Ctx) error {
	index, ok, err := h.questionIndex(c)
	if !ok {
		return err
	}
	return h.edit(c, "question deleted", quiz.DeleteQuestion{Question: index})
}

func (h *handler) HandleExport(c fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "text"))
	var (
		write func(*bytes.Buffer, quiz.Quiz) error
		ext   string
	)
	switch format {
	case "text", "txt":
		write = func(b *bytes.Buffer, q quiz.Quiz) error { return quiz.WriteText(b, q) }
		ext = "txt"
	case "json":
		write = func(b *bytes.Buffer, q quiz.Quiz) error { return quiz.WriteJSON(b, q) }
		ext = "json"
	default:
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, fmt.Sprintf("unsupported export format %q", format))
	}

	q, ok, err := h.load(c)
	if !ok {
		return err
	}
	var buf bytes.Buffer
	if err := write(&buf, q); err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}
	c.Attachment(fmt.Sprintf("quiz-%d.%s", time.Now().Unix(), ext))
	return c.Send(buf.Bytes())
}

func (h *handler) HandleShare(c fiber.Ctx) error {
	q, ok, err := h.load(c)
	if !ok {
		return err
	}
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: "share link created",
		Data: shareResponse{
			QuizID: q.ID,
			URL:    strings.TrimRight(h.publicURL, "/") + "/quiz/" + q.ID,
		},
	})
}
