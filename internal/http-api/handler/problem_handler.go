package handler

import (
	"errors"
	"net/http"

	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProblemHandler struct {
	problemService service.ProblemService
}

func NewProblemHandler(problemService service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

func (h *ProblemHandler) Detail(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusFound, "/problem")
		return
	}
	problem, err := h.problemService.GetProblem(c.Request.Context(), id)
	if errors.Is(err, service.ErrProblemNotFound) {
		c.Redirect(http.StatusFound, "/problem")
		return
	}
	if err != nil {
		serverError(c, err, "load problem")
		return
	}
	render(c, http.StatusOK, "problem_detail.html", "Problem", gin.H{"problem": problem})
}
