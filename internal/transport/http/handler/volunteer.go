package handler

import (
	"errors"
	"log/slog"
	"net/http"

	appvolunteer "github.com/astro-web3/volunteer-management/internal/app/volunteer"
	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/gin-gonic/gin"
)

type VolunteerHandler struct {
	commandService *appvolunteer.CommandService
	queryService   *appvolunteer.QueryService
}

func NewVolunteerHandler(
	commandService *appvolunteer.CommandService,
	queryService *appvolunteer.QueryService,
) *VolunteerHandler {
	return &VolunteerHandler{
		commandService: commandService,
		queryService:   queryService,
	}
}

type searchParams struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Size   int    `form:"size"`
}

func (h *VolunteerHandler) ListPosts(c *gin.Context) {
	posts, err := h.queryService.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(posts))
}

func (h *VolunteerHandler) GetPost(c *gin.Context) {
	post, err := h.queryService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *VolunteerHandler) CreatePost(c *gin.Context) {
	var post volunteer.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.commandService.CreatePost(c.Request.Context(), &post)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdatePost changes only the fields present in the body.
func (h *VolunteerHandler) UpdatePost(c *gin.Context) {
	var patch volunteer.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.commandService.UpdatePost(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *VolunteerHandler) DeletePost(c *gin.Context) {
	result, err := h.commandService.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListPostsByOrganizer serves an owner-scoped route; the guard has already matched :email.
func (h *VolunteerHandler) ListPostsByOrganizer(c *gin.Context) {
	posts, err := h.queryService.ListPostsByOrganizer(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(posts))
}

func (h *VolunteerHandler) SearchPosts(c *gin.Context) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page and size must be integers"})
		return
	}

	posts, err := h.queryService.SearchPosts(c.Request.Context(), volunteer.SearchQuery{
		Search: params.Search,
		Page:   params.Page,
		Size:   params.Size,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(posts))
}

func (h *VolunteerHandler) CountPosts(c *gin.Context) {
	n, err := h.queryService.CountPosts(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pageNum": n})
}

func (h *VolunteerHandler) ListRegistrations(c *gin.Context) {
	regs, err := h.queryService.ListRegistrations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(regs))
}

func (h *VolunteerHandler) ListRegistrationsByOrganizer(c *gin.Context) {
	regs, err := h.queryService.ListRegistrationsByOrganizer(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(regs))
}

func (h *VolunteerHandler) ListRegistrationsByVolunteer(c *gin.Context) {
	regs, err := h.queryService.ListRegistrationsByVolunteer(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(regs))
}

func (h *VolunteerHandler) Register(c *gin.Context) {
	var reg volunteer.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.commandService.Register(c.Request.Context(), c.Query("id"), &reg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *VolunteerHandler) DeleteRegistration(c *gin.Context) {
	result, err := h.commandService.DeleteRegistration(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, volunteer.ErrVolunteerCountNotUpdated):
		// Partial write, already logged with both ids where it happened.
		c.JSON(http.StatusInternalServerError, gin.H{"message": volunteer.ErrVolunteerCountNotUpdated.Error()})
	case errors.Is(err, volunteer.ErrInvalidID), errors.Is(err, volunteer.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, volunteer.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		logger.ErrorContext(c.Request.Context(), "volunteer request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
