package routes

import (
	"net/http"
	"strconv"

	"phonebook/internal/contracts"
	"phonebook/internal/domain/contact"
	appErrors "phonebook/internal/errors"
	"phonebook/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const totalCountHeader = "X-Total-Count"

func (h *Handler) CreateContact(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ContactRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	created, err := h.ContactService.Create(c.Request.Context(), userID, contactFields(body))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListContacts(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &contact.Filters{}
	if raw := c.Query("favorite"); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("favorite", "must be true or false"))
			return
		}
		filters.Favorite = &favorite
	}

	contacts, total, err := h.ContactService.List(c.Request.Context(), userID, filters, h.parsePagination(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header(totalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, owner, ok := h.contactScope(c)
	if !ok {
		return
	}

	found, err := h.ContactService.Get(c.Request.Context(), id, owner)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) ReplaceContact(c *gin.Context) {
	id, owner, ok := h.contactScope(c)
	if !ok {
		return
	}

	var body contracts.ContactRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	updated, err := h.ContactService.Replace(c.Request.Context(), id, owner, contactFields(body))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateFavorite(c *gin.Context) {
	id, owner, ok := h.contactScope(c)
	if !ok {
		return
	}

	var body contracts.FavoriteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err).WithMessage("missing field favorite"))
		return
	}

	updated, err := h.ContactService.SetFavorite(c.Request.Context(), id, owner, *body.Favorite)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, owner, ok := h.contactScope(c)
	if !ok {
		return
	}

	if err := h.ContactService.Delete(c.Request.Context(), id, owner); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Contact deleted"})
}

// contactScope resolves the caller and the :id path parameter. An id that does
// not parse cannot name any contact, so it answers 404 like a missing one.
func (h *Handler) contactScope(c *gin.Context) (id, owner ulid.ULID, ok bool) {
	owner, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return ulid.ULID{}, ulid.ULID{}, false
	}

	id, err = pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.ErrContactNotFound.WithError(err))
		return ulid.ULID{}, ulid.ULID{}, false
	}

	return id, owner, true
}

func contactFields(body contracts.ContactRequest) contact.Fields {
	fields := contact.Fields{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	}
	if body.Favorite != nil {
		fields.Favorite = *body.Favorite
	}
	return fields
}
