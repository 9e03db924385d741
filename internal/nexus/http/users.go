package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /api/users
//
//	@Summary		Create user
//	@Tags			Users
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.CreateUserRequest	true	"role is Admin, Project Lead or Developer"
//	@Success		201		{object}	nexusapi.CreateUserResponse
//	@Failure		400		{object}	nexusapi.ErrorResponse	"Invalid username, password or role"
//	@Failure		403		{object}	nexusapi.ErrorResponse	"Admin only"
//	@Failure		409		{object}	nexusapi.ErrorResponse	"username_taken"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req nexusapi.CreateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.Create(r.Context(), req.Username, req.Password, role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, nexusapi.CreateUserResponse{
		Message: "User created",
		User:    toUser(u),
	})
}

// HandleList handles GET /api/users
//
//	@Summary		List users
//	@Tags			Users
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{array}		nexusapi.User
//	@Failure		403	{object}	nexusapi.ErrorResponse	"Admin only"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, toUser))
}
