package http

import (
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
)

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /api/projects
//
//	@Summary		Create project
//	@Tags			Projects
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.CreateProjectRequest	true	"Project"
//	@Success		201		{object}	nexusapi.CreateProjectResponse
//	@Failure		400		{object}	nexusapi.ErrorResponse	"Missing name"
//	@Failure		403		{object}	nexusapi.ErrorResponse	"Admin only"
//	@Router			/api/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req nexusapi.CreateProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProjectService.Create(r.Context(), req.Name, req.Description, req.Deadline)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, nexusapi.CreateProjectResponse{Message: "Project created", ID: p.ID})
}

// HandleList handles GET /api/projects
//
//	@Summary		List projects
//	@Description	Admins see every project; everyone else sees the projects they are assigned to.
//	@Tags			Projects
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{array}		nexusapi.Project
//	@Failure		401	{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Router			/api/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ProjectService.ListFor(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(projects, toProject))
}

// HandleComplete handles PATCH /api/projects/{id}/complete
//
//	@Summary		Mark project completed
//	@Tags			Projects
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	nexusapi.MessageResponse
//	@Failure		403	{object}	nexusapi.ErrorResponse	"Admin only"
//	@Failure		404	{object}	nexusapi.ErrorResponse	"No such project"
//	@Router			/api/projects/{id}/complete [patch].
func (h *ProjectsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProjectService.Complete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "Project completed"})
}

// HandleAssign handles POST /api/projects/{id}/assign
//
//	@Summary		Assign user to project
//	@Tags			Projects
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project ID"
//	@Param			request	body		nexusapi.AssignRequest	true	"Assignment"
//	@Success		200		{object}	nexusapi.MessageResponse
//	@Failure		400		{object}	nexusapi.ErrorResponse	"Missing user_id"
//	@Failure		403		{object}	nexusapi.ErrorResponse	"Admin or Project Lead only"
//	@Failure		404		{object}	nexusapi.ErrorResponse	"No such project or user"
//	@Failure		409		{object}	nexusapi.ErrorResponse	"already_assigned"
//	@Router			/api/projects/{id}/assign [post].
func (h *ProjectsHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req nexusapi.AssignRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ProjectService.Assign(r.Context(), r.PathValue("id"), req.UserID, req.RoleInProject); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "User assigned"})
}

// HandleTeam handles GET /api/projects/{id}/team
//
//	@Summary		Project team
//	@Tags			Projects
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{array}		nexusapi.TeamMember
//	@Failure		403	{object}	nexusapi.ErrorResponse	"Not assigned to project"
//	@Failure		404	{object}	nexusapi.ErrorResponse	"No such project"
//	@Router			/api/projects/{id}/team [get].
func (h *ProjectsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.ProjectService.Team(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(team, toTeamMember))
}
