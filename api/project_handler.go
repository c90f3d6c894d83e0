package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-aoi-backend/database"
	"github.com/rpupo63/project-aoi-backend/errs"
	"github.com/rpupo63/project-aoi-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newProjectHandler() projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// projectRepo returns the repository bound to this request's session
func (h projectHandler) projectRepo(r *http.Request) (*database.ProjectRepo, error) {
	session, err := ctxGetSession(r.Context())
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("no database session", err)
	}
	return session.ProjectRepo(), nil
}

// listAllProjects retrieves every project
// @Summary List all projects
// @Tags Projects
// @Produce json
// @Success 200 {object} models.ProjectsPublic "All projects"
// @Failure 404 {object} ErrorResponse "No projects found"
// @Router /project/list/all [get]
func (h projectHandler) listAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := repo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		// An empty store is reported as 404, not as an empty list
		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("No projects found"))
			return
		}

		h.responder.WriteJSON(w, models.ProjectsPublic{Data: projects})
	}
}

// listProjectsByName retrieves every project with exactly the given name
// @Summary List projects by name
// @Tags Projects
// @Produce json
// @Param name path string true "Exact project name"
// @Success 200 {object} models.ProjectsPublic "Matching projects"
// @Failure 404 {object} ErrorResponse "No project has that name"
// @Router /project/list/{name} [get]
func (h projectHandler) listProjectsByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := urlParam(r, "name")

		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := repo.FindByName(name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Projects with name '%s' not found", name)))
			return
		}

		h.responder.WriteJSON(w, models.ProjectsPublic{Data: projects})
	}
}

// readProject retrieves a project by id
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 422 {object} ErrorResponse "Invalid project_id"
// @Router /project/read/{project_id} [get]
func (h projectHandler) readProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := repo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(fmt.Sprintf("Project of id '%s' not found", projectID)))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.ProjectCreate true "Project data"
// @Success 200 {object} models.Project "Created project"
// @Failure 422 {object} ErrorResponse "Invalid project data"
// @Router /project/create [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectCreate, err := models.DecodeProjectCreate(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := repo.Add(projectCreate)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ProjectID.String()).Msg("project created")
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID" format(uuid)
// @Param project body models.ProjectUpdate true "Fields to change"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "No data to update"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 422 {object} ErrorResponse "Invalid project data"
// @Router /project/update/{project_id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch, err := models.DecodeProjectUpdate(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists
		existingProject, err := repo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		updatedProject, err := repo.Update(existingProject, patch)
		if errors.Is(err, errs.ErrNoChanges) {
			h.responder.WriteError(w, errs.NewNoChangesError())
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by id
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID" format(uuid)
// @Success 200 {object} models.Message "Project deleted"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 422 {object} ErrorResponse "Invalid project_id"
// @Router /project/delete/{project_id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		repo, err := h.projectRepo(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists
		existingProject, err := repo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		if err := repo.Delete(existingProject); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("projectID", projectID.String()).Msg("project deleted")
		h.responder.WriteJSON(w, models.Message{Message: "Project deleted"})
	}
}
