package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/errs"
	"github.com/folio-labs/portfolio-backend/models"
)

// publicCacheControl is the cache policy for the public project list:
// content changes rarely, so responses stay valid for one hour.
const publicCacheControl = "public, max-age=3600"

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

type projectRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Problem      string   `json:"problem"`
	Process      string   `json:"process"`
	Impact       string   `json:"impact"`
	Results      string   `json:"results"`
	Technologies []string `json:"technologies"`
	LiveDemoURL  *string  `json:"live_demo_url"`
	GithubURL    *string  `json:"github_url"`
	DisplayOrder int      `json:"display_order"`
	IsPublished  bool     `json:"is_published"`
	IsFeatured   bool     `json:"is_featured"`
}

func (req projectRequest) validate() error {
	var c fieldCollector
	c.requireLength("title", req.Title, 1, 255)
	c.requireLength("description", req.Description, 1, 10000)
	return c.err()
}

// resolvedSlug returns the explicit slug when given, otherwise one derived
// from the title.
func (req projectRequest) resolvedSlug() string {
	if req.Slug != "" {
		return slug.Make(req.Slug)
	}
	return slug.Make(req.Title)
}

func (req projectRequest) apply(project *models.Project) {
	project.Title = req.Title
	project.Description = req.Description
	project.Problem = req.Problem
	project.Process = req.Process
	project.Impact = req.Impact
	project.Results = req.Results
	project.Technologies = req.Technologies
	project.LiveDemoURL = req.LiveDemoURL
	project.GithubURL = req.GithubURL
	project.DisplayOrder = req.DisplayOrder
	project.IsPublished = req.IsPublished
	project.IsFeatured = req.IsFeatured
}

// listPublishedProjects serves the public project list: published rows
// only, display_order ascending, cacheable for an hour.
func (h projectHandler) listPublishedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindPublished()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list published", "projects", err))
			return
		}

		w.Header().Set("Cache-Control", publicCacheControl)
		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// listFeaturedProjects serves the subset of published projects flagged for
// the frontend's highlight section, with the same caching policy as the
// full list.
func (h projectHandler) listFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindFeatured()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list featured", "projects", err))
			return
		}

		w.Header().Set("Cache-Control", publicCacheControl)
		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// getPublishedProject serves one published project by slug. Unpublished
// rows are indistinguishable from missing ones.
func (h projectHandler) getPublishedProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectSlug := chi.URLParam(r, "slug")
		if projectSlug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlug(projectSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if !project.IsPublished {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		w.Header().Set("Cache-Control", publicCacheControl)
		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// listProjects returns every project, published or not, for the admin UI
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// getProject returns a single project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// createProject creates a new project. The slug is derived from the title
// (or taken verbatim when provided) and must be unique; collisions are
// rejected with a conflict.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectSlug := req.resolvedSlug()
		taken, err := h.projectRepo.SlugTaken(projectSlug, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("check slug for", "project", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewConflictError("a project with slug '"+projectSlug+"' already exists"))
			return
		}

		var project models.Project
		req.apply(&project)
		project.Slug = projectSlug

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "project", err))
			return
		}

		adminID, _ := ctxGetUserID(r.Context())
		h.logger.Info().
			Str("projectID", project.ID.String()).
			Str("slug", project.Slug).
			Str("adminID", adminID).
			Msg("Project created")
		h.responder.WriteJSON(w, http.StatusCreated, project)
	}
}

// updateProject replaces an existing project's fields. A title change
// re-derives the slug unless an explicit slug is sent; uniqueness is
// enforced against every other project, including soft-deleted ones.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}

		var req projectRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectSlug := req.resolvedSlug()
		if projectSlug != project.Slug {
			taken, err := h.projectRepo.SlugTaken(projectSlug, projectID)
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("check slug for", "project", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError("a project with slug '"+projectSlug+"' already exists"))
				return
			}
		}

		req.apply(project)
		project.Slug = projectSlug

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// deleteProject soft-deletes a project; the row survives with its slug
// still reserved.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("project"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("projectID", projectID.String()).Msg("Project deleted")
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "project deleted successfully",
		})
	}
}
