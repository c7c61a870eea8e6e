package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/portfolio-backend/errs"
	"github.com/folio-labs/portfolio-backend/models"
)

func validProjectBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  "A detailed case study of the work.",
		"problem":      "The client had no online presence.",
		"process":      "Designed and built a custom site.",
		"impact":       "Traffic doubled within a month.",
		"results":      "The client now books work through the site.",
		"technologies": []string{"Go", "PostgreSQL", "React"},
		"is_published": true,
	}
}

func seedProject(t *testing.T, app *testApp, title, slug string, published bool, order int) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:        title,
		Slug:         slug,
		Description:  "A case study.",
		DisplayOrder: order,
		IsPublished:  published,
	}
	require.NoError(t, app.db.ProjectRepo().Add(project))
	return project
}

func TestPublicProjectListOnlyPublished(t *testing.T) {
	app := newTestApp(t)

	seedProject(t, app, "Draft", "draft", false, 0)
	seedProject(t, app, "Second", "second", true, 2)
	seedProject(t, app, "First", "first", true, 1)

	rec := app.request(t, http.MethodGet, "/api/v1/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	var projects []models.Project
	decodeData(t, rec, &projects)
	require.Len(t, projects, 2)
	assert.Equal(t, "First", projects[0].Title)
	assert.Equal(t, "Second", projects[1].Title)
}

func TestFeaturedProjectList(t *testing.T) {
	app := newTestApp(t)

	seedProject(t, app, "Plain", "plain", true, 0)

	highlight := &models.Project{
		Title:        "Highlight",
		Slug:         "highlight",
		Description:  "A case study.",
		DisplayOrder: 1,
		IsPublished:  true,
		IsFeatured:   true,
	}
	require.NoError(t, app.db.ProjectRepo().Add(highlight))

	hiddenGem := &models.Project{
		Title:       "Hidden Gem",
		Slug:        "hidden-gem",
		Description: "A case study.",
		IsFeatured:  true,
	}
	require.NoError(t, app.db.ProjectRepo().Add(hiddenGem))

	rec := app.request(t, http.MethodGet, "/api/v1/projects/featured", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	var projects []models.Project
	decodeData(t, rec, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Highlight", projects[0].Title)
}

func TestGetPublishedProjectBySlug(t *testing.T) {
	app := newTestApp(t)

	project := seedProject(t, app, "Visible", "visible", true, 0)
	seedProject(t, app, "Hidden", "hidden", false, 0)

	rec := app.request(t, http.MethodGet, "/api/v1/projects/visible", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	var got models.Project
	decodeData(t, rec, &got)
	assert.Equal(t, project.ID, got.ID)

	// an unpublished project looks exactly like a missing one
	rec = app.request(t, http.MethodGet, "/api/v1/projects/hidden", nil, "")
	requireErrorCode(t, rec, http.StatusNotFound, errs.CodeNotFound)

	rec = app.request(t, http.MethodGet, "/api/v1/projects/missing", nil, "")
	requireErrorCode(t, rec, http.StatusNotFound, errs.CodeNotFound)
}

func TestAdminProjectRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/v1/admin/projects", nil, "")
	requireErrorCode(t, rec, http.StatusUnauthorized, errs.CodeUnauthorized)

	rec = app.request(t, http.MethodPost, "/api/v1/admin/projects", validProjectBody("X"), "")
	requireErrorCode(t, rec, http.StatusUnauthorized, errs.CodeUnauthorized)
}

func TestAdminListIncludesDrafts(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	seedProject(t, app, "Draft", "draft", false, 0)
	seedProject(t, app, "Live", "live", true, 0)

	rec := app.request(t, http.MethodGet, "/api/v1/admin/projects", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var projects []models.Project
	decodeData(t, rec, &projects)
	assert.Len(t, projects, 2)
}

func TestCreateProjectDerivesSlug(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	rec := app.request(t, http.MethodPost, "/api/v1/admin/projects", validProjectBody("My Cool App"), token)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var created models.Project
	decodeData(t, rec, &created)
	assert.Equal(t, "my-cool-app", created.Slug)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, []string{"Go", "PostgreSQL", "React"}, []string(created.Technologies))
}

func TestCreateProjectExplicitSlug(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	body := validProjectBody("Some Title")
	body["slug"] = "Custom Slug Here"

	rec := app.request(t, http.MethodPost, "/api/v1/admin/projects", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Project
	decodeData(t, rec, &created)
	assert.Equal(t, "custom-slug-here", created.Slug)
}

func TestCreateProjectSlugConflict(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	rec := app.request(t, http.MethodPost, "/api/v1/admin/projects", validProjectBody("Same Name"), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/v1/admin/projects", validProjectBody("Same Name"), token)
	requireErrorCode(t, rec, http.StatusConflict, errs.CodeConflict)
}

func TestCreateProjectValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	rec := app.request(t, http.MethodPost, "/api/v1/admin/projects",
		map[string]any{"title": "", "description": ""}, token)
	requireErrorCode(t, rec, http.StatusUnprocessableEntity, errs.CodeValidationError)
}

func TestUpdateProject(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	project := seedProject(t, app, "Old Name", "old-name", false, 0)

	body := validProjectBody("New Name")
	rec := app.request(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID.String(), body, token)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var updated models.Project
	decodeData(t, rec, &updated)
	assert.Equal(t, "New Name", updated.Title)
	assert.Equal(t, "new-name", updated.Slug)
	assert.True(t, updated.IsPublished)
}

func TestUpdateProjectSlugConflict(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	seedProject(t, app, "Taken", "taken", true, 0)
	project := seedProject(t, app, "Mine", "mine", true, 0)

	rec := app.request(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID.String(),
		validProjectBody("Taken"), token)
	requireErrorCode(t, rec, http.StatusConflict, errs.CodeConflict)
}

func TestUpdateProjectKeepingOwnSlug(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	project := seedProject(t, app, "Stable", "stable", true, 0)

	// same title resolves to the project's own slug, which is not a conflict
	rec := app.request(t, http.MethodPut, "/api/v1/admin/projects/"+project.ID.String(),
		validProjectBody("Stable"), token)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestUpdateProjectNotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	rec := app.request(t, http.MethodPut, "/api/v1/admin/projects/"+uuid.NewString(),
		validProjectBody("Whatever"), token)
	requireErrorCode(t, rec, http.StatusNotFound, errs.CodeNotFound)
}

func TestDeleteProjectIsSoft(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	project := seedProject(t, app, "Doomed", "doomed", true, 0)

	rec := app.request(t, http.MethodDelete, "/api/v1/admin/projects/"+project.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, "/api/v1/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []models.Project
	decodeData(t, rec, &projects)
	assert.Empty(t, projects)

	// the slug stays reserved by the soft-deleted row
	rec = app.request(t, http.MethodPost, "/api/v1/admin/projects", validProjectBody("Doomed"), token)
	requireErrorCode(t, rec, http.StatusConflict, errs.CodeConflict)

	rec = app.request(t, http.MethodDelete, "/api/v1/admin/projects/"+project.ID.String(), nil, token)
	requireErrorCode(t, rec, http.StatusNotFound, errs.CodeNotFound)
}
