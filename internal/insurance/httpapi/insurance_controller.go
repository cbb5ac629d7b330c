package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"insurance-server/internal/infra/httpserver"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/httpapi/internal"
	"insurance-server/internal/insurance/usecases"

	"go.opentelemetry.io/otel/attribute"
)

const (
	formNotFoundMessage     = "Form template with type %s not found"
	templateNotFoundMessage = "Form template %d not found"
	listFormsErrMessage     = "failed to list forms"
	getFormErrMessage       = "failed to get form"
	submitErrMessage        = "failed to submit form"
	listSubmissionsMessage  = "failed to list submissions"
	countErrMessage         = "failed to count templates"
	invalidBodyMessage      = "invalid request body"
)

func NewInsuranceController(
	forms usecases.FormService,
	submissions usecases.SubmissionService,
	options domain.OptionLoader,
) *InsuranceController {
	return &InsuranceController{
		forms:       forms,
		submissions: submissions,
		options:     options,
	}
}

var _ httpserver.Controller = (*InsuranceController)(nil)

type InsuranceController struct {
	forms       usecases.FormService
	submissions usecases.SubmissionService
	options     domain.OptionLoader
}

func (c *InsuranceController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /api/insurance/forms", c.listForms())
	router.Handle("GET /api/insurance/forms/submissions", c.listSubmissions())
	router.Handle("GET /api/insurance/forms/{type}", c.getForm())
	router.Handle("POST /api/insurance/forms/submit", c.submit())
	router.Handle("POST /api/insurance/forms/{type}/render", c.render())
	router.Handle("POST /api/insurance/forms/{type}/validate", c.validate())
	router.Handle("GET /api/insurance/columns", c.columns())
	router.Handle("GET /api/insurance/test", c.templateCount())
	router.Handle("GET /api/insurance/submissions/table", c.table())
}

func (c *InsuranceController) listForms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := c.forms.AllForms(r.Context())
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listFormsErrMessage)
			return
		}

		if forms == nil {
			forms = []domain.FormStructure{}
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, forms)
	}
}

func (c *InsuranceController) getForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := c.lookupForm(w, r)
		if !ok {
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, form)
	}
}

// lookupForm replies on its own when the form cannot be served.
func (c *InsuranceController) lookupForm(w http.ResponseWriter, r *http.Request) (domain.FormStructure, bool) {
	formType := r.PathValue("type")
	httpserver.GetSpanFromContext(r).SetAttributes(attribute.String("form.type", formType))

	form, err := c.forms.FormByType(r.Context(), formType)
	if errors.Is(err, usecases.ErrTemplateNotFound) {
		httpserver.ReplyWithError(w, http.StatusNotFound, fmt.Sprintf(formNotFoundMessage, formType))
		return domain.FormStructure{}, false
	}
	if err != nil {
		httpserver.ReplyWithError(w, http.StatusInternalServerError, getFormErrMessage)
		return domain.FormStructure{}, false
	}
	return form, true
}

func (c *InsuranceController) listSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := c.submissions.List(r.Context(), httpserver.GetQueryParam(r, "type"))
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listSubmissionsMessage)
			return
		}

		if rows == nil {
			rows = []domain.Row{}
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.SubmissionsResponse{
			Columns: c.submissions.Columns(),
			Data:    rows,
		})
	}
}

func (c *InsuranceController) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.SubmitRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyMessage)
			return
		}

		cmd, err := body.ToCommand()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		submission, err := c.submissions.Submit(r.Context(), cmd)
		switch {
		case errors.Is(err, usecases.ErrTemplateNotFound):
			httpserver.ReplyWithError(w, http.StatusNotFound, fmt.Sprintf(templateNotFoundMessage, cmd.TemplateID))
			return
		case errors.Is(err, domain.ErrEmptyData):
			httpserver.ReplyWithError(w, http.StatusBadRequest, internal.ErrInvalidData.Error())
			return
		case err != nil:
			slog.Error("submitting form",
				slog.Int64("template_id", cmd.TemplateID),
				slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, submitErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromSubmission(submission))
	}
}

// render answers with the visible part of the form for the given values.
// Every provided value counts as touched so its errors are shown.
func (c *InsuranceController) render() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := c.session(w, r)
		if !ok {
			return
		}

		if c.options != nil {
			session.MountOptions(r.Context(), c.options)
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, session.Render())
	}
}

func (c *InsuranceController) validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := c.session(w, r)
		if !ok {
			return
		}

		violations := session.Validate()
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ValidateResponse{
			Valid:  len(violations) == 0,
			Errors: violations,
		})
	}
}

func (c *InsuranceController) session(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	var body internal.RenderRequest
	if err := httpserver.DecodeJSONBody(r, &body); err != nil && !errors.Is(err, httpserver.ErrEmptyBody) {
		httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyMessage)
		return nil, false
	}

	form, ok := c.lookupForm(w, r)
	if !ok {
		return nil, false
	}

	session := domain.NewSession(form, nil)
	for id, value := range body.Values {
		if _, err := session.OnChange(id, value); err != nil {
			slog.Debug("ignoring value of unknown field", slog.String("field", id))
		}
	}
	return session, true
}

func (c *InsuranceController) columns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ColumnsResponse{Columns: c.submissions.Columns()})
	}
}

func (c *InsuranceController) templateCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := c.forms.TemplateCount(r.Context())
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, countErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.CountResponse{Count: count})
	}
}

// table serves the submissions listing: filter, sortBy and order drive the
// projection, hidden lists columns to leave out, page and limit paginate.
func (c *InsuranceController) table() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := c.submissions.List(r.Context(), httpserver.GetQueryParam(r, "type"))
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listSubmissionsMessage)
			return
		}

		state := domain.NewColumnState(domain.DeriveColumns(c.submissions.Columns()))
		state.Hide(httpserver.GetQueryParamList(r, "hidden")...)
		columns := state.Columns()

		projected := domain.Project(rows, columns, strings.TrimSpace(httpserver.GetQueryParam(r, "filter")), domain.Sort{
			Column:    httpserver.GetQueryParam(r, "sortBy"),
			Direction: domain.ParseDirection(httpserver.GetQueryParam(r, "order")),
		})

		params := httpserver.ExtractPaginationParams(r)
		start := min(max(params.Offset(), 0), len(projected))
		end := min(start+params.Limit, len(projected))

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.TablePage{
			Columns: state.Visible(),
			Rows:    projected[start:end],
		}, len(projected), params)
	}
}
