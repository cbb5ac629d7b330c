package driver

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) BaseURL() string {
	return d.baseURL
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}

func (d *APIDriver) ListForms() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/api/insurance/forms", d.baseURL))
}

func (d *APIDriver) GetForm(formType string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/api/insurance/forms/%s", d.baseURL, url.PathEscape(formType)))
}

func (d *APIDriver) Submit(body []byte) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/api/insurance/forms/submit", d.baseURL), "application/json", bytes.NewReader(body))
}

func (d *APIDriver) ListSubmissions(formType string) (*http.Response, error) {
	target := fmt.Sprintf("%s/api/insurance/forms/submissions", d.baseURL)
	if formType != "" {
		target += "?type=" + url.QueryEscape(formType)
	}
	return d.client.Get(target)
}

func (d *APIDriver) Columns() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/api/insurance/columns", d.baseURL))
}

func (d *APIDriver) TemplateCount() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/api/insurance/test", d.baseURL))
}

func (d *APIDriver) Render(formType string, body []byte) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/api/insurance/forms/%s/render", d.baseURL, url.PathEscape(formType)), "application/json", bytes.NewReader(body))
}

func (d *APIDriver) Validate(formType string, body []byte) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/api/insurance/forms/%s/validate", d.baseURL, url.PathEscape(formType)), "application/json", bytes.NewReader(body))
}

func (d *APIDriver) Table(query url.Values) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/api/insurance/submissions/table?%s", d.baseURL, query.Encode()))
}
