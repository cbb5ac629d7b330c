package steps

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

func (fc *FeatureContext) iSubmitThePayload(payload *godog.DocString) error {
	resp, err := fc.apiDriver.Submit([]byte(payload.Content))
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) aSubmissionExistsFor(formType, fullName string) error {
	form, err := fc.apiDriver.GetForm(formType)
	fc.require.NoError(err)
	defer form.Body.Close()

	var structure struct {
		ID string `json:"id"`
	}
	fc.require.NoError(fc.decodeBody(form.Body, &structure))

	body, err := json.Marshal(map[string]any{
		"templateId": structure.ID,
		"type":       formType,
		"data":       map[string]any{"fullName": fullName},
	})
	fc.require.NoError(err)

	resp, err := fc.apiDriver.Submit(body)
	fc.require.NoError(err)
	defer resp.Body.Close()
	fc.require.Equal(201, resp.StatusCode)

	var created map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &created))
	fc.submissionID = fmt.Sprint(created["id"])
	return nil
}

func (fc *FeatureContext) theResponseShouldContainTheSubmissionDetails() error {
	var data map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
	fc.require.NotEmpty(data["publicId"])
	fc.require.NotEmpty(data["createdAt"])
	fc.require.NotNil(data["data"])
	fc.submissionID = fmt.Sprint(data["id"])
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theSubmissionShouldHaveStatusAndType(status, formType string) error {
	fc.require.Equal(status, fc.responseData["status"])
	fc.require.Equal(formType, fc.responseData["type"])
	return nil
}

func (fc *FeatureContext) iListTheSubmissions() error {
	return fc.iListTheTypedSubmissions("")
}

func (fc *FeatureContext) iListTheTypedSubmissions(formType string) error {
	resp, err := fc.apiDriver.ListSubmissions(formType)
	fc.require.NoError(err)
	fc.response = resp

	var body struct {
		Columns []string         `json:"columns"`
		Data    []map[string]any `json:"data"`
	}
	fc.require.NoError(fc.decodeBody(resp.Body, &body))
	fc.require.NotEmpty(body.Columns)
	fc.responseListData = body.Data
	return nil
}

func (fc *FeatureContext) everySubmissionShouldHaveType(formType string) error {
	fc.require.NotEmpty(fc.responseListData)
	for _, row := range fc.responseListData {
		fc.require.Equal(formType, row["type"])
	}
	return nil
}

func (fc *FeatureContext) theListShouldContainOurSubmission() error {
	for _, row := range fc.responseListData {
		if row["id"] == fc.submissionID {
			return nil
		}
	}
	fc.require.Failf("submission not listed", "no row with id %s", fc.submissionID)
	return nil
}

func (fc *FeatureContext) iGetTheSubmissionColumns() error {
	resp, err := fc.apiDriver.Columns()
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theColumnsShouldBe(columns string) error {
	var body struct {
		Columns []string `json:"columns"`
	}
	fc.require.NoError(fc.decodeBody(fc.response.Body, &body))
	fc.require.Equal(strings.Split(columns, ","), body.Columns)
	return nil
}

func (fc *FeatureContext) iRequestTheSubmissionsTableFilteredBy(filter string) error {
	return fc.requestTable(url.Values{"filter": {filter}})
}

func (fc *FeatureContext) iRequestTheSubmissionsTableHiding(columns string) error {
	return fc.requestTable(url.Values{"hidden": {columns}})
}

func (fc *FeatureContext) requestTable(query url.Values) error {
	resp, err := fc.apiDriver.Table(query)
	fc.require.NoError(err)
	fc.response = resp
	fc.require.Equal(200, resp.StatusCode)

	var table struct {
		Columns []map[string]any `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	if _, err := fc.decodePaginatedResponse(resp, &table); err != nil {
		return err
	}
	fc.responseListData = table.Rows
	fc.responseData = map[string]any{"columns": table.Columns}
	return nil
}

func (fc *FeatureContext) theTableShouldContainRows(count int) error {
	fc.require.Len(fc.responseListData, count)
	return nil
}

func (fc *FeatureContext) theTableShouldNotShowTheColumn(column string) error {
	columns, _ := fc.responseData["columns"].([]map[string]any)
	for _, c := range columns {
		fc.require.NotEqual(column, c["id"])
	}
	return nil
}
