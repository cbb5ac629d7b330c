package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"insurance-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// PaginatedResponse is the envelope of paginated listings.
type PaginatedResponse[T any] struct {
	Data       T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type FeatureContext struct {
	apiDriver        *driver.APIDriver
	response         *http.Response
	responseData     map[string]any
	responseListData []map[string]any
	formType         string
	values           map[string]any
	submissionID     string
	require          *require.Assertions
	t                godog.TestingT
}

func NewFeatureContext(baseURL string) *FeatureContext {
	return &FeatureContext{
		apiDriver: driver.NewAPIDriver(baseURL),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.When(`^I check the server health$`, fc.iCheckTheServerHealth)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the error message should be "([^"]*)"$`, fc.theErrorMessageShouldBe)

	// Form steps
	ctx.When(`^I list all forms$`, fc.iListAllForms)
	ctx.Then(`^the list should contain the form "([^"]*)"$`, fc.theListShouldContainTheForm)
	ctx.When(`^I get the form "([^"]*)"$`, fc.iGetTheForm)
	ctx.Then(`^the form should have title "([^"]*)"$`, fc.theFormShouldHaveTitle)
	ctx.Then(`^the form should have (\d+) sections$`, fc.theFormShouldHaveSections)
	ctx.Then(`^section (\d+) should be titled "([^"]*)"$`, fc.sectionShouldBeTitled)
	ctx.When(`^I count the templates$`, fc.iCountTheTemplates)
	ctx.Then(`^the template count should be (\d+)$`, fc.theTemplateCountShouldBe)

	// Rendering steps
	ctx.Given(`^I am filling the form "([^"]*)"$`, fc.iAmFillingTheForm)
	ctx.Given(`^I answer "([^"]*)" with "([^"]*)"$`, fc.iAnswerWith)
	ctx.Given(`^I answer "([^"]*)" with the number (\d+)$`, fc.iAnswerWithTheNumber)
	ctx.When(`^I render the form$`, fc.iRenderTheForm)
	ctx.Then(`^the field "([^"]*)" should be visible$`, fc.theFieldShouldBeVisible)
	ctx.Then(`^the field "([^"]*)" should be hidden$`, fc.theFieldShouldBeHidden)
	ctx.When(`^I validate the form$`, fc.iValidateTheForm)
	ctx.Then(`^the form should be valid$`, fc.theFormShouldBeValid)
	ctx.Then(`^the field "([^"]*)" should have the error "([^"]*)"$`, fc.theFieldShouldHaveTheError)
	ctx.Then(`^the field "([^"]*)" should have no error$`, fc.theFieldShouldHaveNoError)

	// Submission steps
	ctx.When(`^I submit the payload:$`, fc.iSubmitThePayload)
	ctx.Given(`^a "([^"]*)" submission exists for "([^"]*)"$`, fc.aSubmissionExistsFor)
	ctx.Then(`^the response should contain the submission details$`, fc.theResponseShouldContainTheSubmissionDetails)
	ctx.Then(`^the submission should have status "([^"]*)" and type "([^"]*)"$`, fc.theSubmissionShouldHaveStatusAndType)
	ctx.When(`^I list the submissions$`, fc.iListTheSubmissions)
	ctx.When(`^I list the "([^"]*)" submissions$`, fc.iListTheTypedSubmissions)
	ctx.Then(`^every submission should have type "([^"]*)"$`, fc.everySubmissionShouldHaveType)
	ctx.Then(`^the list should contain our submission$`, fc.theListShouldContainOurSubmission)
	ctx.When(`^I get the submission columns$`, fc.iGetTheSubmissionColumns)
	ctx.Then(`^the columns should be "([^"]*)"$`, fc.theColumnsShouldBe)
	ctx.When(`^I request the submissions table filtered by "([^"]*)"$`, fc.iRequestTheSubmissionsTableFilteredBy)
	ctx.When(`^I request the submissions table hiding "([^"]*)"$`, fc.iRequestTheSubmissionsTableHiding)
	ctx.Then(`^the table should contain (\d+) rows?$`, fc.theTableShouldContainRows)
	ctx.Then(`^the table should not show the column "([^"]*)"$`, fc.theTableShouldNotShowTheColumn)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.response != nil {
			fc.response.Body.Close()
		}
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
	fc.responseListData = nil
	fc.formType = ""
	fc.values = map[string]any{}
	fc.submissionID = ""
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	return json.NewDecoder(body).Decode(target)
}

func (fc *FeatureContext) decodePaginatedResponse(resp *http.Response, target any) (PaginatedResponse[json.RawMessage], error) {
	var page PaginatedResponse[json.RawMessage]
	if err := fc.decodeBody(resp.Body, &page); err != nil {
		return page, fmt.Errorf("failed to decode paginated response: %w", err)
	}
	if err := json.Unmarshal(page.Data, target); err != nil {
		return page, fmt.Errorf("failed to decode page data: %w", err)
	}
	return page, nil
}
