package steps

import (
	"encoding/json"
)

func (fc *FeatureContext) iListAllForms() error {
	resp, err := fc.apiDriver.ListForms()
	fc.require.NoError(err)
	fc.response = resp

	var forms []map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &forms))
	fc.responseListData = forms
	return nil
}

func (fc *FeatureContext) theListShouldContainTheForm(formType string) error {
	for _, form := range fc.responseListData {
		if form["type"] == formType {
			return nil
		}
	}
	fc.require.Failf("form not listed", "no form of type %q in %d forms", formType, len(fc.responseListData))
	return nil
}

func (fc *FeatureContext) iGetTheForm(formType string) error {
	resp, err := fc.apiDriver.GetForm(formType)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) decodeForm() map[string]any {
	if fc.responseData == nil {
		var form map[string]any
		fc.require.NoError(fc.decodeBody(fc.response.Body, &form))
		fc.responseData = form
	}
	return fc.responseData
}

func (fc *FeatureContext) theFormShouldHaveTitle(title string) error {
	fc.require.Equal(title, fc.decodeForm()["title"])
	return nil
}

func (fc *FeatureContext) sections() []any {
	sections, ok := fc.decodeForm()["sections"].([]any)
	fc.require.True(ok, "form has no sections")
	return sections
}

func (fc *FeatureContext) theFormShouldHaveSections(count int) error {
	fc.require.Len(fc.sections(), count)
	return nil
}

func (fc *FeatureContext) sectionShouldBeTitled(position int, title string) error {
	sections := fc.sections()
	fc.require.GreaterOrEqual(len(sections), position)

	section, ok := sections[position-1].(map[string]any)
	fc.require.True(ok)
	fc.require.Equal(title, section["title"])
	return nil
}

func (fc *FeatureContext) iCountTheTemplates() error {
	resp, err := fc.apiDriver.TemplateCount()
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theTemplateCountShouldBe(count int) error {
	var body struct {
		Count int `json:"count"`
	}
	fc.require.NoError(fc.decodeBody(fc.response.Body, &body))
	fc.require.Equal(count, body.Count)
	return nil
}

func (fc *FeatureContext) iAmFillingTheForm(formType string) error {
	fc.formType = formType
	return nil
}

func (fc *FeatureContext) iAnswerWith(field, value string) error {
	fc.values[field] = value
	return nil
}

func (fc *FeatureContext) iAnswerWithTheNumber(field string, value int) error {
	fc.values[field] = value
	return nil
}

func (fc *FeatureContext) valuesBody() []byte {
	body, err := json.Marshal(map[string]any{"values": fc.values})
	fc.require.NoError(err)
	return body
}

func (fc *FeatureContext) iRenderTheForm() error {
	resp, err := fc.apiDriver.Render(fc.formType, fc.valuesBody())
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

// renderedFields collects the ids of every field in the rendered view,
// including fields nested in groups.
func (fc *FeatureContext) renderedFields() map[string]bool {
	form := fc.decodeForm()
	ids := map[string]bool{}

	var walk func(fields any)
	walk = func(fields any) {
		list, _ := fields.([]any)
		for _, raw := range list {
			field, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := field["id"].(string); ok {
				ids[id] = true
			}
			walk(field["fields"])
		}
	}

	walk(form["fields"])
	sections, _ := form["sections"].([]any)
	for _, raw := range sections {
		if section, ok := raw.(map[string]any); ok {
			walk(section["fields"])
		}
	}
	return ids
}

func (fc *FeatureContext) theFieldShouldBeVisible(field string) error {
	fc.require.True(fc.renderedFields()[field], "field %s is not rendered", field)
	return nil
}

func (fc *FeatureContext) theFieldShouldBeHidden(field string) error {
	fc.require.False(fc.renderedFields()[field], "field %s is rendered", field)
	return nil
}

func (fc *FeatureContext) iValidateTheForm() error {
	resp, err := fc.apiDriver.Validate(fc.formType, fc.valuesBody())
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theFormShouldBeValid() error {
	result := fc.decodeForm()
	fc.require.Equal(true, result["valid"], "violations: %v", result["errors"])
	return nil
}

func (fc *FeatureContext) theFieldShouldHaveTheError(field, message string) error {
	result := fc.decodeForm()
	fc.require.Equal(false, result["valid"])

	violations, ok := result["errors"].(map[string]any)
	fc.require.True(ok)
	fc.require.Equal(message, violations[field])
	return nil
}

func (fc *FeatureContext) theFieldShouldHaveNoError(field string) error {
	violations, _ := fc.decodeForm()["errors"].(map[string]any)
	fc.require.NotContains(violations, field)
	return nil
}
