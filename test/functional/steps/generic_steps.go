package steps

import (
	"time"
)

func (fc *FeatureContext) waitForDuration(duration string) error {
	d, err := time.ParseDuration(duration)
	if err != nil {
		return err
	}

	time.Sleep(d)
	return nil
}

func (fc *FeatureContext) iCheckTheServerHealth() error {
	resp, err := fc.apiDriver.GetHealthz()
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.Equal(code, fc.response.StatusCode, "Unexpected status code")
	return nil
}

func (fc *FeatureContext) theErrorMessageShouldBe(message string) error {
	var data map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
	fc.require.Equal(message, data["message"])
	return nil
}
