package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

func cliAnswersJSON() string {
	return `{
	  "businessType": "service",
	  "businessOffering": "Lawn care",
	  "revenue": "under100k",
	  "trackingSystem": "paper",
	  "followUpProcess": "no",
	  "leadSources": ["referrals"]
	}`
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewBufferString(stdin))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeFromFileTextOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(cliAnswersJSON()), 0o600))

	out, err := runCLI(t, "", "analyze", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Inadequate Tracking")
	assert.Contains(t, out, "Inconsistent Follow-Up")
	assert.Contains(t, out, "[High]")
}

func TestAnalyzeFromStdinJSONOutput(t *testing.T) {
	out, err := runCLI(t, cliAnswersJSON(), "analyze", "--file", "-", "-o", "json")
	require.NoError(t, err)

	var report assessment.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NoError(t, report.Validate())
}

func TestAnalyzeRejectsMissingMandatoryFields(t *testing.T) {
	_, err := runCLI(t, `{"businessType": "service"}`, "analyze", "--file", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestAnalyzeRejectsUnknownOutputFormat(t *testing.T) {
	_, err := runCLI(t, cliAnswersJSON(), "analyze", "--file", "-", "-o", "yaml")
	require.Error(t, err)
}

func TestAnalyzeRequiresFileFlag(t *testing.T) {
	_, err := runCLI(t, "", "analyze")
	require.Error(t, err)
}

func TestAnalyzeAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/assessments/analyze", r.URL.Path)
		json.NewEncoder(w).Encode(assessment.Report{
			Summary:        "Remote summary.",
			Recommendation: "Remote recommendation.",
			ProfitLeaks: []assessment.Finding{
				{Title: "X", Description: "x", PotentialImpact: assessment.ImpactHigh},
				{Title: "Y", Description: "y", PotentialImpact: assessment.ImpactMedium},
				{Title: "Z", Description: "z", PotentialImpact: assessment.ImpactLow},
			},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, cliAnswersJSON(), "analyze", "--file", "-", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Remote summary.")
}

func TestRootVersionString(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit")
}

//Personal.AI order the ending
