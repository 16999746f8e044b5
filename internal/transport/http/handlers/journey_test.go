package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"appraisal/internal/app/server"
	"appraisal/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestAppraisalJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	leaderID := createEmployee(t, client, ts.URL, token, "Lena Leader", "leader-"+suffix+"@example.com", "leader", "", "")
	teamID := createTeam(t, client, ts.URL, token, "Team "+suffix, leaderID)
	updateEmployeeTeam(t, client, ts.URL, token, leaderID, "Lena Leader", "leader-"+suffix+"@example.com", "leader", "", teamID)
	memberID := createEmployee(t, client, ts.URL, token, "Mo Member", "member-"+suffix+"@example.com", "member", leaderID, teamID)

	periodID := createPeriod(t, client, ts.URL, token, "Cycle "+suffix)
	templateID := createTemplate(t, client, ts.URL, token, "leader-to-member")

	preview := postJSON(t, client, ts.URL+"/api/v1/assignments/preview", token, map[string]any{
		"reviewPeriodId": periodID,
		"toggles":        map[string]bool{"includeLeaderToMember": true},
	})
	var previewPayload struct {
		Categories []struct {
			Category string `json:"category"`
			Pairs    []struct {
				AppraiserID string `json:"appraiserId"`
				EmployeeID  string `json:"employeeId"`
			} `json:"pairs"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(preview.Data, &previewPayload); err != nil {
		t.Fatalf("failed to decode preview: %v", err)
	}
	foundPair := false
	for _, category := range previewPayload.Categories {
		if category.Category != "leader-to-member" {
			continue
		}
		for _, pair := range category.Pairs {
			if pair.AppraiserID == leaderID && pair.EmployeeID == memberID {
				foundPair = true
			}
		}
	}
	if !foundPair {
		t.Fatal("expected leader-to-member pair in preview")
	}

	build := postJSON(t, client, ts.URL+"/api/v1/assignments/build", token, map[string]any{
		"reviewPeriodId": periodID,
		"toggles":        map[string]bool{"includeLeaderToMember": true},
		"templates":      map[string]string{"leader-to-member": templateID},
	})
	var buildPayload struct {
		Assignments []struct {
			ID           string `json:"id"`
			AppraiserID  string `json:"appraiserId"`
			EmployeeID   string `json:"employeeId"`
			EmployeeName string `json:"employeeName"`
			Status       string `json:"status"`
		} `json:"assignments"`
	}
	if err := json.Unmarshal(build.Data, &buildPayload); err != nil {
		t.Fatalf("failed to decode build: %v", err)
	}
	if len(buildPayload.Assignments) == 0 {
		t.Fatal("expected assignments to be created")
	}
	assignmentID := ""
	for _, a := range buildPayload.Assignments {
		if a.AppraiserID == leaderID && a.EmployeeID == memberID {
			assignmentID = a.ID
			if a.EmployeeName != "Mo Member" {
				t.Fatalf("expected denormalized employee name, got %q", a.EmployeeName)
			}
			if a.Status != "pending" {
				t.Fatalf("expected pending status, got %q", a.Status)
			}
		}
	}
	if assignmentID == "" {
		t.Fatal("expected leader-to-member assignment")
	}

	submit := postJSON(t, client, ts.URL+"/api/v1/appraisals", token, map[string]any{
		"assignmentId": assignmentID,
		"responses": map[string]string{
			"quality":       "4",
			"communication": "good written updates",
		},
	})
	var submitted struct {
		ID       string  `json:"id"`
		Score    float64 `json:"score"`
		MaxScore float64 `json:"maxScore"`
	}
	if err := json.Unmarshal(submit.Data, &submitted); err != nil {
		t.Fatalf("failed to decode appraisal: %v", err)
	}
	// rating 4 of 5 at weight 60 plus full marks on the 40-weight text item
	if submitted.Score != 440 || submitted.MaxScore != 500 {
		t.Fatalf("unexpected score %v/%v", submitted.Score, submitted.MaxScore)
	}

	dashboard := getJSON(t, client, ts.URL+"/api/v1/reports/dashboard?periodId="+periodID, token)
	var dash struct {
		AppraisalsTotal int     `json:"appraisalsTotal"`
		CompletionRate  float64 `json:"completionRate"`
	}
	if err := json.Unmarshal(dashboard.Data, &dash); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}
	if dash.AppraisalsTotal == 0 {
		t.Fatal("expected completed appraisals on the dashboard")
	}
	if dash.CompletionRate <= 0 {
		t.Fatal("expected completion rate above zero")
	}
}

func TestDoubleSubmissionRejected(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	appraiserID := createEmployee(t, client, ts.URL, token, "App Raiser", "appraiser-"+suffix+"@example.com", "hr", "", "")
	subjectID := createEmployee(t, client, ts.URL, token, "Sub Ject", "subject-"+suffix+"@example.com", "member", "", "")
	periodID := createPeriod(t, client, ts.URL, token, "Double "+suffix)
	templateID := createTemplate(t, client, ts.URL, token, "hr-to-all")

	linkResp := postJSON(t, client, ts.URL+"/api/v1/links", token, map[string]any{
		"appraiserId":    appraiserID,
		"employeeId":     subjectID,
		"templateId":     templateID,
		"reviewPeriodId": periodID,
		"relationship":   "hr-to-all",
	})
	var created struct {
		Link struct {
			Token string `json:"token"`
		} `json:"link"`
		Assignment struct {
			ID string `json:"id"`
		} `json:"assignment"`
	}
	if err := json.Unmarshal(linkResp.Data, &created); err != nil {
		t.Fatalf("failed to decode link: %v", err)
	}

	resolved := getJSON(t, client, ts.URL+"/api/v1/links/resolve/"+created.Link.Token, token)
	var resolvedAssignment struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resolved.Data, &resolvedAssignment); err != nil {
		t.Fatalf("failed to decode resolved link: %v", err)
	}
	if resolvedAssignment.ID != created.Assignment.ID {
		t.Fatalf("link resolved to %q, want %q", resolvedAssignment.ID, created.Assignment.ID)
	}

	responses := map[string]string{"quality": "5", "communication": "clear"}
	postJSON(t, client, ts.URL+"/api/v1/appraisals", token, map[string]any{
		"assignmentId": created.Assignment.ID,
		"responses":    responses,
	})

	status := postJSONStatus(t, client, ts.URL+"/api/v1/appraisals", token, map[string]any{
		"assignmentId": created.Assignment.ID,
		"responses":    responses,
	})
	if status != http.StatusConflict {
		t.Fatalf("expected second submission to conflict, got %d", status)
	}

	// the single-use link is consumed by the first submission
	linkStatus := getJSONStatus(t, client, ts.URL+"/api/v1/links/resolve/"+created.Link.Token, token)
	if linkStatus != http.StatusGone {
		t.Fatalf("expected used link to be gone, got %d", linkStatus)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, name, email, level, managerID, teamID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"name":      name,
		"email":     email,
		"level":     level,
		"managerId": managerID,
		"teamId":    teamID,
		"status":    "active",
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func updateEmployeeTeam(t *testing.T, client *http.Client, baseURL, token, employeeID, name, email, level, managerID, teamID string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/v1/employees/"+employeeID, marshalBody(t, map[string]any{
		"name":      name,
		"email":     email,
		"level":     level,
		"managerId": managerID,
		"teamId":    teamID,
		"status":    "active",
	}))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("employee update failed %d: %s", resp.StatusCode, string(raw))
	}
}

func createTeam(t *testing.T, client *http.Client, baseURL, token, name, leaderID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/teams", token, map[string]any{
		"name":      name,
		"leaderIds": []string{leaderID},
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode team response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected team id")
	}
	return id
}

func createPeriod(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/periods", token, map[string]any{
		"name":      name,
		"year":      2026,
		"type":      "quarter",
		"startDate": "2026-01-01",
		"endDate":   "2026-03-31",
		"status":    "active",
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode period response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected period id")
	}
	return id
}

func createTemplate(t *testing.T, client *http.Client, baseURL, token, templateType string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/templates", token, map[string]any{
		"name": "Standard " + templateType,
		"type": templateType,
		"categories": []map[string]any{
			{
				"id":   "core",
				"name": "Core",
				"items": []map[string]any{
					{"id": "quality", "label": "Quality of work", "type": "rating-1-5", "weight": 60, "required": true},
					{"id": "communication", "label": "Communication", "type": "text", "weight": 40, "required": true},
				},
			},
		},
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode template response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected template id")
	}
	return id
}

func marshalBody(t *testing.T, body any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, marshalBody(t, body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, marshalBody(t, body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}
