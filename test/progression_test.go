//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressResponse struct {
	Email             string   `json:"email"`
	Level             int      `json:"level"`
	CompletedWorkouts []string `json:"completedWorkouts"`
}

type scheduleEntry struct {
	Date      string `json:"date"`
	WorkoutID string `json:"workoutId"`
}

type weekResponse struct {
	WeekStart string `json:"weekStart"`
	Items     []struct {
		Date      string `json:"date"`
		WorkoutID string `json:"workoutId"`
		Workout   struct {
			ID            string `json:"id"`
			LevelRequired int    `json:"levelRequired"`
		} `json:"workout"`
	} `json:"items"`
}

// do sends the request from clientIP, each test uses its own address so the
// rate limiter buckets do not interfere.
func (s *IntegrationTestSuite) do(ctx context.Context, clientIP, method, path string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Real-Ip", clientIP)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestProgression() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	const ip = "10.0.1.1"
	email := gofakeit.New(1).Email()

	code, _ := s.do(ctx, ip, "POST", "/api/register", map[string]string{"email": email})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(ctx, ip, "POST", "/api/register", map[string]string{"email": email})
	assert.Equal(t, http.StatusConflict, code)

	code, body := s.do(ctx, ip, "POST", "/api/schedule/add", map[string]string{
		"email": email, "date": "2024-01-02", "workoutId": "pushups",
	})
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	for _, id := range []string{"dynamicstretch", "armcircles", "highknees", "armcircles"} {
		code, body = s.do(ctx, ip, "POST", "/api/progress/complete", map[string]string{"email": email, "workoutId": id})
		require.Equal(t, http.StatusOK, code, string(body))
	}

	var progress progressResponse
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.Equal(t, 2, progress.Level)
	assert.Equal(t, []string{"dynamicstretch", "armcircles", "highknees"}, progress.CompletedWorkouts)

	code, _ = s.do(ctx, ip, "POST", "/api/progress/complete", map[string]string{"email": email, "workoutId": "nope"})
	assert.Equal(t, http.StatusNotFound, code)

	// survives a fresh read from postgres
	var storedLevel int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT level FROM app_user WHERE email = $1`, progress.Email).Scan(&storedLevel))
	assert.Equal(t, 2, storedLevel)

	code, body = s.do(ctx, ip, "GET", "/api/progress/tree/"+email, nil)
	require.Equal(t, http.StatusOK, code)
	var tree []struct {
		ID        string `json:"id"`
		Unlocked  bool   `json:"unlocked"`
		Completed bool   `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(body, &tree))
	require.Len(t, tree, 12)
	assert.True(t, tree[0].Completed)
	assert.Equal(t, "pushups", tree[3].ID)
	assert.True(t, tree[3].Unlocked)
	assert.False(t, tree[3].Completed)
}

func (s *IntegrationTestSuite) TestSchedule() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	const ip = "10.0.2.1"
	email := gofakeit.New(2).Email()

	code, _ := s.do(ctx, ip, "POST", "/api/register", map[string]string{"email": email})
	require.Equal(t, http.StatusCreated, code)

	for _, date := range []string{"2024-01-07", "2024-01-03", "2023-12-31", "2024-01-03"} {
		code, body := s.do(ctx, ip, "POST", "/api/schedule/add", map[string]string{
			"email": email, "date": date, "workoutId": "dynamicstretch",
		})
		require.Equal(t, http.StatusOK, code, string(body))
	}
	code, body := s.do(ctx, ip, "POST", "/api/schedule/add", map[string]string{
		"email": email, "date": "2024-01-03", "workoutId": "armcircles",
	})
	require.Equal(t, http.StatusOK, code, string(body))

	var entries struct {
		Entries []scheduleEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Equal(t, []scheduleEntry{
		{Date: "2023-12-31", WorkoutID: "dynamicstretch"},
		{Date: "2024-01-03", WorkoutID: "dynamicstretch"},
		{Date: "2024-01-03", WorkoutID: "armcircles"},
		{Date: "2024-01-07", WorkoutID: "dynamicstretch"},
	}, entries.Entries)

	code, body = s.do(ctx, ip, "GET", "/api/schedule/"+email+"?weekStart=2024-01-01", nil)
	require.Equal(t, http.StatusOK, code)
	var week weekResponse
	require.NoError(t, json.Unmarshal(body, &week))
	assert.Equal(t, "2024-01-01", week.WeekStart)
	require.Len(t, week.Items, 3)
	assert.Equal(t, "2024-01-03", week.Items[0].Date)
	assert.Equal(t, "dynamicstretch", week.Items[0].Workout.ID)
	assert.Equal(t, "armcircles", week.Items[1].WorkoutID)
	assert.Equal(t, "2024-01-07", week.Items[2].Date)

	code, _ = s.do(ctx, ip, "POST", "/api/schedule/remove", map[string]string{
		"email": email, "date": "2024-01-03", "workoutId": "dynamicstretch",
	})
	require.Equal(t, http.StatusOK, code)

	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM schedule_entry WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&rows))
	assert.Equal(t, 3, rows)

	code, _ = s.do(ctx, ip, "GET", "/api/schedule/"+email+"?weekStart=2024-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func (s *IntegrationTestSuite) TestConcurrentCompletions() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	email := gofakeit.New(3).Email()

	code, _ := s.do(ctx, "10.0.3.1", "POST", "/api/register", map[string]string{"email": email})
	require.Equal(t, http.StatusCreated, code)

	ids := []string{"dynamicstretch", "armcircles", "highknees", "pushups", "squats", "planks"}
	var wg sync.WaitGroup
	codes := make([]int, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			// distinct client per worker, one request each
			codes[i], _ = s.do(ctx, fmt.Sprintf("10.0.3.%d", i+10), "POST", "/api/progress/complete", map[string]string{
				"email": email, "workoutId": id,
			})
		}(i, id)
	}
	wg.Wait()

	for i, c := range codes {
		assert.Equal(t, http.StatusOK, c, ids[i])
	}

	code, body := s.do(ctx, "10.0.3.1", "GET", "/api/progress/"+email, nil)
	require.Equal(t, http.StatusOK, code)
	var progress progressResponse
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.ElementsMatch(t, ids, progress.CompletedWorkouts)
	assert.Equal(t, 4, progress.Level)
}

func (s *IntegrationTestSuite) TestRateLimit() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	const ip = "10.0.4.1"

	for i := 0; i < rateLimitPerMin; i++ {
		code, _ := s.do(ctx, ip, "POST", "/api/register", map[string]string{"email": "not-an-email"})
		require.Equal(t, http.StatusBadRequest, code)
	}
	code, _ := s.do(ctx, ip, "POST", "/api/register", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusTooManyRequests, code)

	// reads are not limited
	code, _ = s.do(ctx, ip, "GET", "/api/progress/tree/all", nil)
	assert.Equal(t, http.StatusOK, code)

	// other clients keep their own budget
	code, _ = s.do(ctx, "10.0.4.2", "POST", "/api/register", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func (s *IntegrationTestSuite) TestHealth() {
	code, body := s.do(context.Background(), "10.0.5.1", "GET", "/health", nil)
	s.Require().Equal(http.StatusOK, code)
	s.JSONEq(`{"ok":true}`, string(body))
}
