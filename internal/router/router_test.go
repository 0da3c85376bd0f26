package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/middleware"
	"university-backend/internal/repository/memory"
	"university-backend/internal/seed"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	data, err := seed.Parse(seed.Default)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = seed.Load(context.Background(), store, data, time.Now()); err != nil {
		t.Fatal(err)
	}

	a, err := auth.New("test-key", auth.NewMemorySessions(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	app := web.NewApp()
	NewRouter(app, store, a, Config{AllowedOrigins: []string{"http://localhost:3000"}}).Init()
	return app
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, id string) string {
	t.Helper()

	w := do(t, h, http.MethodPost, "/api/login", "", map[string]string{"id": id, "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", id, w.Code, w.Body)
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res.Token
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var res web.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", w.Body, err)
	}
	return res.Message
}

func TestLogin(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
		msg    string
	}{
		{"missing fields", map[string]string{"id": "T001"}, http.StatusBadRequest, "ID and password are required"},
		{"wrong password", map[string]string{"id": "T001", "password": "nope"}, http.StatusUnauthorized, "invalid credentials"},
		{"unknown id", map[string]string{"id": "X999", "password": "password123"}, http.StatusUnauthorized, "invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/login", "", tt.body)
			if w.Code != tt.status || message(t, w) != tt.msg {
				t.Fatalf("got %d %s", w.Code, w.Body)
			}
		})
	}

	w := do(t, h, http.MethodPost, "/api/login", "", map[string]string{"id": "H001", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body)
	}
	var res map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &res)
	if res["role"] != "head" || res["department"] != "Administration" {
		t.Fatalf("unexpected login body: %v", res)
	}
	if _, ok := res["password"]; ok {
		t.Fatalf("password leaked")
	}
	if len(w.Result().Cookies()) == 0 || w.Result().Cookies()[0].Name != middleware.SessionCookie {
		t.Fatalf("session cookie not set")
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newServer(t)

	if w := do(t, h, http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: %d", w.Code)
	}

	token := login(t, h, "T001")
	w := do(t, h, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	cw := httptest.NewRecorder()
	h.ServeHTTP(cw, req)
	if cw.Code != http.StatusOK {
		t.Fatalf("cookie me: %d", cw.Code)
	}

	if w = do(t, h, http.MethodPost, "/api/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", w.Code, w.Body)
	}
	if w = do(t, h, http.MethodGet, "/api/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: %d", w.Code)
	}
}

func TestRoleGates(t *testing.T) {
	h := newServer(t)
	teacher := login(t, h, "T001")
	head := login(t, h, "H001")
	admin := login(t, h, "A001")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"teacher lists users", http.MethodGet, "/api/users", teacher, http.StatusForbidden},
		{"head lists users", http.MethodGet, "/api/users", head, http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/users", admin, http.StatusOK},
		{"teacher reads other history", http.MethodGet, "/api/attendance/T002", teacher, http.StatusForbidden},
		{"teacher reads own history", http.MethodGet, "/api/attendance/T001", teacher, http.StatusOK},
		{"head reads other history", http.MethodGet, "/api/attendance/T002", head, http.StatusOK},
		{"bad limit", http.MethodGet, "/api/attendance/T001?limit=x", teacher, http.StatusBadRequest},
		{"teacher reads day list", http.MethodGet, "/api/attendance-all", teacher, http.StatusForbidden},
		{"admin reads day list", http.MethodGet, "/api/attendance-all", admin, http.StatusOK},
		{"teacher reads stats", http.MethodGet, "/api/dashboard-stats", teacher, http.StatusForbidden},
		{"head exports day", http.MethodGet, "/api/attendance-all/export", head, http.StatusOK},
		{"admin badges", http.MethodGet, "/api/users/badges", admin, http.StatusOK},
		{"admin qr", http.MethodGet, "/api/users/T001/qrcode", admin, http.StatusOK},
		{"admin qr unknown", http.MethodGet, "/api/users/X999/qrcode", admin, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.token, nil)
			if w.Code != tt.status {
				t.Fatalf("got %d %s", w.Code, w.Body)
			}
			if tt.status == http.StatusForbidden && message(t, w) != "insufficient permissions" {
				t.Fatalf("unexpected forbidden message: %s", w.Body)
			}
		})
	}
}

func TestMarkAttendance(t *testing.T) {
	h := newServer(t)
	mazer := login(t, h, "M001")
	head := login(t, h, "H001")

	body := map[string]string{"userId": "T002", "date": "2024-11-25", "status": "present", "timeIn": "07:50"}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, body); w.Code != http.StatusCreated {
		t.Fatalf("mark: %d %s", w.Code, w.Body)
	}

	body["status"] = "absent"
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, body); w.Code != http.StatusCreated {
		t.Fatalf("re-mark: %d %s", w.Code, w.Body)
	}

	w := do(t, h, http.MethodGet, "/api/attendance-all?date=2024-11-25", head, nil)
	var list []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0]["status"] != "absent" || list[0]["timeIn"] != nil {
		t.Fatalf("unexpected day list: %s", w.Body)
	}

	staff := map[string]string{"userId": "S001", "date": "2024-11-25", "status": "present"}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, staff); w.Code != http.StatusForbidden {
		t.Fatalf("mazer marking staff: %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", head, body); w.Code != http.StatusForbidden {
		t.Fatalf("head marking: %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, map[string]string{"userId": "T001"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", w.Code)
	}
}

func TestLeaveRequests(t *testing.T) {
	h := newServer(t)
	teacher := login(t, h, "T001")
	head := login(t, h, "H001")

	create := map[string]string{"leaveType": "personal", "fromDate": "2024-12-10", "toDate": "2024-12-11", "reason": "Conference"}
	w := do(t, h, http.MethodPost, "/api/leave-requests", teacher, create)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w = do(t, h, http.MethodGet, "/api/leave-requests", head, nil)
	var queue []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &queue)
	if len(queue) != 3 || queue[0]["userId"] != "T003" || queue[0]["user"] == nil {
		t.Fatalf("unexpected queue: %s", w.Body)
	}

	respond := func(path, status string) int {
		return do(t, h, http.MethodPost, path, head, map[string]string{"status": status}).Code
	}
	if code := respond("/api/leave-requests/1/respond", "approved"); code != http.StatusOK {
		t.Fatalf("approve: %d", code)
	}
	if code := respond("/api/leave-requests/1/respond", "rejected"); code != http.StatusConflict {
		t.Fatalf("re-respond: %d", code)
	}
	if code := respond("/api/leave-requests/999/respond", "approved"); code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", code)
	}
	if code := respond("/api/leave-requests/2/respond", "maybe"); code != http.StatusBadRequest {
		t.Fatalf("bad status: %d", code)
	}
	if code := respond("/api/leave-requests/abc/respond", "approved"); code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", code)
	}

	w = do(t, h, http.MethodPost, "/api/leave-requests/2/respond", teacher, map[string]string{"status": "approved"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("teacher respond: %d", w.Code)
	}
}

func TestSchedulesAndStats(t *testing.T) {
	h := newServer(t)
	staff := login(t, h, "S002")
	head := login(t, h, "H001")

	w := do(t, h, http.MethodGet, "/api/schedules/Monday", staff, nil)
	var list []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &list)
	if w.Code != http.StatusOK || len(list) != 9 {
		t.Fatalf("schedules: %d %s", w.Code, w.Body)
	}

	w = do(t, h, http.MethodGet, "/api/dashboard-stats", head, nil)
	var stats map[string]float64
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats["presentToday"] != 3 || stats["pendingLeaves"] != 2 || stats["totalUsers"] != 13 || stats["attendanceRate"] != 23 {
		t.Fatalf("unexpected stats: %s", w.Body)
	}

	if w = do(t, h, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}

func TestRoleAndAccountChangesApplyToOpenSessions(t *testing.T) {
	h := newServer(t)
	admin := login(t, h, "A001")
	mazer := login(t, h, "M001")

	mark := map[string]string{"userId": "T001", "date": "2024-11-25", "status": "present"}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, mark); w.Code != http.StatusCreated {
		t.Fatalf("mark before demotion: %d %s", w.Code, w.Body)
	}

	if w := do(t, h, http.MethodPut, "/api/users/M001", admin, map[string]string{"role": "teacher"}); w.Code != http.StatusOK {
		t.Fatalf("demote: %d %s", w.Code, w.Body)
	}
	if w := do(t, h, http.MethodPost, "/api/mark-attendance", mazer, mark); w.Code != http.StatusForbidden {
		t.Fatalf("mark after demotion: %d %s", w.Code, w.Body)
	}

	if w := do(t, h, http.MethodDelete, "/api/users/M001", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body)
	}
	if w := do(t, h, http.MethodGet, "/api/me", mazer, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after delete: %d %s", w.Code, w.Body)
	}

	if w := do(t, h, http.MethodDelete, "/api/users/A001", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("self delete: %d %s", w.Code, w.Body)
	}
	if w := do(t, h, http.MethodGet, "/api/users", admin, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("admin route after delete: %d %s", w.Code, w.Body)
	}
}
