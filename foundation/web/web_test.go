package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var res ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", w.Body, err)
	}
	return res
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := NewApp()

	app.Get("/bad", func(c *Context) error {
		return c.RespondError(NewRequestError(errors.New("name is required"), http.StatusBadRequest))
	})
	app.Get("/boom", func(c *Context) error {
		return c.RespondError(errors.New("pq: connection refused"))
	})
	app.Get("/unhandled", func(c *Context) error {
		return errors.New("forgot to respond")
	})

	w := serve(app, http.MethodGet, "/bad", "")
	if w.Code != http.StatusBadRequest || decode(t, w).Message != "name is required" {
		t.Fatalf("bad: %d %s", w.Code, w.Body)
	}

	for _, path := range []string{"/boom", "/unhandled"} {
		w = serve(app, http.MethodGet, path, "")
		if w.Code != http.StatusInternalServerError || decode(t, w).Message != internalMessage {
			t.Fatalf("%s: %d %s", path, w.Code, w.Body)
		}
	}
}

func TestBindFuncRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := NewApp()

	type request struct {
		UserID string  `json:"userId"`
		Reason *string `json:"reason"`
	}
	app.Post("/bind", func(c *Context) error {
		var data request
		if err := c.BindFunc(&data, "UserID, Reason"); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(data, http.StatusCreated)
	})

	tests := []struct {
		body   string
		status int
		msg    string
	}{
		{`{"userId":"T001","reason":"x"}`, http.StatusCreated, ""},
		{`{"reason":"x"}`, http.StatusBadRequest, "userId is required"},
		{`{"userId":"T001","reason":"  "}`, http.StatusBadRequest, "reason is required"},
		{`not json`, http.StatusBadRequest, "invalid request body"},
	}
	for _, tt := range tests {
		w := serve(app, http.MethodPost, "/bind", tt.body)
		if w.Code != tt.status {
			t.Fatalf("%s: got %d %s", tt.body, w.Code, w.Body)
		}
		if tt.msg != "" && decode(t, w).Message != tt.msg {
			t.Fatalf("%s: got %s", tt.body, w.Body)
		}
	}
}

func TestParamsAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := NewApp()

	app.Get("/items/:id", func(c *Context) error {
		id := c.GetParam(reflect.Int, "id").(int)
		if err := c.ValidParam(); err != nil {
			return c.RespondError(err)
		}
		limit, _ := c.GetQueryFunc(reflect.Int, "limit").(*int)
		if err := c.ValidQuery(); err != nil {
			return c.RespondError(err)
		}
		n := -1
		if limit != nil {
			n = *limit
		}
		return c.Respond(map[string]int{"id": id, "limit": n}, http.StatusOK)
	})

	w := serve(app, http.MethodGet, "/items/7?limit=3", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"id":7,"limit":3}` {
		t.Fatalf("ok: %d %s", w.Code, w.Body)
	}
	if w = serve(app, http.MethodGet, "/items/7", ""); w.Body.String() != `{"id":7,"limit":-1}` {
		t.Fatalf("no limit: %s", w.Body)
	}
	if w = serve(app, http.MethodGet, "/items/x", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
	if w = serve(app, http.MethodGet, "/items/7?limit=many", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: %d", w.Code)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(c *Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := NewApp(mark("app"))
	app.Get("/", func(c *Context) error {
		order = append(order, "handler")
		return c.Respond(nil, http.StatusNoContent)
	}, mark("route"))

	if w := serve(app, http.MethodGet, "/", ""); w.Code != http.StatusNoContent {
		t.Fatalf("got %d", w.Code)
	}
	if want := []string{"app", "route", "handler"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}
