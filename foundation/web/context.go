package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin context together with the request scoped
// context.Context that handlers pass down to the service layer.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []string
	queryErrs []string
}

// Respond converts a Go value to JSON and sends it to the client.
func (c *Context) Respond(data interface{}, statusCode int) error {
	if statusCode == http.StatusNoContent || data == nil {
		c.Status(statusCode)
		c.Writer.WriteHeaderNow()
		return nil
	}

	c.JSON(statusCode, data)
	return nil
}

// RespondError sends an error response back to the client. Request errors
// carry their own status and message; everything else is logged and reduced
// to a generic 500 so store and driver details never reach the client.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) && webErr.Status < http.StatusInternalServerError {
		return c.Respond(ErrorResponse{Message: webErr.Error()}, webErr.Status)
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	return c.Respond(ErrorResponse{Message: internalMessage}, StatusOf(err))
}

// BindFunc decodes the JSON body into data and checks that every listed
// struct field is set. A field list may also be given as one comma separated
// string.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBindJSON(data); err != nil {
		return NewRequestError(errors.New("invalid request body"), http.StatusBadRequest)
	}

	var fields []string
	for _, f := range requiredFields {
		for _, name := range strings.Split(f, ",") {
			if name = strings.TrimSpace(name); name != "" {
				fields = append(fields, name)
			}
		}
	}

	return ValidateRequired(data, fields...)
}

// ValidateRequired reports the first named field of the struct pointed to by
// data that holds its zero value (nil pointer, empty string, ...).
func ValidateRequired(data interface{}, fields ...string) error {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return NewRequestError(errors.New("invalid request body"), http.StatusBadRequest)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	for _, name := range fields {
		sf, ok := v.Type().FieldByName(name)
		if !ok {
			continue
		}
		fv := v.FieldByName(name)
		missing := fv.IsZero()
		if !missing && fv.Kind() == reflect.Ptr && fv.Elem().Kind() == reflect.String {
			missing = strings.TrimSpace(fv.Elem().String()) == ""
		}
		if !missing && fv.Kind() == reflect.String {
			missing = strings.TrimSpace(fv.String()) == ""
		}
		if missing {
			return NewRequestError(fmt.Errorf("%s is required", jsonName(sf)), http.StatusBadRequest)
		}
	}

	return nil
}

func jsonName(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return sf.Name
	}
	return tag
}

// GetParam reads a path parameter converted to kind. Conversion failures are
// collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	raw := c.Param(key)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("%s must be an integer", key))
			return 0
		}
		return v
	default:
		if strings.TrimSpace(raw) == "" {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("%s is required", key))
		}
		return raw
	}
}

// ValidParam returns the collected path parameter errors, if any.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.paramErrs, "; ")), http.StatusBadRequest)
}

// GetQueryFunc reads an optional query parameter. It returns a typed pointer
// (*int, *string, *bool) when the parameter is present, nil otherwise.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be an integer", key))
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be a boolean", key))
			return nil
		}
		return &v
	default:
		return &raw
	}
}

// ValidQuery returns the collected query parameter errors, if any.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.queryErrs, "; ")), http.StatusBadRequest)
}
