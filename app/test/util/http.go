package util_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
)

// Request sends a JSON request through e and returns the raw body and status.
func Request(e *echo.Echo, method string, target string, headers map[string]string, bodyBytes []byte) ([]byte, int) {
	var body io.Reader
	if len(bodyBytes) > 0 {
		body = bytes.NewBuffer(bodyBytes)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Add(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, req)

	return recorder.Body.Bytes(), recorder.Code
}

func RequestHTTP[T any](e *echo.Echo, method string, target string, headers map[string]string, body any) (T, int, error) {
	var res T
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return res, 0, err
		}
	}
	resBytes, code := Request(e, method, target, headers, bodyBytes)
	err := json.Unmarshal(resBytes, &res)

	return res, code, err
}

// Status is a shortcut for requests whose body is irrelevant.
func Status(e *echo.Echo, method string, target string, headers map[string]string) int {
	_, code := Request(e, method, target, headers, nil)
	return code
}
