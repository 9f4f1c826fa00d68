package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"mims-console/pkg/apperror"
)

// Client talks to the remote MIMS REST backend. The backend is the sole
// source of truth for users, catalog, bills, profiles and trade entries;
// the console holds read-only copies. All payloads are JSON except the
// multipart asset uploads.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a backend client. The timeout covers the whole request;
// deadline expiry is surfaced as NetworkTimeout, other transport failures
// as NetworkError.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperror.ErrInternalServer
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.FromTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.FromTransport(err)
	}

	if resp.StatusCode >= 400 {
		return remoteError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return apperror.NewAppError(http.StatusBadGateway, apperror.KindNetwork,
				fmt.Sprintf("Unexpected backend response for %s", path))
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return apperror.ErrInternalServer
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return apperror.ErrInternalServer
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// postMultipart sends form fields plus optional file parts (used by the
// business-profile asset upload).
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, files map[string]FilePart, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return apperror.ErrInternalServer
		}
	}
	for name, part := range files {
		fw, err := w.CreateFormFile(name, part.Filename)
		if err != nil {
			return apperror.ErrInternalServer
		}
		if _, err := fw.Write(part.Data); err != nil {
			return apperror.ErrInternalServer
		}
	}
	if err := w.Close(); err != nil {
		return apperror.ErrInternalServer
	}
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}

// FilePart is a named file attached to a multipart request.
type FilePart struct {
	Filename string
	Data     []byte
}

// remoteError maps a backend error response onto the app taxonomy. The
// backend reports failures either as {"message": ...} or {"error": ...}.
func remoteError(status int, body []byte) *apperror.AppError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Backend returned status %d", status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperror.NewAuthError(msg)
	case status == http.StatusNotFound:
		return apperror.NewAppError(http.StatusNotFound, apperror.KindNotFound, msg)
	case status >= 500:
		return apperror.NewAppError(http.StatusBadGateway, apperror.KindNetwork, msg)
	default:
		return apperror.NewAppError(status, apperror.KindValidation, msg)
	}
}
