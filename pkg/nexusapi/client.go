package nexusapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Nexus server. It carries a cookie jar, so the session
// cookie set by Login is sent on every later call.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SessionCookie returns the named cookie currently held for BaseURL.
func (c *Client) SessionCookie(name string) *http.Cookie {
	if c.HTTPClient.Jar == nil {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// ============================================================================
// Auth
// ============================================================================

// Login posts credentials. An MFA challenge is not an error: the response has
// MFARequired set and no session cookie is stored.
func (c *Client) Login(ctx context.Context, username, password, token string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/login",
		LoginRequest{Username: username, Password: password, Token: token}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil, http.StatusOK)
}

func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetupMFA(ctx context.Context) (*MFASetupResponse, error) {
	var out MFASetupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/mfa/setup", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyMFA(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/mfa/verify", MFAVerifyRequest{Token: token}, nil, http.StatusOK)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/account/password",
		ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, nil, http.StatusOK)
}

// ============================================================================
// Users
// ============================================================================

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out CreateUserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Projects
// ============================================================================

// CreateProject returns the id of the new project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (string, error) {
	var out CreateProjectResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/projects", req, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CompleteProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(projectID)+"/complete", nil, nil, http.StatusOK)
}

func (c *Client) AssignUser(ctx context.Context, projectID string, req AssignRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/assign", req, nil, http.StatusOK)
}

func (c *Client) Team(ctx context.Context, projectID string) ([]TeamMember, error) {
	var out []TeamMember
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/team", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Documents
// ============================================================================

// UploadDocument sends body as a multipart upload named filename.
func (c *Client) UploadDocument(ctx context.Context, projectID, filename string, body io.Reader) (*Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadFormField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/documents",
		&buf, map[string]string{"Content-Type": mw.FormDataContentType()})
	if err != nil {
		return nil, err
	}

	var out UploadDocumentResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Document, nil
}

func (c *Client) ListDocuments(ctx context.Context, projectID string) ([]Document, error) {
	var out []Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/documents", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Download is a streamed document body. The caller must close it.
type Download struct {
	io.ReadCloser
	Filename    string
	ContentType string
}

func (c *Client) DownloadDocument(ctx context.Context, documentID string) (*Download, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(documentID)+"/download", nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp, body)
	}

	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return &Download{
		ReadCloser:  resp.Body,
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// ============================================================================
// Health
// ============================================================================

func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz returns the health body for both 200 and 503 along with the status.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, int, error) {
	resp, err := c.do(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, resp.StatusCode, nil
}
