package nexusapi

import "time"

// ErrorResponse is the error body as it appears on the wire.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Token is the current TOTP code. Required only once the server has
	// answered with mfa_required.
	Token string `json:"token,omitempty"`
}

// LoginResponse is either an MFA challenge or a successful login.
type LoginResponse struct {
	MFARequired bool         `json:"mfa_required,omitempty"`
	Message     string       `json:"message,omitempty"`
	User        *SessionUser `json:"user,omitempty"`
}

// SessionUser is the identity carried by a session.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MeResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

type MFASetupResponse struct {
	QRCode     string `json:"qrcode"`
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type MFAVerifyRequest struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ============================================================================
// Users
// ============================================================================

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	MFAEnabled bool      `json:"mfa_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ============================================================================
// Projects
// ============================================================================

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

type CreateProjectResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type AssignRequest struct {
	UserID        string `json:"user_id"`
	RoleInProject string `json:"role_in_project"`
}

type TeamMember struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	RoleInProject string `json:"role_in_project"`
}

// ============================================================================
// Documents
// ============================================================================

type Document struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	OriginalName   string    `json:"original_name"`
	ContentType    string    `json:"content_type"`
	SizeBytes      int64     `json:"size_bytes"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedByName string    `json:"uploaded_by_name"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

type UploadDocumentResponse struct {
	Message  string   `json:"message"`
	Document Document `json:"document"`
}

// UploadFormField is the multipart field carrying the uploaded file.
const UploadFormField = "document"

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
	Storage  string `json:"storage"`
}
