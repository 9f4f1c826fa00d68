package backend

import (
	"context"
	"encoding/json"

	"mims-console/pkg/apperror"
)

// Login verifies credentials against the backend. The legacy endpoint
// answers with a bare JSON string: "success", or an error text such as
// "Incorrect password".
func (c *Client) Login(ctx context.Context, email, password string) error {
	var result string
	err := c.postJSON(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}
	if result != "success" {
		msg := result
		if msg == "" {
			msg = "Invalid email or password"
		}
		return apperror.NewAuthError(msg)
	}
	return nil
}

// GetUser fetches the display name for a verified account.
func (c *Client) GetUser(ctx context.Context, email string) (string, error) {
	var result struct {
		Name string `json:"name"`
	}
	err := c.postJSON(ctx, "/get-user", map[string]string{"email": email}, &result)
	if err != nil {
		return "", err
	}
	return result.Name, nil
}

// BeginOTPLogin verifies credentials and asks the backend to mail a
// one-time passcode. The flow must not advance past code entry unless the
// backend confirms the send.
func (c *Client) BeginOTPLogin(ctx context.Context, email, password string) error {
	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/login-with-otp", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}
	if result.Status != "otp-sent" {
		msg := result.Message
		if msg == "" {
			msg = "Invalid email or password"
		}
		return apperror.NewAuthError(msg)
	}
	return nil
}

// VerifyOTP exchanges a one-time passcode for the account's display name.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var raw json.RawMessage
	err := c.postJSON(ctx, "/verify-login-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, &raw)
	if err != nil {
		return "", err
	}

	var result struct {
		Status  string `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &result); err != nil || result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = "OTP verification failed"
		}
		return "", apperror.NewAuthError(msg)
	}
	return result.Name, nil
}
