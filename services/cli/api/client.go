package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// Client is a thin HTTP client for the gym-slots API.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: baseURL,
	}
}

func (c *Client) ListMachines(ctx context.Context, classID string) ([]Machine, error) {
	path := "/machines"
	if classID != "" {
		path += "?class_id=" + url.QueryEscape(classID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	var machines []Machine
	if err := c.doJSON(req, &machines); err != nil {
		return nil, err
	}
	return machines, nil
}

func (c *Client) LockMachine(ctx context.Context, machineID int, userID, classID string) (Lock, error) {
	var lock Lock
	err := c.postJSON(ctx, c.machinePath(machineID, "lock"), map[string]string{
		"user_id":  userID,
		"class_id": classID,
	}, &lock)
	return lock, err
}

func (c *Client) BookMachine(ctx context.Context, machineID int, userID, token, classID string) (Booking, error) {
	var booking Booking
	err := c.postJSON(ctx, c.machinePath(machineID, "book"), map[string]string{
		"user_id":    userID,
		"lock_token": token,
		"class_id":   classID,
	}, &booking)
	return booking, err
}

func (c *Client) ReleaseLock(ctx context.Context, machineID int, token string) error {
	return c.postJSON(ctx, c.machinePath(machineID, "release"), map[string]string{
		"lock_token": token,
	}, nil)
}

func (c *Client) CancelBooking(ctx context.Context, machineID int, userID, classID string) error {
	return c.postJSON(ctx, c.machinePath(machineID, "cancel"), map[string]string{
		"user_id":  userID,
		"class_id": classID,
	}, nil)
}

func (c *Client) machinePath(machineID int, action string) string {
	return "/machines/" + strconv.Itoa(machineID) + "/" + action
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%s)", apiErr.Error, apiErr.Code)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
