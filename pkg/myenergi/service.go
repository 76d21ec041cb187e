// Package myenergi reads device status from the myenergi director API.
// Authentication is HTTP digest with the hub serial and API key.
package myenergi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/icholy/digest"
	"github.com/kstephens1/ZappiMon/pkg/types"
)

const deviceTimeLayout = "02-01-2006 15:04:05"

type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewClient builds a director API client. username is the hub serial,
// password the API key generated in the myenergi app.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &digest.Transport{
				Username: username,
				Password: password,
			},
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

func (c *Client) getStatus(path string) (*statusResponse, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("myenergi API returned status %d", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode myenergi response: %w", err)
	}
	return &status, nil
}

// ZappiStatus fetches the current status of the first Zappi on the account.
func (c *Client) ZappiStatus() (*ZappiStatus, error) {
	status, err := c.getStatus("/cgi-jstatus-Z")
	if err != nil {
		return nil, err
	}
	if len(status.Zappi) == 0 {
		return nil, fmt.Errorf("no zappi data found in response")
	}
	return &status.Zappi[0], nil
}

// EddiStatus fetches the current status of the first Eddi on the account.
func (c *Client) EddiStatus() (*EddiStatus, error) {
	status, err := c.getStatus("/cgi-jstatus-E")
	if err != nil {
		return nil, err
	}
	if len(status.Eddi) == 0 {
		return nil, fmt.Errorf("no eddi data found in response")
	}
	return &status.Eddi[0], nil
}

// CurrentReading returns the instantaneous grid power as a GridReading,
// timestamped with the device clock when present, wall clock otherwise.
func (c *Client) CurrentReading() (*types.GridReading, error) {
	zappi, err := c.ZappiStatus()
	if err != nil {
		return nil, err
	}

	ts := c.now().UTC()
	if zappi.Date != "" && zappi.Time != "" {
		if t, err := time.Parse(deviceTimeLayout, zappi.Date+" "+zappi.Time); err == nil {
			ts = t.UTC()
		}
	}
	return &types.GridReading{Timestamp: ts, Watts: zappi.GridWatts}, nil
}

// TankTemperature returns the Eddi tp1 tank temperature in celsius.
func (c *Client) TankTemperature() (int, error) {
	eddi, err := c.EddiStatus()
	if err != nil {
		return 0, err
	}
	return eddi.Tank1Celsius, nil
}
