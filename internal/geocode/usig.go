package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// USIGGeocoder calls the Buenos Aires USIG reverse-geocoding endpoint.
// The service is rate-sensitive, so requests are spaced by MinInterval.
type USIGGeocoder struct {
	BaseURL     string
	MinInterval time.Duration
	Client      *http.Client

	mu        sync.Mutex
	lastReqAt time.Time
}

type usigResponse struct {
	// The endpoint answers with null or false when it has nothing
	// door-level, so the field cannot decode straight into a string.
	Door json.RawMessage `json:"puerta"`
}

func (r usigResponse) door() (string, bool) {
	if len(r.Door) == 0 {
		return "", false
	}
	var door string
	if err := json.Unmarshal(r.Door, &door); err != nil || door == "" {
		return "", false
	}
	return door, true
}

func (g *USIGGeocoder) ReverseGeocode(ctx context.Context, longitude, latitude float64) (string, error) {
	// Defaulting and slot reservation both happen under the lock, so
	// concurrent callers never share a send time.
	g.mu.Lock()
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "http://ws.usig.buenosaires.gob.ar/geocoder/2.2/reversegeocoding"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = 100 * time.Millisecond
	}
	sendAt := g.lastReqAt.Add(g.MinInterval)
	if now := time.Now(); sendAt.Before(now) {
		sendAt = now
	}
	g.lastReqAt = sendAt
	client, base := g.Client, g.BaseURL
	g.mu.Unlock()

	if wait := time.Until(sendAt); wait > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	params := url.Values{}
	params.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))
	endpoint := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("geocoder http error: %s", resp.Status)
	}

	var body usigResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	door, ok := body.door()
	if !ok {
		return "", ErrUnresolved
	}
	return door, nil
}
