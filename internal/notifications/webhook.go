package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjannette/ifsol-backend/internal/httputil"
)

const DefaultBotName = "IFSOL"

// Alert is one operator message.
type Alert struct {
	Title  string
	Detail string
	At     time.Time
}

func (a Alert) String() string {
	if a.Detail == "" {
		return a.Title
	}
	return a.Title + ": " + a.Detail
}

type platform int

const (
	platformSlack platform = iota
	platformDiscord
)

// Sender posts alerts to a Slack or Discord incoming webhook. Without a
// webhook URL alerts are only printed.
type Sender struct {
	webhookURL string
	platform   platform
	botName    string
	httpClient *http.Client
	retry      httputil.RetryConfig
}

func NewSender(webhookURL, botName string) *Sender {
	if botName == "" {
		botName = DefaultBotName
	}
	return &Sender{
		webhookURL: webhookURL,
		platform:   detectPlatform(webhookURL),
		botName:    botName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry: httputil.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			MaxDelay:    5 * time.Second,
		},
	}
}

func (s *Sender) Enabled() bool {
	return s.webhookURL != ""
}

// Send prints the alert and, when a webhook is configured, delivers it.
func (s *Sender) Send(ctx context.Context, a Alert) error {
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}
	fmt.Printf("[%s] [%s] %s\n", a.At.Format(time.RFC3339), s.botName, a)

	if !s.Enabled() {
		return nil
	}

	body, err := json.Marshal(s.payload(a))
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	resp, err := httputil.Do(ctx, s.httpClient, s.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("deliver alert: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("deliver alert: %w", httputil.NewStatusError(resp))
	}
	resp.Body.Close()
	return nil
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
	Color       int    `json:"color"`
}

type discordPayload struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

type slackPayload struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// orange, the colour of a degraded service
const discordColor = 0xF5A623

func (s *Sender) payload(a Alert) any {
	if s.platform == platformDiscord {
		return discordPayload{
			Username: s.botName,
			Embeds: []discordEmbed{{
				Title:       a.Title,
				Description: a.Detail,
				Timestamp:   a.At.Format(time.RFC3339),
				Color:       discordColor,
			}},
		}
	}
	text := "*" + a.Title + "*"
	if a.Detail != "" {
		text += "\n`" + a.Detail + "`"
	}
	return slackPayload{Username: s.botName, Text: text}
}

func detectPlatform(webhookURL string) platform {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return platformSlack
	}
	host := strings.ToLower(u.Hostname())
	if strings.HasSuffix(host, "discord.com") || strings.HasSuffix(host, "discordapp.com") || strings.Contains(u.Path, "/discord") {
		return platformDiscord
	}
	return platformSlack
}
