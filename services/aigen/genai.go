// Package aigensvc implements the notification generator contract. The
// generator is an external collaborator: given a structured profile it
// returns a message, a type and a delivery channel.
package aigensvc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/notification"
)

const promptPreamble = `You are an AI assistant designed to generate personalized notifications for a school management system.

Based on the user's role, attendance records, fee payment status, and general announcements, create a personalized notification message.
Consider the following:

- For parents, prioritize notifications about their child's attendance and fee payment status.
- For students, prioritize notifications about attendance, fee due date and general school announcements.
- For teachers, share information about class assignments, school notices and any urgent requests.
- For principals, provide summaries of daily events and information needed.

Generate a concise and relevant notification message. Choose the most appropriate channel (SMS, Email, or WhatsApp) based on the notification type.

Here's the user's information as JSON:
`

// GenaiGenerator generates notifications with the Gemini API, constrained to
// a structured JSON response.
type GenaiGenerator struct {
	client *genai.Client
	model  string
}

var _ notification.Generator = (*GenaiGenerator)(nil)

func NewGenaiGenerator(ctx context.Context, conf *core.Config) (*GenaiGenerator, error) {
	if conf.Genai.ApiKey == "" {
		return nil, errors.New("genai api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: conf.Genai.ApiKey})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &GenaiGenerator{client: client, model: conf.Genai.Model}, nil
}

func (g *GenaiGenerator) Generate(ctx context.Context, profile notification.Profile) (notification.Generated, error) {
	input, err := json.Marshal(profile)
	if err != nil {
		return notification.Generated{}, errors.Wrap(err, "serializing profile")
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(promptPreamble+string(input)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	)
	if err != nil {
		return notification.Generated{}, errors.Wrap(err, "generating content")
	}

	var out notification.Generated
	if err = json.Unmarshal([]byte(resp.Text()), &out); err != nil {
		return notification.Generated{}, errors.Wrap(err, "decoding generator response")
	}
	if out.Message == "" {
		return notification.Generated{}, errors.New("generator returned an empty message")
	}
	return out, nil
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"notificationType": {
				Type:        genai.TypeString,
				Description: "The type of notification (e.g., Absence Alert, Fee Reminder, General Announcement).",
			},
			"message": {
				Type:        genai.TypeString,
				Description: "The personalized notification message.",
			},
			"channel": {
				Type: genai.TypeString,
				Enum: []string{
					string(notification.ChannelSMS),
					string(notification.ChannelEmail),
					string(notification.ChannelWhatsApp),
				},
				Description: "The preferred channel for the notification.",
			},
		},
		Required: []string{"notificationType", "message", "channel"},
	}
}

// Name identifies the generator in logs.
func (g *GenaiGenerator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
