package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/matching"
	"github.com/vlkr-dev/courtline/internal/metrics"
	"github.com/vlkr-dev/courtline/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendBookingConfirmation posts a confirmation message for a freshly created booking.
func (s *Notifier) SendBookingConfirmation(b *booking.Booking, dryRun bool) error {
	msg := s.formatBookingConfirmation(b)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendBookingCancellation posts a cancellation message for a booking.
func (s *Notifier) SendBookingCancellation(b *booking.Booking, dryRun bool) error {
	msg := s.formatBookingCancellation(b)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendSuggestions posts the top compatibility suggestions for a user.
func (s *Notifier) SendSuggestions(userName string, suggestions []matching.SuggestedMatch, dryRun bool) error {
	msg := s.formatSuggestions(userName, suggestions)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatBookingConfirmation creates the Slack message for a confirmed booking using Block Kit.
func (s *Notifier) formatBookingConfirmation(b *booking.Booking) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Court booked! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Club: %s\nCourt: %s\nDate: %s at %s\nDuration: %dh",
		b.ClubName, b.CourtID, b.Date, b.SlotTime, b.Duration)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	priceText := fmt.Sprintf("Total: %d RSD", b.TotalPrice)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", priceText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatBookingCancellation creates the Slack message for a cancelled booking.
func (s *Notifier) formatBookingCancellation(b *booking.Booking) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Booking cancelled", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s, %s at %s", b.ClubName, b.Date, b.SlotTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatSuggestions creates the Slack message listing suggested partners.
func (s *Notifier) formatSuggestions(userName string, suggestions []matching.SuggestedMatch) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Suggested partners for %s", userName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(suggestions) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No compatible players found. Try widening your filters!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, sug := range suggestions {
		line := fmt.Sprintf("%d. %s (%.1f) - %d%% match", i+1, sug.Player.Name, sug.Player.Rating, sug.Score)
		if len(sug.Reasons) > 0 {
			line += "\n" + strings.Join(sug.Reasons, ", ")
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", line, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
