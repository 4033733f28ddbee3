package graph

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// CheckResult is the answer to an is-follower or is-banned query
type CheckResult struct {
	Query  string `json:"query"`
	Result bool   `json:"result"`
}

// Formatter defines interface for output formatting
type Formatter interface {
	FormatChannel(channel *model.Channel) (string, error)
	FormatChannels(channels []*model.Channel) (string, error)
	FormatCheck(result *CheckResult) (string, error)
	FormatReport(report *relationship.Report) (string, error)
	FormatStatus(status *StoreStatus) (string, error)
}

// JSONFormatter formats output as indented JSON
type JSONFormatter struct{}

// FormatChannel prints the channel with every list as a JSON array, never null
func (f *JSONFormatter) FormatChannel(channel *model.Channel) (string, error) {
	return marshal(channel.Clone())
}

func (f *JSONFormatter) FormatChannels(channels []*model.Channel) (string, error) {
	clones := make([]*model.Channel, 0, len(channels))
	for _, channel := range channels {
		clones = append(clones, channel.Clone())
	}
	return marshal(clones)
}

func (f *JSONFormatter) FormatCheck(result *CheckResult) (string, error) {
	return marshal(result)
}

func (f *JSONFormatter) FormatReport(report *relationship.Report) (string, error) {
	return marshal(report)
}

func (f *JSONFormatter) FormatStatus(status *StoreStatus) (string, error) {
	return marshal(status)
}

func marshal(v any) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

func (f *TextFormatter) FormatChannel(channel *model.Channel) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Channel ID: %s\n", channel.ID))
	output.WriteString(fmt.Sprintf("Username: %s\n", channel.Username))
	output.WriteString(fmt.Sprintf("Followers: %d\n", len(channel.FollowerList)))
	output.WriteString(fmt.Sprintf("Following: %d\n", len(channel.FollowedList)))
	output.WriteString(fmt.Sprintf("Banned: %d\n", len(channel.BannedList)))
	output.WriteString(fmt.Sprintf("Banned From: %d\n", len(channel.BannedFromList)))
	if !channel.CreatedAt.IsZero() {
		output.WriteString(fmt.Sprintf("Created At: %s\n", channel.CreatedAt.Format(time.RFC3339)))
	}

	return strings.TrimRight(output.String(), "\n"), nil
}

func (f *TextFormatter) FormatChannels(channels []*model.Channel) (string, error) {
	if len(channels) == 0 {
		return "No channels found.", nil
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Found %d channel(s):\n", len(channels)))
	for i, channel := range channels {
		output.WriteString(fmt.Sprintf("[%d] %s (%s)\n", i+1, channel.Username, channel.ID))
	}
	return strings.TrimRight(output.String(), "\n"), nil
}

func (f *TextFormatter) FormatCheck(result *CheckResult) (string, error) {
	return fmt.Sprintf("%s: %t", result.Query, result.Result), nil
}

func (f *TextFormatter) FormatReport(report *relationship.Report) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Channels scanned: %d\n", report.Channels))
	output.WriteString(fmt.Sprintf("Violations: %d\n", len(report.Violations)))
	for _, v := range report.Violations {
		output.WriteString(fmt.Sprintf("  [%s] %s (%s) %s -> %s\n", v.Kind, v.Username, v.ChannelID, v.List, v.OtherID))
	}
	if report.Repaired > 0 {
		output.WriteString(fmt.Sprintf("Channels repaired: %d\n", report.Repaired))
	}

	return strings.TrimRight(output.String(), "\n"), nil
}

func (f *TextFormatter) FormatStatus(status *StoreStatus) (string, error) {
	if status.Reachable {
		return fmt.Sprintf("Store %s: reachable", status.Store), nil
	}
	return fmt.Sprintf("Store %s: unreachable (%s)", status.Store, status.Error), nil
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return &JSONFormatter{}, nil
	case "text", "txt":
		return &TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
