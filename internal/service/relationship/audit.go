package relationship

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Taichi-iskw/followban/internal/edgeset"
	"github.com/Taichi-iskw/followban/internal/model"
)

// ViolationKind classifies a broken graph invariant
type ViolationKind string

const (
	// Asymmetric: the channel lists OtherID but OtherID lacks the reciprocal entry
	Asymmetric ViolationKind = "asymmetric"
	// Duplicate: OtherID appears more than once in the list
	Duplicate ViolationKind = "duplicate"
	// SelfReference: the channel lists its own ID
	SelfReference ViolationKind = "self_reference"
	// Dangling: OtherID does not resolve to any channel
	Dangling ViolationKind = "dangling"
)

// Violation is one broken invariant found by Audit
type Violation struct {
	Kind      ViolationKind  `json:"kind"`
	ChannelID string         `json:"channel_id"`
	Username  string         `json:"username"`
	List      model.ListKind `json:"list"`
	OtherID   string         `json:"other_id"`
}

// Report summarizes an audit pass
type Report struct {
	Channels   int         `json:"channels"`
	Violations []Violation `json:"violations"`
	Repaired   int         `json:"repaired,omitempty"`
}

// Healthy reports whether the audit found nothing to fix
func (r *Report) Healthy() bool {
	return len(r.Violations) == 0
}

// Audit scans every channel and reports edges that break symmetry,
// uniqueness, self-reference or referential integrity. Edges of a delete
// cascade still in progress show up as violations too.
func (s *service) Audit(ctx context.Context) (*Report, error) {
	channels, err := s.dir.ResolveAll(ctx)
	if err != nil {
		return nil, err
	}
	return audit(channels), nil
}

func audit(channels []*model.Channel) *Report {
	byID := make(map[string]*model.Channel, len(channels))
	for _, channel := range channels {
		byID[channel.ID] = channel
	}

	report := &Report{Channels: len(channels), Violations: []Violation{}}
	for _, channel := range channels {
		for _, kind := range model.ListKinds {
			seen := make(map[string]bool)
			for _, otherID := range *channel.List(kind) {
				violation := Violation{
					ChannelID: channel.ID,
					Username:  channel.Username,
					List:      kind,
					OtherID:   otherID,
				}

				switch other := byID[otherID]; {
				case seen[otherID]:
					violation.Kind = Duplicate
				case otherID == channel.ID:
					violation.Kind = SelfReference
				case other == nil:
					violation.Kind = Dangling
				case !edgeset.Contains(channel.ID, *other.List(kind.Mirror())):
					violation.Kind = Asymmetric
				default:
					seen[otherID] = true
					continue
				}
				seen[otherID] = true
				report.Violations = append(report.Violations, violation)
			}
		}
	}
	return report
}

// Repair audits the graph and fixes what it finds: half-applied edges are
// completed on the missing side, while duplicates, self references and
// dangling IDs are dropped. Run it while no other writers are active.
func (s *service) Repair(ctx context.Context) (*Report, error) {
	channels, err := s.dir.ResolveAll(ctx)
	if err != nil {
		return nil, err
	}
	report := audit(channels)
	if report.Healthy() {
		return report, nil
	}

	byID := make(map[string]*model.Channel, len(channels))
	for _, channel := range channels {
		byID[channel.ID] = channel
	}

	dirty := make(map[string]bool)
	for _, v := range report.Violations {
		channel := byID[v.ChannelID]
		list := channel.List(v.List)

		switch v.Kind {
		case Duplicate:
			*list, _ = edgeset.Dedupe(*list)
		case SelfReference, Dangling:
			*list, _ = edgeset.Remove(v.OtherID, *list)
		case Asymmetric:
			other := byID[v.OtherID]
			mirror := other.List(v.List.Mirror())
			*mirror, _ = edgeset.Add(channel.ID, *mirror)
			dirty[other.ID] = true
			continue
		}
		dirty[channel.ID] = true
	}

	var failures []error
	for _, channel := range channels {
		if !dirty[channel.ID] {
			continue
		}
		if err := s.dir.Save(ctx, channel); err != nil {
			s.log.Warn("repair failed", zap.String("channel_id", channel.ID), zap.Error(err))
			failures = append(failures, err)
			continue
		}
		report.Repaired++
	}

	s.log.Info("repair finished",
		zap.Int("violations", len(report.Violations)),
		zap.Int("channels_repaired", report.Repaired))
	return report, errors.Join(failures...)
}
