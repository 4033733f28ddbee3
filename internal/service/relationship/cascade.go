package relationship

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/edgeset"
	"github.com/Taichi-iskw/followban/internal/model"
)

// DeleteChannel unwinds every edge touching the channel, then deletes its
// record. Cascade steps are best-effort: a failed step is logged and the rest
// still run, but the record is kept and CASCADE_INCOMPLETE returned so the
// call can be repeated once the store recovers.
func (s *service) DeleteChannel(ctx context.Context, username string) (*model.Channel, error) {
	channel, err := s.mustResolve(ctx, username)
	if err != nil {
		return nil, err
	}

	var failures []error
	for _, kind := range model.ListKinds {
		rel, isActor := kind.RelationOf()
		ids, _ := edgeset.Dedupe(*channel.List(kind))

		for _, otherID := range ids {
			actorID, subjectID := channel.ID, otherID
			if !isActor {
				actorID, subjectID = otherID, channel.ID
			}

			if err := s.unlinkByID(ctx, rel, actorID, subjectID); err != nil {
				s.log.Warn("cascade step failed",
					zap.String("channel_id", channel.ID),
					zap.String("list", string(kind)),
					zap.String("other_id", otherID),
					zap.Error(err))
				failures = append(failures, fmt.Errorf("%s %s: %w", kind, otherID, err))
			}
		}
	}

	if len(failures) > 0 {
		return nil, apperrors.Wrap(errors.Join(failures...), apperrors.CodeCascade,
			fmt.Sprintf("%d edge(s) of %q could not be removed, channel kept", len(failures), username))
	}

	// reload so the returned record reflects what was actually deleted
	remaining, err := s.dir.ResolveByID(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	if remaining == nil {
		return nil, notFound(username)
	}
	if err := s.dir.Remove(ctx, channel.ID); err != nil {
		return nil, err
	}

	s.log.Info("channel deleted", zap.String("username", remaining.Username), zap.String("channel_id", channel.ID))
	return remaining, nil
}

// unlinkByID removes one edge identified by durable IDs, reloading both
// records so each step sees the writes of the previous one. A far side that no
// longer exists holds nothing to strip and is skipped, as is an edge already
// gone from both sides.
func (s *service) unlinkByID(ctx context.Context, rel model.Relation, actorID, subjectID string) error {
	if actorID == subjectID {
		// self edge; it disappears with the record
		return nil
	}

	var actor, subject *model.Channel
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		actor, err = s.dir.ResolveByID(gctx, actorID)
		return err
	})
	g.Go(func() (err error) {
		subject, err = s.dir.ResolveByID(gctx, subjectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if actor == nil || subject == nil {
		s.log.Warn("skipping edge to a channel that no longer exists",
			zap.String("relation", rel.Name),
			zap.String("actor_id", actorID),
			zap.String("subject_id", subjectID),
			zap.Bool("actor_exists", actor != nil),
			zap.Bool("subject_exists", subject != nil))
		return nil
	}

	_, err := s.mutatePair(ctx, rel, unlink, actor, subject)
	if apperrors.Is(err, apperrors.CodeNotConnected) {
		return nil
	}
	return err
}
