package relationship

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/edgeset"
	"github.com/Taichi-iskw/followban/internal/model"
)

// edgeOp is one direction of edge mutation: link or unlink
type edgeOp struct {
	name     string
	apply    func(id string, list []string) ([]string, bool)
	failCode string
}

var (
	link   = edgeOp{name: "link", apply: edgeset.Add, failCode: apperrors.CodeConflict}
	unlink = edgeOp{name: "unlink", apply: edgeset.Remove, failCode: apperrors.CodeNotConnected}
)

func (op edgeOp) failure(rel model.Relation, actor, subject *model.Channel) error {
	var message string
	switch {
	case rel == model.Follow && op.name == link.name:
		message = fmt.Sprintf("%q already follows %q", actor.Username, subject.Username)
	case rel == model.Follow:
		message = fmt.Sprintf("%q does not follow %q", actor.Username, subject.Username)
	case op.name == link.name:
		message = fmt.Sprintf("%q has already banned %q", actor.Username, subject.Username)
	default:
		message = fmt.Sprintf("%q has not banned %q", actor.Username, subject.Username)
	}
	return apperrors.New(op.failCode, message)
}

// Follow records that follower follows followed and returns the follower
func (s *service) Follow(ctx context.Context, follower, followed string) (*model.Channel, error) {
	return s.pairByUsername(ctx, model.Follow, link, follower, followed)
}

// Unfollow removes the follow edge and returns the follower
func (s *service) Unfollow(ctx context.Context, follower, followed string) (*model.Channel, error) {
	return s.pairByUsername(ctx, model.Follow, unlink, follower, followed)
}

// Ban records that judge banned victim and returns the judge
func (s *service) Ban(ctx context.Context, judge, victim string) (*model.Channel, error) {
	return s.pairByUsername(ctx, model.Ban, link, judge, victim)
}

// Unban removes the ban edge and returns the judge
func (s *service) Unban(ctx context.Context, judge, victim string) (*model.Channel, error) {
	return s.pairByUsername(ctx, model.Ban, unlink, judge, victim)
}

func (s *service) pairByUsername(ctx context.Context, rel model.Relation, op edgeOp, actorName, subjectName string) (*model.Channel, error) {
	var actor, subject *model.Channel
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		actor, err = s.dir.ResolveByUsername(gctx, actorName)
		return err
	})
	g.Go(func() (err error) {
		subject, err = s.dir.ResolveByUsername(gctx, subjectName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, notFound(actorName)
	}
	if subject == nil {
		return nil, notFound(subjectName)
	}

	return s.mutatePair(ctx, rel, op, actor, subject)
}

// mutatePair applies op to both halves of the edge: the actor's side first,
// then the subject's. A side that already reflects op is left alone, so a
// retry after a half-applied call completes the missing half instead of
// failing. op's failure is reported only when neither side needed a change.
// There is no rollback: when the subject write fails after the actor write
// landed, the error is returned and the edge stays half-applied until retried.
func (s *service) mutatePair(ctx context.Context, rel model.Relation, op edgeOp, actor, subject *model.Channel) (*model.Channel, error) {
	if actor.ID == subject.ID {
		return nil, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("channel %q cannot %s itself", actor.Username, rel.Name))
	}

	actorList, actorChanged := op.apply(subject.ID, *actor.List(rel.ActorList))
	subjectList, subjectChanged := op.apply(actor.ID, *subject.List(rel.SubjectList))
	if !actorChanged && !subjectChanged {
		return nil, op.failure(rel, actor, subject)
	}

	fields := []zap.Field{
		zap.String("relation", rel.Name),
		zap.String("op", op.name),
		zap.String("actor_id", actor.ID),
		zap.String("subject_id", subject.ID),
	}

	if actorChanged {
		*actor.List(rel.ActorList) = actorList
		if err := s.dir.Save(ctx, actor); err != nil {
			return nil, err
		}
	} else {
		s.log.Info("completing half-applied edge on subject side", fields...)
	}

	if subjectChanged {
		*subject.List(rel.SubjectList) = subjectList
		if err := s.dir.Save(ctx, subject); err != nil {
			if actorChanged {
				s.log.Warn("edge left half-applied, retry to complete", append(fields, zap.Error(err))...)
			}
			return nil, err
		}
	} else {
		s.log.Info("completing half-applied edge on actor side", fields...)
	}

	s.log.Debug("edge updated", fields...)
	return actor, nil
}
