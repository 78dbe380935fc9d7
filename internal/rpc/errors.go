package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/progress"
)

var notFound = []error{
	engine.ErrUnknownPack,
	engine.ErrCardNotFound,
	engine.ErrListingNotFound,
	progress.ErrQuestNotFound,
	progress.ErrSetNotFound,
}

var failedPrecondition = []error{
	engine.ErrCardLocked,
	engine.ErrCardInLineup,
	engine.ErrLineupIncomplete,
	engine.ErrBenchFull,
	engine.ErrWheelCooldown,
	progress.ErrQuestClaimed,
	progress.ErrQuestIncomplete,
	progress.ErrSetClaimed,
	progress.ErrSetIncomplete,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// toStatus maps engine rejections onto gRPC codes. Errors that already carry a
// status pass through.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, engine.ErrInsufficientFunds):
		return status.Error(codes.ResourceExhausted, err.Error())
	case isAny(err, notFound):
		return status.Error(codes.NotFound, err.Error())
	case isAny(err, failedPrecondition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, engine.ErrInvalidStake), errors.Is(err, engine.ErrUnknownSlot), errors.Is(err, engine.ErrBenchIndex):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
