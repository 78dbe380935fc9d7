package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/session"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wager"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// Server implements EngineServer on top of a save slot session.
type Server struct {
	session *session.Session
	log     *zap.Logger
}

var _ EngineServer = (*Server)(nil)

func NewServer(sess *session.Session, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{session: sess, log: log}
}

// NewGRPCServer builds a grpc.Server with the engine and health services registered.
func NewGRPCServer(sess *session.Session, log *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	srv := NewServer(sess, log)
	opts = append(opts, grpc.ChainUnaryInterceptor(srv.logCalls))
	gs := grpc.NewServer(opts...)
	RegisterEngineServer(gs, srv)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs
}

func (s *Server) logCalls(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	st, _ := status.FromError(err)
	s.log.Debug("rpc",
		zap.String("method", info.FullMethod),
		zap.String("code", st.Code().String()),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, err
}

type stateReply struct {
	State      state.GameState `json:"state"`
	TeamRating float64         `json:"teamRating"`
	Collection int             `json:"collectionValue"`
}

type openRequest struct {
	PackID string `json:"packId"`
}

type openReply struct {
	Pack  pack.Definition `json:"pack"`
	Cards []card.Card     `json:"cards"`
	Coins int             `json:"coins"`
}

type wagerRequest struct {
	Stake int `json:"stake"`
}

type wagerReply struct {
	Outcome      wager.Outcome   `json:"outcome"`
	Coins        int             `json:"coins"`
	NextOpponent *wager.Opponent `json:"nextOpponent"`
}

type spinReply struct {
	Result wheel.Result `json:"result"`
	Coins  int          `json:"coins"`
}

type claimRequest struct {
	ID string `json:"id"`
}

type claimReply struct {
	ID     string `json:"id"`
	Reward int    `json:"reward"`
	Coins  int    `json:"coins"`
}

type cardRequest struct {
	CardID string `json:"cardId"`
}

type cardReply struct {
	Card  card.Card `json:"card"`
	Coins int       `json:"coins"`
}

// reply maps err or encodes v.
func reply(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeResponse(v)
}

func (s *Server) GetState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := decodeRequest(in, &struct{}{}); err != nil {
		return nil, err
	}
	gs, err := s.session.View(ctx)
	return reply(stateReply{State: gs, TeamRating: gs.TeamRating(), Collection: gs.CollectionValue()}, err)
}

func (s *Server) OpenPack(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req openRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	var res engine.OpenResult
	gs, err := s.session.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, out, err := e.BuyPack(cur, req.PackID, s.session.Clock().Now())
		res = out
		return next, err
	})
	return reply(openReply{Pack: res.Pack, Cards: res.Cards, Coins: gs.Coins}, err)
}

func (s *Server) PlaceWager(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wagerRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	var out wager.Outcome
	gs, err := s.session.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, res, err := e.PlaceWager(cur, req.Stake)
		out = res
		return next, err
	})
	return reply(wagerReply{Outcome: out, Coins: gs.Coins, NextOpponent: gs.ActiveWagerOpponent}, err)
}

func (s *Server) SpinWheel(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := decodeRequest(in, &struct{}{}); err != nil {
		return nil, err
	}
	var res wheel.Result
	gs, err := s.session.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, out, err := e.SpinWheel(cur, s.session.Clock().Now())
		res = out
		return next, err
	})
	return reply(spinReply{Result: res, Coins: gs.Coins}, err)
}

func (s *Server) claim(ctx context.Context, in *structpb.Struct, op func(*engine.Engine, state.GameState, string) (state.GameState, int, error)) (*structpb.Struct, error) {
	var req claimRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	var reward int
	gs, err := s.session.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, paid, err := op(e, cur, req.ID)
		reward = paid
		return next, err
	})
	return reply(claimReply{ID: req.ID, Reward: reward, Coins: gs.Coins}, err)
}

func (s *Server) ClaimQuest(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.claim(ctx, in, (*engine.Engine).ClaimQuest)
}

func (s *Server) ClaimSet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.claim(ctx, in, (*engine.Engine).ClaimSet)
}

func (s *Server) SellCard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req cardRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	var sold card.Card
	gs, err := s.session.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, c, err := e.SellCard(cur, req.CardID)
		sold = c
		return next, err
	})
	return reply(cardReply{Card: sold, Coins: gs.Coins}, err)
}
