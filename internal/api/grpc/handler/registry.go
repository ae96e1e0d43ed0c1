package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/xcard-server/internal/api/grpc/registrypb"
	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
)

// RegistryService defines the registry operations exposed over gRPC.
type RegistryService interface {
	RegisterOrUpdate(ctx context.Context, profile model.Profile) (model.Registration, error)
	Lookup(ctx context.Context, username string) (model.UserCard, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// Registry handles gRPC endpoints of xcard.v1.Registry.
type Registry struct {
	registryService RegistryService
	logger          *logger.Logger
}

var _ registrypb.RegistryServer = (*Registry)(nil)

func NewRegistry(registryService RegistryService, logger *logger.Logger) *Registry {
	return &Registry{
		registryService: registryService,
		logger:          logger,
	}
}

func (h *Registry) RegisterOrUpdate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	profile, err := profileFromStruct(req)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Registry handler: processing register request", "username", profile.Username)

	reg, err := h.registryService.RegisterOrUpdate(ctx, profile)
	if err != nil {
		h.logger.Error("Registry handler: register failed", "username", profile.Username, "error", err)
		return nil, handleError(err)
	}

	resp, err := registrationStruct(reg)
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}

func (h *Registry) Lookup(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	card, err := h.registryService.Lookup(ctx, req.GetValue())
	if err != nil {
		return nil, handleError(err)
	}

	resp, err := cardStruct(card)
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}

func (h *Registry) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	stats, err := h.registryService.Stats(ctx)
	if err != nil {
		h.logger.Error("Registry handler: stats failed", "error", err)
		return nil, handleError(err)
	}

	resp, err := statsStruct(stats)
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}
