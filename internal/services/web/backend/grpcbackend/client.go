// Package grpcbackend implements backend.Client over a gRPC connection.
//
// The content service speaks protobuf well-known types: unary calls exchange
// emptypb, wrapperspb and structpb messages, and image uploads stream
// wrapperspb.BytesValue chunks.
package grpcbackend

import (
	"context"
	"strconv"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/shared/grpcauthctx"
	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	"github.com/louisbranch/sacredverses/internal/services/web/backend/wire"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "sacredverses.content.v1.ContentService"

// Full method names.
const (
	MethodGetStories            = "/" + ServiceName + "/GetStories"
	MethodGetVersesByTestament  = "/" + ServiceName + "/GetVersesByTestament"
	MethodGetDailyVerse         = "/" + ServiceName + "/GetDailyVerse"
	MethodGetCallerUserProfile  = "/" + ServiceName + "/GetCallerUserProfile"
	MethodSaveCallerUserProfile = "/" + ServiceName + "/SaveCallerUserProfile"
	MethodGetUserProfile        = "/" + ServiceName + "/GetUserProfile"
	MethodIsCallerAdmin         = "/" + ServiceName + "/IsCallerAdmin"
	MethodGetCallerUserRole     = "/" + ServiceName + "/GetCallerUserRole"
	MethodAssignCallerUserRole  = "/" + ServiceName + "/AssignCallerUserRole"
	MethodUploadImage           = "/" + ServiceName + "/UploadImage"
)

// Metadata keys carried on every call.
const (
	MetadataPrincipal        = grpcauthctx.PrincipalHeader
	MetadataAuthorization    = grpcauthctx.AuthorizationHeader
	MetadataImageTarget      = "x-image-target"
	MetadataImageIndex       = "x-image-index"
	MetadataImageContentType = "x-image-content-type"
)

// Client is a backend.Client backed by a gRPC connection.
type Client struct {
	conn      grpc.ClientConnInterface
	chunkSize int
}

var _ backend.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithChunkSize overrides the upload chunk size.
func WithChunkSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// New builds a Client over conn. A nil conn yields backend.Unavailable.
func New(conn grpc.ClientConnInterface, opts ...Option) backend.Client {
	if conn == nil {
		return backend.Unavailable{}
	}
	c := &Client{conn: conn, chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func callerContext(ctx context.Context, caller content.Caller) context.Context {
	ctx = grpcauthctx.WithPrincipal(ctx, caller.Key())
	if caller.IsAnonymous() {
		return ctx
	}
	return grpcauthctx.WithBearerToken(ctx, caller.Token)
}

func (c *Client) invoke(ctx context.Context, caller content.Caller, method string, req, resp any, unavailable string) error {
	if err := c.conn.Invoke(callerContext(ctx, caller), method, req, resp); err != nil {
		return mapError(err, unavailable)
	}
	return nil
}

func (c *Client) GetStories(ctx context.Context, caller content.Caller) ([]content.Story, error) {
	resp := &structpb.Struct{}
	if err := c.invoke(ctx, caller, MethodGetStories, &emptypb.Empty{}, resp, "stories are unavailable"); err != nil {
		return nil, err
	}
	return wire.DecodeStories(resp), nil
}

func (c *Client) GetVersesByTestament(ctx context.Context, caller content.Caller, testament content.Testament) ([]content.Verse, error) {
	resp := &structpb.Struct{}
	req := wrapperspb.String(string(testament))
	if err := c.invoke(ctx, caller, MethodGetVersesByTestament, req, resp, "verses are unavailable"); err != nil {
		return nil, err
	}
	return wire.DecodeVerses(resp), nil
}

func (c *Client) GetDailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error) {
	resp := &structpb.Struct{}
	if err := c.invoke(ctx, caller, MethodGetDailyVerse, &emptypb.Empty{}, resp, "daily verse is unavailable"); err != nil {
		return content.Verse{}, err
	}
	verse, err := wire.DecodeVerse(resp)
	if err != nil {
		return content.Verse{}, apperrors.Wrap(apperrors.KindUnavailable, "error.backend.unavailable", "daily verse is unavailable", err)
	}
	return verse, nil
}

func (c *Client) GetCallerUserProfile(ctx context.Context, caller content.Caller) (content.Option[content.UserProfile], error) {
	resp := &structpb.Struct{}
	if err := c.invoke(ctx, caller, MethodGetCallerUserProfile, &emptypb.Empty{}, resp, "profile is unavailable"); err != nil {
		return content.None[content.UserProfile](), err
	}
	return wire.DecodeProfile(resp), nil
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, caller content.Caller, profile content.UserProfile) error {
	req := wire.EncodeProfile(profile)
	return c.invoke(ctx, caller, MethodSaveCallerUserProfile, req, &emptypb.Empty{}, "profile could not be saved")
}

func (c *Client) GetUserProfile(ctx context.Context, caller content.Caller, principal string) (content.Option[content.UserProfile], error) {
	resp := &structpb.Struct{}
	req := wrapperspb.String(strings.TrimSpace(principal))
	if err := c.invoke(ctx, caller, MethodGetUserProfile, req, resp, "profile is unavailable"); err != nil {
		return content.None[content.UserProfile](), err
	}
	return wire.DecodeProfile(resp), nil
}

func (c *Client) IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error) {
	resp := &wrapperspb.BoolValue{}
	if err := c.invoke(ctx, caller, MethodIsCallerAdmin, &emptypb.Empty{}, resp, "role is unavailable"); err != nil {
		return false, err
	}
	return resp.GetValue(), nil
}

func (c *Client) GetCallerUserRole(ctx context.Context, caller content.Caller) (content.Role, error) {
	resp := &wrapperspb.StringValue{}
	if err := c.invoke(ctx, caller, MethodGetCallerUserRole, &emptypb.Empty{}, resp, "role is unavailable"); err != nil {
		return content.RoleGuest, err
	}
	role, err := content.ParseRole(resp.GetValue())
	if err != nil {
		return content.RoleGuest, nil
	}
	return role, nil
}

func (c *Client) AssignCallerUserRole(ctx context.Context, caller content.Caller, principal string, role content.Role) error {
	req, err := structpb.NewStruct(map[string]any{
		wire.FieldPrincipal: strings.TrimSpace(principal),
		wire.FieldRole:      string(role),
	})
	if err != nil {
		return err
	}
	return c.invoke(ctx, caller, MethodAssignCallerUserRole, req, &emptypb.Empty{}, "role could not be assigned")
}

func imageTarget(isStory bool) string {
	if isStory {
		return "story"
	}
	return "verse"
}

func imageMetadata(ctx context.Context, image *content.Image, isStory bool, index int) context.Context {
	return metadata.AppendToOutgoingContext(ctx,
		MetadataImageTarget, imageTarget(isStory),
		MetadataImageIndex, strconv.Itoa(index),
		MetadataImageContentType, image.ContentType(),
	)
}
