package grpcbackend

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type contentServer interface {
	unary(ctx context.Context, method string, req any) (any, error)
}

// fakeContentServer answers unary calls through handlers keyed by method
// name and records the incoming metadata.
type fakeContentServer struct {
	mu       sync.Mutex
	handlers map[string]func(ctx context.Context, req any) (any, error)
	upload   func(stream grpc.ServerStream) error
	seen     map[string]metadata.MD
}

func newFakeContentServer() *fakeContentServer {
	return &fakeContentServer{
		handlers: map[string]func(context.Context, any) (any, error){},
		seen:     map[string]metadata.MD{},
	}
}

func (s *fakeContentServer) handle(method string, fn func(ctx context.Context, req any) (any, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = fn
}

func (s *fakeContentServer) metadataFor(method string) metadata.MD {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[method]
}

func (s *fakeContentServer) unary(ctx context.Context, method string, req any) (any, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	s.mu.Lock()
	s.seen[method] = md
	fn := s.handlers[method]
	s.mu.Unlock()
	if fn == nil {
		return &emptypb.Empty{}, nil
	}
	return fn(ctx, req)
}

func unaryMethod[Req any, PReq interface {
	*Req
}](name string) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			return srv.(contentServer).unary(ctx, name, in)
		},
	}
}

func serviceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*contentServer)(nil),
		Methods: []grpc.MethodDesc{
			unaryMethod[emptypb.Empty]("GetStories"),
			unaryMethod[wrapperspb.StringValue]("GetVersesByTestament"),
			unaryMethod[emptypb.Empty]("GetDailyVerse"),
			unaryMethod[emptypb.Empty]("GetCallerUserProfile"),
			unaryMethod[structpb.Struct]("SaveCallerUserProfile"),
			unaryMethod[wrapperspb.StringValue]("GetUserProfile"),
			unaryMethod[emptypb.Empty]("IsCallerAdmin"),
			unaryMethod[emptypb.Empty]("GetCallerUserRole"),
			unaryMethod[structpb.Struct]("AssignCallerUserRole"),
		},
		Streams: []grpc.StreamDesc{{
			StreamName:    "UploadImage",
			ClientStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				fake := srv.(*fakeContentServer)
				md, _ := metadata.FromIncomingContext(stream.Context())
				fake.mu.Lock()
				fake.seen["UploadImage"] = md
				upload := fake.upload
				fake.mu.Unlock()
				if upload == nil {
					return stream.SendMsg(&emptypb.Empty{})
				}
				return upload(stream)
			},
		}},
	}
}

// startServer serves fake over an in-memory listener and returns a connected client.
func startServer(t *testing.T, fake *fakeContentServer, opts ...Option) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	srv.RegisterService(serviceDesc(), fake)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient() error = %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	client, ok := New(conn, opts...).(*Client)
	if !ok {
		t.Fatalf("New() did not return *Client")
	}
	return client
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("structpb.NewStruct() error = %v", err)
	}
	return s
}

func signedIn() content.Caller {
	return content.Caller{Principal: "user-1", Token: "tok-1"}
}
