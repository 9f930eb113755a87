package rpc

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "quizgen"
	serviceName       = "upmind.quiz.v1.QuestionGenerator"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodGenerate    = "/" + serviceName + "/Generate"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "UPMIND_QUIZ_PLUGIN",
	MagicCookieValue: "upmind",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Categories []string `json:"categories"`
}

type GenerateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category"`
	Prompt      string   `json:"prompt"`
}

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int32    `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type GenerateResponse struct {
	Questions []Question `json:"questions"`
}

type QuestionGeneratorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error)
}

type QuestionGeneratorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error)
}

type questionGeneratorClient struct {
	conn *grpc.ClientConn
}

func NewQuestionGeneratorClient(conn *grpc.ClientConn) QuestionGeneratorClient {
	return &questionGeneratorClient{conn: conn}
}

func (c *questionGeneratorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *questionGeneratorClient) Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error) {
	out := &GenerateResponse{}
	if err := c.conn.Invoke(ctx, methodGenerate, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed server method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterQuestionGeneratorServer(server grpc.ServiceRegistrar, impl QuestionGeneratorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*QuestionGeneratorServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Generate", Handler: unary(methodGenerate, impl.Generate)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "quiz-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl QuestionGeneratorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterQuestionGeneratorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewQuestionGeneratorClient(conn), nil
}

func PluginMap(impl QuestionGeneratorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
