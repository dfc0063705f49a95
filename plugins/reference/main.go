package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-plugin"

	notifierrpc "wearlog/internal/modules/alert/adapter/out/rpc"
)

// Reference notifier: prints every delivered notification on stderr, which
// go-plugin forwards to the host's log output.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifierrpc.Empty) (*notifierrpc.Metadata, error) {
	return &notifierrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
	}, nil
}

func (s *server) Deliver(_ context.Context, in *notifierrpc.DeliverRequest) (*notifierrpc.DeliverResponse, error) {
	if in.Title == "" {
		return &notifierrpc.DeliverResponse{Accepted: false, Error: "empty title"}, nil
	}
	_, _ = fmt.Fprintf(os.Stderr, "notification %s at %s: %s / %s\n", in.Kind, in.At, in.Title, in.Body)
	return &notifierrpc.DeliverResponse{Accepted: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifierrpc.HandshakeConfig,
		Plugins:         notifierrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
