package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	notifierrpc "wearlog/internal/modules/alert/adapter/out/rpc"
	"wearlog/internal/modules/alert/domain"
	alertout "wearlog/internal/modules/alert/port/out"
	apperrors "wearlog/internal/platform/errors"
)

const (
	startTimeout = 3 * time.Second
	callTimeout  = 5 * time.Second
)

// Manifest locates the notifier plugin binary. It lives as a small JSON
// file next to the database.
type Manifest struct {
	Name   string `json:"name"`
	Binary string `json:"binary"`
}

func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Manifest{}, apperrors.ErrNoNotifier
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read notifier manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse notifier manifest %s: %w", path, err)
	}
	if manifest.Binary == "" {
		return Manifest{}, fmt.Errorf("notifier manifest %s: missing binary", path)
	}
	return manifest, nil
}

// PluginNotifier delivers intents through an out-of-process plugin spoken
// to over gRPC. Each call starts the plugin, makes the call, and kills it.
type PluginNotifier struct {
	manifest Manifest
}

func NewPluginNotifier(manifest Manifest) alertout.Notifier {
	return &PluginNotifier{manifest: manifest}
}

func (n *PluginNotifier) Notify(ctx context.Context, intent domain.Intent) error {
	client, closeFn, err := n.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx)
	defer cancel()
	response, err := client.Deliver(callCtx, &notifierrpc.DeliverRequest{
		Kind:  string(intent.Kind),
		Title: intent.Title,
		Body:  intent.Body,
		At:    intent.At.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("deliver: %w", err)
	}
	if !response.Accepted {
		return fmt.Errorf("notifier %s rejected %s: %s", n.manifest.Name, intent.Kind, response.Error)
	}
	return nil
}

func (n *PluginNotifier) Describe(ctx context.Context) (alertout.Description, error) {
	client, closeFn, err := n.connect()
	if err != nil {
		return alertout.Description{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return alertout.Description{}, fmt.Errorf("get metadata: %w", err)
	}
	return alertout.Description{Name: meta.Name, Version: meta.Version}, nil
}

func (n *PluginNotifier) connect() (notifierrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifierrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifierrpc.PluginMap(nil),
		Cmd:              exec.Command(n.manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(notifierrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier: %w", err)
	}
	typed, ok := raw.(notifierrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, callTimeout)
}
