package network

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	tcnetwork "github.com/testcontainers/testcontainers-go/network"
)

// Network is a throwaway bridge network shared by the containers of one
// test suite.
type Network struct {
	network *testcontainers.DockerNetwork
}

func NewNetwork(ctx context.Context, projectName string) (*Network, error) {
	net, err := tcnetwork.New(ctx,
		tcnetwork.WithDriver(testcontainers.Bridge),
		tcnetwork.WithAttachable(),
		tcnetwork.WithLabels(map[string]string{
			"project": projectName,
			"purpose": "integration-test",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create docker network for %s: %w", projectName, err)
	}

	return &Network{network: net}, nil
}

func (n *Network) Name() string {
	return n.network.Name
}

// Remove is safe to call on a nil network, so suites can defer it before
// checking the constructor error.
func (n *Network) Remove(ctx context.Context) error {
	if n == nil || n.network == nil {
		return nil
	}
	if err := n.network.Remove(ctx); err != nil {
		return fmt.Errorf("remove docker network %s: %w", n.network.Name, err)
	}
	return nil
}
