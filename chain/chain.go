package chain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Chain is the chain configuration the modules run against
type Chain struct {
	Name   string  `json:"name"`
	Params *Params `json:"params"`
}

// DefaultChain returns a development configuration with every fork enabled
// and no whitelisted endpoints
func DefaultChain() *Chain {
	forks := Forks{}
	for name, fork := range *AllForksEnabled {
		forks[name] = fork
	}

	return &Chain{
		Name: "dev",
		Params: &Params{
			Forks:   &forks,
			ChainID: 100,
		},
	}
}

// Import imports a chain from a filepath
func Import(chain string) (*Chain, error) {
	return ImportFromFile(chain)
}

// ImportFromFile imports a chain from a filepath
func ImportFromFile(filename string) (*Chain, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return importChain(data)
}

func importChain(content []byte) (*Chain, error) {
	var chain *Chain

	if err := json.Unmarshal(content, &chain); err != nil {
		return nil, err
	}

	if chain == nil || chain.Params == nil {
		return nil, fmt.Errorf("chain params are missing")
	}

	if err := chain.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chain params: %w", err)
	}

	return chain, nil
}
