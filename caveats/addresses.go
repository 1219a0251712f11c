package caveats

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Well-known enforcer addresses. Caveat terms reference enforcers by
// address so externally produced delegations can be interpreted without any
// out-of-band registry exchange.
var (
	ExpirationEnforcerAddress    = common.HexToAddress("0x0000000000000000000000000000000000000101")
	AllowedTargetEnforcerAddress = common.HexToAddress("0x0000000000000000000000000000000000000102")
	AllowedMethodEnforcerAddress = common.HexToAddress("0x0000000000000000000000000000000000000103")
	LimitedCallsEnforcerAddress  = common.HexToAddress("0x0000000000000000000000000000000000000104")
	CELEnforcerAddress           = common.HexToAddress("0x0000000000000000000000000000000000000105")
)

// DefaultRegistry builds a registry with every built-in enforcer bound to
// its well-known address.
func DefaultRegistry() (*Registry, error) {
	celEnforcer, err := NewCELEnforcer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize CEL enforcer: %w", err)
	}

	registry := NewRegistry()
	registry.Register(ExpirationEnforcerAddress, NewExpirationEnforcer())
	registry.Register(AllowedTargetEnforcerAddress, AllowedTargetEnforcer{})
	registry.Register(AllowedMethodEnforcerAddress, AllowedMethodEnforcer{})
	registry.Register(LimitedCallsEnforcerAddress, LimitedCallsEnforcer{})
	registry.Register(CELEnforcerAddress, celEnforcer)
	return registry, nil
}
