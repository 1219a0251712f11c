package caveats

import (
	"context"
	"fmt"
	"sync"

	"github.com/cyphera/delegatable/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
)

// CELEnforcer evaluates a CEL predicate over the transaction being
// authorized. Terms are the UTF-8 CEL source; the expression must evaluate
// to exactly true, anything else (false, an error, a non-boolean) blocks.
// Compiled programs are cached by terms hash.
type CELEnforcer struct {
	mu       sync.RWMutex
	env      *cel.Env
	programs map[common.Hash]cel.Program
}

// NewCELEnforcer initializes the CEL environment with the attributes a
// caveat predicate may reference:
//
//	target          string  checksum hex of the transaction target
//	gas_limit       uint    the transaction gas bound
//	data            bytes   the raw call payload
//	delegation_hash string  hex digest of the delegation under evaluation
func NewCELEnforcer() (*CELEnforcer, error) {
	env, err := cel.NewEnv(
		cel.VariableDecls(
			decls.NewVariable("target", types.StringType),
			decls.NewVariable("gas_limit", types.UintType),
			decls.NewVariable("data", types.BytesType),
			decls.NewVariable("delegation_hash", types.StringType),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	return &CELEnforcer{
		env:      env,
		programs: make(map[common.Hash]cel.Program),
	}, nil
}

func (e *CELEnforcer) Enforce(ctx context.Context, _ UseCounter, terms []byte, tx business.Transaction, delegationHash common.Hash) error {
	if len(terms) == 0 {
		return fmt.Errorf("empty CEL terms")
	}
	prg, err := e.program(terms)
	if err != nil {
		return err
	}
	out, _, err := prg.ContextEval(ctx, map[string]any{
		"target":          tx.To.Hex(),
		"gas_limit":       tx.GasLimit,
		"data":            []byte(tx.Data),
		"delegation_hash": delegationHash.Hex(),
	})
	if err != nil {
		return fmt.Errorf("CEL evaluation failed: %w", err)
	}
	allowed, ok := out.Value().(bool)
	if !ok || !allowed {
		return fmt.Errorf("CEL predicate did not allow the transaction")
	}
	return nil
}

// program compiles the terms or returns the cached program for them.
func (e *CELEnforcer) program(terms []byte) (cel.Program, error) {
	key := crypto.Keccak256Hash(terms)

	e.mu.RLock()
	prg, ok := e.programs[key]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.programs[key]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(string(terms))
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compilation failed: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program construction failed: %w", err)
	}
	e.programs[key] = prg
	return prg, nil
}
