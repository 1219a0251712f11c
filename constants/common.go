package constants

// Common string constants used throughout the codebase
const (
	// Stages
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"

	// Headers
	OwnerKeyHeader      = "X-Owner-Key"
	CorrelationIDHeader = "X-Correlation-ID"

	// MaxChainLength caps delegation chain walks. Chains are walked
	// iteratively, never recursively, and anything past this bound is
	// rejected outright.
	MaxChainLength = 10

	// DefaultQueue is the replay-protection queue used by signers that do
	// not run parallel invocation streams.
	DefaultQueue uint64 = 0
)

// EIP-712 domain for every payload this engine hashes. Signatures produced
// by standard wallet tooling against this domain verify here unchanged.
const (
	DomainName    = "Delegatable"
	DomainVersion = "1"
)
