package responses

import (
	"github.com/cyphera/delegatable/types/business"
)

// DispatchResponse reports one result per executed batch item.
type DispatchResponse struct {
	Results []business.DispatchResult `json:"results"`
}

// RevokedResponse is the result of a revocation-state query.
type RevokedResponse struct {
	Revoked bool `json:"revoked"`
}

// PublisherResponse is the result of a publisher-membership query.
type PublisherResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}

// MetadataResponse is one registry row.
type MetadataResponse struct {
	ChainID     string   `json:"chainId"`
	Contract    string   `json:"contract"`
	Method      string   `json:"method"`
	Language    string   `json:"language"`
	Description string   `json:"description"`
	Inputs      []string `json:"inputs"`
}
