package rule

import (
	"context"
	"encoding/json"

	"github.com/tidwall/jsonc"

	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// wireRule mirrors the §6 RuleJSON schema:
//
//	{ "lhs": GraphJSON, "p": GraphJSON, "rhs": GraphJSON,
//	  "p_lhs": {S:S}, "p_rhs": {S:S} }
type wireRule struct {
	LHS  json.RawMessage   `json:"lhs"`
	P    json.RawMessage   `json:"p"`
	RHS  json.RawMessage   `json:"rhs"`
	PLHS map[string]string `json:"p_lhs"`
	PRHS map[string]string `json:"p_rhs"`
}

// DecodeJSON builds a Rule from RuleJSON data.
func DecodeJSON(ctx context.Context, data []byte) (*Rule, error) {
	var wire wireRule
	if err := json.Unmarshal(jsonc.ToJSON(data), &wire); err != nil {
		return nil, rgerr.Wrap(rgerr.RuleError, err, "invalid rule JSON")
	}

	l, err := graph.DecodeJSON(ctx, wire.LHS)
	if err != nil {
		return nil, err
	}
	p, err := graph.DecodeJSON(ctx, wire.P)
	if err != nil {
		return nil, err
	}
	r, err := graph.DecodeJSON(ctx, wire.RHS)
	if err != nil {
		return nil, err
	}

	return New(l, p, r, homo.Mapping(wire.PLHS), homo.Mapping(wire.PRHS))
}

// EncodeJSON renders r as RuleJSON.
func EncodeJSON(r *Rule) ([]byte, error) {
	lhs, err := graph.EncodeJSON(r.L)
	if err != nil {
		return nil, err
	}
	p, err := graph.EncodeJSON(r.P)
	if err != nil {
		return nil, err
	}
	rhs, err := graph.EncodeJSON(r.R)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireRule{
		LHS:  lhs,
		P:    p,
		RHS:  rhs,
		PLHS: map[string]string(r.PL),
		PRHS: map[string]string(r.PR),
	})
}
