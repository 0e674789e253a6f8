package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ViewSnapshot is the refreshed view of the contract as seen by one session
// generation. It is replaced wholesale on every refresh.
type ViewSnapshot struct {
	Generation uint64         `json:"generation" yaml:"generation"`
	Identity   common.Address `json:"identity" yaml:"identity"`

	ProposalCount uint64         `json:"proposalCount" yaml:"proposalCount"`
	Owner         common.Address `json:"owner" yaml:"owner"`
	Treasury      *big.Int       `json:"treasury" yaml:"treasury"`

	Entitlement      uint64 `json:"entitlement" yaml:"entitlement"`
	EntitlementKnown bool   `json:"entitlementKnown" yaml:"entitlementKnown"`

	Proposals       []ProposalRecord `json:"proposals,omitempty" yaml:"proposals,omitempty"`
	ProposalsLoaded bool             `json:"proposalsLoaded" yaml:"proposalsLoaded"`
}

// Clone returns a deep copy so callers can't mutate the store's snapshot
func (s *ViewSnapshot) Clone() *ViewSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.Treasury != nil {
		out.Treasury = new(big.Int).Set(s.Treasury)
	}
	if s.Proposals != nil {
		out.Proposals = make([]ProposalRecord, len(s.Proposals))
		for i, p := range s.Proposals {
			out.Proposals[i] = p.clone()
		}
	}
	return &out
}

// Record returns the loaded record for id, if the proposal list is loaded
func (s *ViewSnapshot) Record(id uint64) (ProposalRecord, bool) {
	if s == nil || !s.ProposalsLoaded || id >= uint64(len(s.Proposals)) {
		return ProposalRecord{}, false
	}
	return s.Proposals[id], true
}

func (p ProposalRecord) clone() ProposalRecord {
	out := p
	if p.TargetItemID != nil {
		out.TargetItemID = new(big.Int).Set(p.TargetItemID)
	}
	if p.YesVotes != nil {
		out.YesVotes = new(big.Int).Set(p.YesVotes)
	}
	if p.NoVotes != nil {
		out.NoVotes = new(big.Int).Set(p.NoVotes)
	}
	return out
}
