package token

import (
	"fmt"

	"github.com/ember-labs/emberledger/internal/ledger"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// RewardPolicy decides, per transfer, whether a block reward is minted
// to the proposer. The reward is staged on the same changeset as the
// transfer, before it, so both commit or fail as one unit.
//
// The policy fires only for caller-initiated transfers. The seed mint
// at initialization and explicit burns never trigger it: no proposer
// context exists at deploy time, and a burn must not credit a third
// party.
type RewardPolicy struct {
	supply *ledger.Supply
}

// NewRewardPolicy creates a reward policy minting through the given
// supply controller.
func NewRewardPolicy(supply *ledger.Supply) *RewardPolicy {
	return &RewardPolicy{supply: supply}
}

// Apply stages the reward mint for a transfer from -> to, if one is
// due. A reward is due when the proposer is a non-zero identity
// distinct from both transfer parties and the rate is positive.
// Returns whether a reward was staged. A cap failure here aborts the
// whole transfer.
func (p *RewardPolicy) Apply(cs *ledger.Changeset, from, to, proposer types.Address, rate *uint256.Int) (bool, error) {
	if proposer.IsZero() || proposer == from || proposer == to {
		return false, nil
	}
	if rate == nil || rate.IsZero() {
		return false, nil
	}
	if err := p.supply.Mint(cs, proposer, rate); err != nil {
		return false, fmt.Errorf("block reward to %s: %w", proposer, err)
	}
	return true, nil
}
