package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-dao/internal/domain"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
)

// Status is the dashboard header: who is connected and what the DAO holds
type Status struct {
	Network   string               `json:"network" yaml:"network"`
	ChainID   uint64               `json:"chainId" yaml:"chainId"`
	DAO       common.Address       `json:"dao" yaml:"dao"`
	Connected bool                 `json:"connected" yaml:"connected"`
	Identity  *common.Address      `json:"identity,omitempty" yaml:"identity,omitempty"`
	IsOwner   bool                 `json:"isOwner" yaml:"isOwner"`
	Treasury  string               `json:"treasuryEther" yaml:"treasuryEther"`
	Snapshot  *models.ViewSnapshot `json:"snapshot" yaml:"snapshot"`
}

// NewStatus assembles the status of session against snap
func NewStatus(network *config.Network, session models.SessionState, snap *models.ViewSnapshot) Status {
	status := Status{
		Connected: session.Connected(),
		Snapshot:  snap,
	}
	if network != nil {
		status.Network = network.Name
		status.ChainID = network.ChainID
		status.DAO = network.Contracts.DAO
	}
	if session.Connected() {
		identity := session.Identity
		status.Identity = &identity
	}
	if snap != nil {
		status.IsOwner = domain.IsOwner(session.Identity, snap.Owner)
		status.Treasury = FormatEther(snap.Treasury)
	}
	return status
}

// StatusRenderer renders the dashboard header
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// Render writes the status block
func (r *StatusRenderer) Render(status Status) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("🏛  DAO %s", status.DAO.Hex()))
	if status.Network != "" {
		fmt.Fprintf(r.out, "%s %s (chain %d)\n", labelStyle.Sprint("Network:  "), status.Network, status.ChainID)
	}

	if !status.Connected || status.Identity == nil {
		fmt.Fprintf(r.out, "%s not connected\n", labelStyle.Sprint("Account:  "))
	} else {
		account := addressStyle.Sprint(status.Identity.Hex())
		if status.IsOwner {
			account += " " + ownerStyle.Sprint("[owner]")
		}
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Account:  "), account)
	}

	snap := status.Snapshot
	if snap == nil {
		return nil
	}
	if snap.EntitlementKnown {
		fmt.Fprintf(r.out, "%s %d\n", labelStyle.Sprint("NFTs:     "), snap.Entitlement)
	}
	fmt.Fprintf(r.out, "%s %s ETH\n", labelStyle.Sprint("Treasury: "), status.Treasury)
	fmt.Fprintf(r.out, "%s %d\n", labelStyle.Sprint("Proposals:"), snap.ProposalCount)

	if snap.EntitlementKnown && snap.Entitlement == 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("You own no NFTs. Buy one to vote on proposals."))
	}
	return nil
}
