package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// ContractsRenderer renders the configured contract addresses
type ContractsRenderer struct {
	out io.Writer
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer) *ContractsRenderer {
	return &ContractsRenderer{out: out}
}

// Render lists each contract with its explorer link and code check
func (r *ContractsRenderer) Render(result *usecase.InspectContractsResult) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("📦 Contracts on %s (chain %d)", result.Network, result.ChainID))
	fmt.Fprintln(r.out)

	for _, c := range result.Contracts {
		if c.Address == (common.Address{}) {
			fmt.Fprintf(r.out, "  %-12s %s\n", c.Name, labelStyle.Sprint("not configured"))
			continue
		}

		line := fmt.Sprintf("  %-12s %s", c.Name, addressStyle.Sprint(c.Address.Hex()))
		if c.Checked {
			if c.Deployed {
				line += " " + color.New(color.FgGreen).Sprint("✓")
			} else {
				line += " " + color.New(color.FgRed).Sprintf("✗ %s", c.Reason)
			}
		}
		fmt.Fprintln(r.out, line)
		if c.ExplorerURL != "" {
			fmt.Fprintf(r.out, "  %-12s %s\n", "", linkStyle.Sprint(c.ExplorerURL))
		}
	}
	return nil
}
