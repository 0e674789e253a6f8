package render

import (
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// Renderer writes a command result as text
type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[Status]                          = (*StatusRenderer)(nil)
	_ Renderer[ProposalList]                    = (*ProposalsRenderer)(nil)
	_ Renderer[*models.ActionResult]            = (*ActionRenderer)(nil)
	_ Renderer[*usecase.InspectContractsResult] = (*ContractsRenderer)(nil)
)
