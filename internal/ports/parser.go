package ports

import (
	"io"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

type Parser interface {
	Parse(r io.Reader) ([]domain.CandidateLink, error)
}
