// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"crypto/rand"
	"math/big"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
)

// friendCodeService implements the adapter.FriendCodeService interface.
type friendCodeService struct{}

// NewFriendCodeService creates a new friend code service instance.
func NewFriendCodeService() adapter.FriendCodeService {
	return &friendCodeService{}
}

// Generate returns a new share code drawn from the unambiguous alphabet
// (no I, O, 0 or 1). Codes are random, not sequential; uniqueness is the
// caller's concern.
func (s *friendCodeService) Generate() string {
	code := make([]byte, entity.FriendCodeLength)
	max := big.NewInt(int64(len(entity.FriendCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken.
			panic(err)
		}
		code[i] = entity.FriendCodeAlphabet[n.Int64()]
	}
	return string(code)
}
