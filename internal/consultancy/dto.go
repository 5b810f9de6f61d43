// AngelaMos | 2026
// dto.go

package consultancy

import (
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type CreateCaseRequest struct {
	Issue string `json:"issue" validate:"required,max=5000"`
}

// UpdateCaseRequest is the admin's answer to a case. Fee is in rupees.
type UpdateCaseRequest struct {
	Status   string `json:"status,omitempty"   validate:"omitempty,oneof=PENDING SOLUTION_READY COMPLETED"`
	Solution string `json:"solution,omitempty" validate:"max=10000"`
	Fee      int64  `json:"fee,omitempty"      validate:"gte=0"`
}

type CasesResponse struct {
	Cases []model.Case `json:"cases"`
}
