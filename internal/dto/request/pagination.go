package request

import "flight-booking/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"perPage" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page/perPage query values, falling back to defaults.
func NewPaginatedRequest(page, perPage string) PaginatedRequest {
	return PaginatedRequest{
		Page:    max(utils.ParseInt(page, 1), 1),
		PerPage: utils.ClampPerPage(utils.ParseInt(perPage, utils.DefaultPerPage)),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.PerPage)
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage)
}
