package dto

import (
	"time"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// VoucherResponse defines the data returned for a trade voucher.
type VoucherResponse struct {
	VoucherID     string               `json:"voucherID"`
	TransactionID string               `json:"transactionID"`
	Code          string               `json:"code"`
	Status        domain.VoucherStatus `json:"status"`
	CancelledAt   *time.Time           `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:     v.VoucherID,
		TransactionID: v.TransactionID,
		Code:          v.Code,
		Status:        v.Status,
		CancelledAt:   v.CancelledAt,
		CreatedAt:     v.CreatedAt,
	}
}

// ToVoucherResponses converts a slice of domain.Voucher to []VoucherResponse.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	responses := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		responses[i] = ToVoucherResponse(&v)
	}
	return responses
}
