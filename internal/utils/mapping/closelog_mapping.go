package mapping

import (
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	"github.com/hotelnest/shift_ledger_app/internal/models"
)

// ToDomainCloseLog converts a DB row to the domain settlement record.
func ToDomainCloseLog(m models.CloseLog) domain.CloseLog {
	return domain.CloseLog{
		ID:              m.ID,
		BranchID:        m.BranchID,
		BranchCode:      m.BranchCode,
		CloserID:        m.CloserID,
		CloserName:      m.CloserName,
		ClosedAt:        m.ClosedAt,
		ReportedRevenue: m.ReportedRevenue,
		OnlineRevenue:   m.OnlineRevenue,
		BranchRevenue:   m.BranchRevenue,
		TransactionIDs:  m.TransactionIDs,
	}
}
