package mapping

import (
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	"github.com/hotelnest/shift_ledger_app/internal/models"
)

// ToDomainTransaction converts a DB row to the domain entity.
func ToDomainTransaction(m models.ShiftTransaction) domain.ShiftTransaction {
	t := domain.ShiftTransaction{
		ID:              m.ID,
		TransactionCode: m.TransactionCode,
		BranchID:        m.BranchID,
		BranchCode:      m.BranchCode,
		RecorderID:      m.RecorderID,
		RecorderName:    m.RecorderName,
		RecorderCode:    m.RecorderCode,
		Type:            domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		Status:          domain.TransactionStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		CloserID:        m.CloserID,
		ClosedAt:        m.ClosedAt,
		DeleterID:       m.DeleterID,
		DeletedAt:       m.DeletedAt,
	}
	if m.RoomNumber != nil {
		t.RoomNumber = *m.RoomNumber
	}
	if m.TransactionInfo != nil {
		t.TransactionInfo = *m.TransactionInfo
	}
	if m.CloserName != nil {
		t.CloserName = *m.CloserName
	}
	if m.DeleterName != nil {
		t.DeleterName = *m.DeleterName
	}
	return t
}

// ToDomainTransactionSlice converts a slice of DB rows to domain entities.
func ToDomainTransactionSlice(rows []models.ShiftTransaction) []domain.ShiftTransaction {
	out := make([]domain.ShiftTransaction, len(rows))
	for i, m := range rows {
		out[i] = ToDomainTransaction(m)
	}
	return out
}

// ToModelTransaction converts a domain entity to its DB row shape.
func ToModelTransaction(t domain.ShiftTransaction) models.ShiftTransaction {
	m := models.ShiftTransaction{
		ID:              t.ID,
		TransactionCode: t.TransactionCode,
		BranchID:        t.BranchID,
		RecorderID:      t.RecorderID,
		TransactionType: string(t.Type),
		Amount:          t.Amount,
		Status:          models.TransactionStatus(t.Status),
		CreatedAt:       t.CreatedAt,
		CloserID:        t.CloserID,
		ClosedAt:        t.ClosedAt,
		DeleterID:       t.DeleterID,
		DeletedAt:       t.DeletedAt,
	}
	if t.RoomNumber != "" {
		m.RoomNumber = &t.RoomNumber
	}
	if t.TransactionInfo != "" {
		m.TransactionInfo = &t.TransactionInfo
	}
	return m
}
