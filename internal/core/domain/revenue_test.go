package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRevenue(t *testing.T) {
	tests := []struct {
		name       string
		txns       []ShiftTransaction
		wantOnline int64
		wantBranch int64
	}{
		{
			name:       "empty membership",
			txns:       nil,
			wantOnline: 0,
			wantBranch: 0,
		},
		{
			name: "online types accumulate",
			txns: []ShiftTransaction{
				{Type: TypeCompanyAccount, Amount: 100},
				{Type: TypeOTA, Amount: 200},
				{Type: TypeBankTransfer, Amount: 300},
				{Type: TypeCard, Amount: 400},
			},
			wantOnline: 1000,
			wantBranch: 0,
		},
		{
			name: "cash expense subtracts from online",
			txns: []ShiftTransaction{
				{Type: TypeCard, Amount: 500},
				{Type: TypeCashExpense, Amount: 120},
			},
			wantOnline: 380,
			wantBranch: 0,
		},
		{
			name: "mixed shift",
			txns: []ShiftTransaction{
				{Type: TypeOTA, Amount: 100000},
				{Type: TypeBranchAccount, Amount: 50000},
				{Type: TypeCashExpense, Amount: 20000},
			},
			wantOnline: 80000,
			wantBranch: 50000,
		},
		{
			name: "branch account isolated from online",
			txns: []ShiftTransaction{
				{Type: TypeBranchAccount, Amount: 900},
				{Type: TypeCashExpense, Amount: 100},
			},
			wantOnline: -100,
			wantBranch: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			online, branch := ComputeRevenue(tt.txns)
			assert.Equal(t, tt.wantOnline, online)
			assert.Equal(t, tt.wantBranch, branch)
		})
	}
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, int64(250), SignedAmount(TypeOTA, 250))
	assert.Equal(t, int64(250), SignedAmount(TypeBranchAccount, 250))
	assert.Equal(t, int64(-250), SignedAmount(TypeCashExpense, 250))
	assert.Equal(t, int64(0), SignedAmount(TransactionType("UNKNOWN"), 250))
}
