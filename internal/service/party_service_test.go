package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

func newPartyFixture() (*memStore, PartyService, LedgerService) {
	s := newMemStore()
	partyRepo := &memPartyRepo{s: s}
	txRepo := &memTxRepo{s: s}
	return s, NewPartyService(partyRepo, txRepo), NewLedgerService(txRepo, partyRepo)
}

func TestAddPartyStartsAtZeroBalance(t *testing.T) {
	s, svc, _ := newPartyFixture()

	resp, err := svc.AddParty(context.Background(), dto.AddPartyRequest{
		Name: "  Rahim Store  ",
		Kind: model.KindSupplier,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rahim Store", resp.Name, "name is trimmed")
	assert.True(t, resp.TotalBalance.IsZero())

	id, _ := uuid.Parse(resp.ID)
	assert.Contains(t, s.parties, id)
}

func TestAddPartyRejectsEmptyName(t *testing.T) {
	_, svc, _ := newPartyFixture()

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.AddParty(context.Background(), dto.AddPartyRequest{Name: name, Kind: model.KindCustomer})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	}
}

func TestGetPartyReturnsNilWhenAbsent(t *testing.T) {
	_, svc, _ := newPartyFixture()

	resp, err := svc.GetParty(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestUpdatePartyPatchSemantics(t *testing.T) {
	s, svc, _ := newPartyFixture()
	p := s.addParty("Old Name")
	p.TotalBalance = decimal.NewFromInt(700)

	// empty patch is a successful no-op
	require.NoError(t, svc.UpdateParty(context.Background(), p.ID, dto.UpdatePartyRequest{}))
	assert.Equal(t, "Old Name", s.parties[p.ID].Name)

	// partial patch updates only the supplied fields, balance untouched
	name := "New Name"
	phone := "01712345678"
	require.NoError(t, svc.UpdateParty(context.Background(), p.ID, dto.UpdatePartyRequest{Name: &name, Phone: &phone}))
	assert.Equal(t, "New Name", s.parties[p.ID].Name)
	require.NotNil(t, s.parties[p.ID].Phone)
	assert.Equal(t, "01712345678", *s.parties[p.ID].Phone)
	assert.True(t, s.parties[p.ID].TotalBalance.Equal(decimal.NewFromInt(700)))

	// unknown id is NotFound, not a validation failure
	err := svc.UpdateParty(context.Background(), uuid.New(), dto.UpdatePartyRequest{Name: &name})
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)

	// blank name in a patch is a validation failure
	blank := "  "
	err = svc.UpdateParty(context.Background(), p.ID, dto.UpdatePartyRequest{Name: &blank})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDeletePartyCascadesTransactions(t *testing.T) {
	s, svc, ledger := newPartyFixture()
	p := s.addParty("Cascade")
	other := s.addParty("Keeper")

	addTx(t, ledger, p.ID, model.TxCredit, 100)
	addTx(t, ledger, p.ID, model.TxDebit, 30)
	kept := addTx(t, ledger, other.ID, model.TxCredit, 9)

	require.NoError(t, svc.DeleteParty(context.Background(), p.ID))
	assert.NotContains(t, s.parties, p.ID)
	for _, tx := range s.txs {
		assert.NotEqual(t, p.ID, tx.PartyID, "cascade must remove the party's transactions")
	}
	keptID, _ := uuid.Parse(kept.ID)
	assert.Contains(t, s.txs, keptID, "other parties' transactions survive")

	err := svc.DeleteParty(context.Background(), p.ID)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestRecomputeBalanceOverwritesDrift(t *testing.T) {
	s, svc, ledger := newPartyFixture()
	p := s.addParty("Drift")
	addTx(t, ledger, p.ID, model.TxCredit, 250)

	// simulate cache drift
	s.parties[p.ID].TotalBalance = decimal.NewFromInt(9999)

	sum, err := svc.RecomputeBalance(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(250)))
	assert.True(t, s.parties[p.ID].TotalBalance.Equal(decimal.NewFromInt(250)))

	_, err = svc.RecomputeBalance(context.Background(), uuid.New())
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}
