package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

func newAdminFixture() (*memStore, AdminService, LedgerService) {
	s := newMemStore()
	partyRepo := &memPartyRepo{s: s}
	txRepo := &memTxRepo{s: s}
	admin := NewAdminService(nil, partyRepo, txRepo, &memProfileRepo{s: s})
	return s, admin, NewLedgerService(txRepo, partyRepo)
}

func TestValidateIntegrityReportsDrift(t *testing.T) {
	s, admin, ledger := newAdminFixture()
	good := s.addParty("Consistent")
	bad := s.addParty("Drifted")

	addTx(t, ledger, good.ID, model.TxCredit, 100)
	addTx(t, ledger, bad.ID, model.TxCredit, 100)

	report, err := admin.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 2, report.PartiesChecked)

	// corrupt one cached balance behind the protocol's back
	s.parties[bad.ID].TotalBalance = decimal.NewFromInt(42)

	report, err = admin.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Mismatches, 1, "mismatch is reported, not fixed")
	m := report.Mismatches[0]
	assert.Equal(t, bad.ID.String(), m.PartyID)
	assert.True(t, m.Cached.Equal(decimal.NewFromInt(42)))
	assert.True(t, m.Computed.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.parties[bad.ID].TotalBalance.Equal(decimal.NewFromInt(42)),
		"validation must not auto-correct")
}

func TestProfileFallsBackToDefaults(t *testing.T) {
	s, admin, _ := newAdminFixture()

	// absent row
	p, err := admin.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile().Name, p.Name)
	assert.Equal(t, "৳", p.CurrencySymbol)

	// malformed row (fails the shape check)
	s.profile = &model.UserProfile{ID: model.SingletonID, Name: "   "}
	p, err = admin.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile().Name, p.Name)

	// stored row wins once valid
	_, err = admin.UpdateProfile(context.Background(), dto.ProfileRequest{
		Name:           "Mina",
		CurrencySymbol: "$",
	})
	require.NoError(t, err)
	p, err = admin.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mina", p.Name)
	assert.Equal(t, "$", p.CurrencySymbol)
}

func TestSettingsFallsBackToDefaults(t *testing.T) {
	_, admin, _ := newAdminFixture()

	st, err := admin.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "daily", st.BackupFrequency)
	assert.Equal(t, 30, st.RetentionDays)

	updated, err := admin.UpdateSettings(context.Background(), dto.SettingsRequest{
		Language:        "bn",
		ThemeColor:      "teal",
		BackupFrequency: "weekly",
		RetentionDays:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, "weekly", updated.BackupFrequency)

	st, err = admin.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bn", st.Language)
	assert.Equal(t, 7, st.RetentionDays)
}
