package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
)

// ── In-memory repository stubs shared by the service tests ──────────────────
// DB() returns nil so runTx executes the callback directly (unit test mode).

type memStore struct {
	parties  map[uuid.UUID]*model.Party
	txs      map[uuid.UUID]*model.Transaction
	profile  *model.UserProfile
	settings *model.AppSettings
}

func newMemStore() *memStore {
	return &memStore{
		parties: make(map[uuid.UUID]*model.Party),
		txs:     make(map[uuid.UUID]*model.Transaction),
	}
}

func (s *memStore) addParty(name string) *model.Party {
	p := &model.Party{ID: uuid.New(), Name: name, Kind: model.KindCustomer, TotalBalance: decimal.Zero}
	s.parties[p.ID] = p
	return p
}

// ── PartyRepository ──────────────────────────────────────────────────────────

type memPartyRepo struct{ s *memStore }

func (r *memPartyRepo) DB() *gorm.DB { return nil }

func (r *memPartyRepo) Create(_ context.Context, p *model.Party) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.s.parties[p.ID] = p
	return nil
}

func (r *memPartyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Party, error) {
	p, ok := r.s.parties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartyRepo) List(_ context.Context) ([]model.Party, error) {
	out := make([]model.Party, 0, len(r.s.parties))
	for _, p := range r.s.parties {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPartyRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	p, ok := r.s.parties[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		phone := v.(string)
		p.Phone = &phone
	}
	if v, ok := fields["kind"]; ok {
		p.Kind = v.(string)
	}
	if v, ok := fields["photo_ref"]; ok {
		ref := v.(string)
		p.PhotoRef = &ref
	}
	return 1, nil
}

func (r *memPartyRepo) DeleteWithTransactions(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.s.parties[id]; !ok {
		return 0, nil
	}
	delete(r.s.parties, id)
	for txID, t := range r.s.txs {
		if t.PartyID == id {
			delete(r.s.txs, txID)
		}
	}
	return 1, nil
}

func (r *memPartyRepo) ApplyBalanceDelta(_ context.Context, _ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.s.parties[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TotalBalance = p.TotalBalance.Add(delta)
	return nil
}

func (r *memPartyRepo) SetBalance(_ context.Context, _ *gorm.DB, id uuid.UUID, balance decimal.Decimal) error {
	p, ok := r.s.parties[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TotalBalance = balance
	return nil
}

// ── TransactionRepository ────────────────────────────────────────────────────

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) DB() *gorm.DB { return nil }

func (r *memTxRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	r.s.txs[t.ID] = &cp
	return nil
}

func (r *memTxRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.s.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTxRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.s.txs, id)
	return nil
}

func (r *memTxRepo) Update(_ context.Context, _ *gorm.DB, t *model.Transaction) error {
	stored, ok := r.s.txs[t.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Kind = t.Kind
	stored.Amount = t.Amount
	stored.Note = t.Note
	return nil
}

func (r *memTxRepo) ListForParty(_ context.Context, partyID uuid.UUID, limit, offset int) ([]repository.TransactionRow, error) {
	rows := r.collect(func(t *model.Transaction) bool { return t.PartyID == partyID })
	return paginate(rows, limit, offset), nil
}

func (r *memTxRepo) List(_ context.Context, q repository.TransactionQuery) ([]repository.TransactionRow, int64, error) {
	rows := r.collect(func(t *model.Transaction) bool {
		if q.PartyID != "" && t.PartyID.String() != q.PartyID {
			return false
		}
		if q.Kind != "" && t.Kind != q.Kind {
			return false
		}
		if q.Start != nil && t.CreatedAt.Before(*q.Start) {
			return false
		}
		if q.End != nil && !t.CreatedAt.Before(*q.End) {
			return false
		}
		return true
	})
	total := int64(len(rows))
	return paginate(rows, q.Limit, q.Offset), total, nil
}

func (r *memTxRepo) SumForParty(_ context.Context, partyID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.s.txs {
		if t.PartyID == partyID {
			sum = sum.Add(t.BalanceDelta())
		}
	}
	return sum, nil
}

func (r *memTxRepo) collect(keep func(*model.Transaction) bool) []repository.TransactionRow {
	var rows []repository.TransactionRow
	for _, t := range r.s.txs {
		if !keep(t) {
			continue
		}
		name := ""
		if p, ok := r.s.parties[t.PartyID]; ok {
			name = p.Name
		}
		rows = append(rows, repository.TransactionRow{Transaction: *t, PartyName: name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows
}

func paginate(rows []repository.TransactionRow, limit, offset int) []repository.TransactionRow {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// ── ProfileRepository ────────────────────────────────────────────────────────

type memProfileRepo struct{ s *memStore }

func (r *memProfileRepo) GetProfile(_ context.Context) (*model.UserProfile, error) {
	return r.s.profile, nil
}

func (r *memProfileRepo) SaveProfile(_ context.Context, _ *gorm.DB, p *model.UserProfile) error {
	p.ID = model.SingletonID
	r.s.profile = p
	return nil
}

func (r *memProfileRepo) GetSettings(_ context.Context) (*model.AppSettings, error) {
	return r.s.settings, nil
}

func (r *memProfileRepo) SaveSettings(_ context.Context, _ *gorm.DB, s *model.AppSettings) error {
	s.ID = model.SingletonID
	r.s.settings = s
	return nil
}
