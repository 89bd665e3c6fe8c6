package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
)

type PartyService interface {
	AddParty(ctx context.Context, req dto.AddPartyRequest) (*dto.PartyResponse, error)
	// GetParty returns (nil, nil) when the id is unknown.
	GetParty(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error)
	ListParties(ctx context.Context) ([]dto.PartyResponse, error)
	UpdateParty(ctx context.Context, id uuid.UUID, req dto.UpdatePartyRequest) error
	// DeleteParty removes the party and, by policy, its transactions in the
	// same DB transaction.
	DeleteParty(ctx context.Context, id uuid.UUID) error
	// RecomputeBalance rebuilds the cached balance from the transaction table
	// and overwrites the stored value. Repair/validation path.
	RecomputeBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

type partyService struct {
	repo   repository.PartyRepository
	txRepo repository.TransactionRepository
}

func NewPartyService(repo repository.PartyRepository, txRepo repository.TransactionRepository) PartyService {
	return &partyService{repo: repo, txRepo: txRepo}
}

func (s *partyService) AddParty(ctx context.Context, req dto.AddPartyRequest) (*dto.PartyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	kind := req.Kind
	if kind == "" {
		kind = model.KindCustomer
	}

	p := &model.Party{
		Name:         name,
		Phone:        req.Phone,
		Kind:         kind,
		PhotoRef:     req.PhotoRef,
		TotalBalance: decimal.Zero,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}

	resp := toPartyResponse(p)
	return &resp, nil
}

func (s *partyService) GetParty(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find party: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	resp := toPartyResponse(p)
	return &resp, nil
}

func (s *partyService) ListParties(ctx context.Context) ([]dto.PartyResponse, error) {
	parties, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	out := make([]dto.PartyResponse, 0, len(parties))
	for i := range parties {
		out = append(out, toPartyResponse(&parties[i]))
	}
	return out, nil
}

func (s *partyService) UpdateParty(ctx context.Context, id uuid.UUID, req dto.UpdatePartyRequest) error {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("name", "must not be empty")
		}
		fields["name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Kind != nil {
		fields["kind"] = *req.Kind
	}
	if req.PhotoRef != nil {
		fields["photo_ref"] = *req.PhotoRef
	}
	if len(fields) == 0 {
		// empty patch is a successful no-op
		return nil
	}

	affected, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	if affected == 0 {
		return notFound("party", id.String())
	}
	return nil
}

func (s *partyService) DeleteParty(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.DeleteWithTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	if affected == 0 {
		return notFound("party", id.String())
	}
	return nil
}

func (s *partyService) RecomputeBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("find party: %w", err)
	}
	if p == nil {
		return decimal.Zero, notFound("party", id.String())
	}

	sum, err := s.txRepo.SumForParty(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: %w", err)
	}
	if err := s.repo.SetBalance(ctx, nil, id, sum); err != nil {
		return decimal.Zero, fmt.Errorf("store recomputed balance: %w", err)
	}
	return sum, nil
}

func toPartyResponse(p *model.Party) dto.PartyResponse {
	return dto.PartyResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Phone:        p.Phone,
		Kind:         p.Kind,
		PhotoRef:     p.PhotoRef,
		TotalBalance: p.TotalBalance,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
