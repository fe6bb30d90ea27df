package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type AddressRequest struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Line1      string   `json:"line1"`
	Line2      string   `json:"line2"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Landmark   string   `json:"landmark"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type AddressUsecase struct {
	addresses repo.AddressRepository

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

func NewAddressUsecase(addresses repo.AddressRepository, logger *zap.Logger) *AddressUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressUsecase{
		addresses: addresses,
		logger:    logger,
		now:       systemClock,
		newID:     newUUID,
	}
}

func (u *AddressUsecase) List(ctx context.Context, id Identity) ([]model.Address, error) {
	if err := requireUser(id); err != nil {
		return nil, err
	}

	list, err := u.addresses.ListByUserID(ctx, id.UserID)
	if err != nil {
		return nil, u.internal("list addresses", err)
	}
	if list == nil {
		list = []model.Address{}
	}
	return list, nil
}

// 最初の住所はデフォルトにする
func (u *AddressUsecase) Create(ctx context.Context, id Identity, req AddressRequest) (model.Address, error) {
	if err := requireUser(id); err != nil {
		return model.Address{}, err
	}

	//入力チェック
	if err := validateAddress(&req); err != nil {
		return model.Address{}, err
	}

	existing, err := u.addresses.ListByUserID(ctx, id.UserID)
	if err != nil {
		return model.Address{}, u.internal("list addresses", err)
	}

	now := u.now()
	a := model.Address{
		ID:        u.newID(),
		UserID:    id.UserID,
		IsDefault: len(existing) == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyAddress(&a, req)

	created, err := u.addresses.Create(ctx, a)
	if err != nil {
		return model.Address{}, u.internal("create address", err)
	}
	return created, nil
}

func (u *AddressUsecase) Update(ctx context.Context, id Identity, addressID string, req AddressRequest) (model.Address, error) {
	if err := requireUser(id); err != nil {
		return model.Address{}, err
	}
	if err := validateAddress(&req); err != nil {
		return model.Address{}, err
	}

	a, err := u.owned(ctx, id, addressID)
	if err != nil {
		return model.Address{}, err
	}

	applyAddress(&a, req)
	a.UpdatedAt = u.now()

	if err := u.addresses.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Address{}, ErrNotFound("Address not found")
		}
		return model.Address{}, u.internal("update address", err)
	}
	return a, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, id Identity, addressID string) error {
	if err := requireUser(id); err != nil {
		return err
	}

	a, err := u.owned(ctx, id, addressID)
	if err != nil {
		return err
	}

	if err := u.addresses.Delete(ctx, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("Address not found")
		}
		return u.internal("delete address", err)
	}
	return nil
}

// user内でdefaultは1つ
func (u *AddressUsecase) SetDefault(ctx context.Context, id Identity, addressID string) error {
	if err := requireUser(id); err != nil {
		return err
	}

	a, err := u.owned(ctx, id, addressID)
	if err != nil {
		return err
	}

	if err := u.addresses.SetDefault(ctx, id.UserID, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("Address not found")
		}
		return u.internal("set default address", err)
	}
	return nil
}

// 所有チェック（本人のみ）。存在しなければ404、他人のものなら403
func (u *AddressUsecase) owned(ctx context.Context, id Identity, addressID string) (model.Address, error) {
	addressID = strings.TrimSpace(addressID)
	if addressID == "" {
		return model.Address{}, ErrValidation("invalid id")
	}

	ok, err := u.addresses.IsOwnedByUser(ctx, addressID, id.UserID)
	if err != nil {
		return model.Address{}, u.internal("check address owner", err)
	}

	a, err := u.addresses.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, ErrNotFound("Address not found")
	}
	if err != nil {
		return model.Address{}, u.internal("find address", err)
	}
	if !ok {
		return model.Address{}, ErrForbidden("address does not belong to user")
	}
	return a, nil
}

func validateAddress(req *AddressRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Line1 = strings.TrimSpace(req.Line1)
	req.City = strings.TrimSpace(req.City)
	req.PostalCode = strings.TrimSpace(req.PostalCode)

	if req.Name == "" || req.Line1 == "" || req.City == "" || req.PostalCode == "" {
		return ErrValidation("name, line1, city and postalCode are required")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return ErrValidation("latitude and longitude are required")
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return ErrValidation("latitude must be between -90 and 90")
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return ErrValidation("longitude must be between -180 and 180")
	}
	return nil
}

func applyAddress(a *model.Address, req AddressRequest) {
	a.Name = req.Name
	a.Phone = strings.TrimSpace(req.Phone)
	a.Line1 = req.Line1
	a.Line2 = strings.TrimSpace(req.Line2)
	a.City = req.City
	a.State = strings.TrimSpace(req.State)
	a.PostalCode = req.PostalCode
	a.Landmark = strings.TrimSpace(req.Landmark)
	a.Latitude = *req.Latitude
	a.Longitude = *req.Longitude
}

func (u *AddressUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}
