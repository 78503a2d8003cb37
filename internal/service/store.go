package service

import (
	"context"

	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
)

// StoreService 商店服务
type StoreService struct {
	stores *repository.StoreRepository
}

// NewStoreService 创建商店服务
func NewStoreService(stores *repository.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

// List 分页获取商店
func (s *StoreService) List(ctx context.Context, page repository.Page) ([]model.Store, int64, error) {
	return s.stores.List(ctx, page)
}

// Get 根据ID获取商店
func (s *StoreService) Get(ctx context.Context, id int64) (*model.Store, error) {
	return s.stores.GetByID(ctx, id)
}

// Create 创建商店
func (s *StoreService) Create(ctx context.Context, req types.StoreRequest) (*model.Store, error) {
	if err := requireText(req.Name, constants.MsgNameRequired); err != nil {
		return nil, err
	}
	st := &model.Store{IsActive: true}
	applyStore(st, req)
	if err := s.stores.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update 修改商店
func (s *StoreService) Update(ctx context.Context, id int64, req types.StoreRequest) (*model.Store, error) {
	if req.Name != nil {
		if err := requireText(req.Name, constants.MsgNameRequired); err != nil {
			return nil, err
		}
	}
	st, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyStore(st, req)
	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Delete 删除商店
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	return s.stores.Delete(ctx, id)
}

func applyStore(st *model.Store, req types.StoreRequest) {
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
}
