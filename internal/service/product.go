package service

import (
	"context"
	"errors"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// ProductService 商品管理服务
type ProductService struct {
	products *repository.ProductRepository
	stores   *repository.StoreRepository
	logger   *logger.Logger
}

// NewProductService 创建商品服务
func NewProductService(products *repository.ProductRepository, stores *repository.StoreRepository, logger *logger.Logger) *ProductService {
	return &ProductService{products: products, stores: stores, logger: logger}
}

// List 分页获取商品
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, page repository.Page) ([]model.Product, int64, error) {
	return s.products.List(ctx, filter, page)
}

// Get 根据ID获取商品
func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, req types.ProductRequest) (*model.Product, error) {
	if err := requireText(req.Name, constants.MsgNameRequired); err != nil {
		return nil, err
	}
	p := &model.Product{IsActive: true}
	if err := s.apply(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("商品已创建", "product_id", p.ID, "name", p.Name, "stock", p.Stock)
	return p, nil
}

// Update 修改商品，与兑换并发时以版本号重读后重试
func (s *ProductService) Update(ctx context.Context, id int64, req types.ProductRequest) (*model.Product, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, apperr.Validation(constants.MsgNameRequired)
	}
	for attempt := 1; attempt <= defaultUpdateAttempts; attempt++ {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.apply(ctx, p, req); err != nil {
			return nil, err
		}
		err = s.products.Update(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, errConcurrentUpdate
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// apply 将请求中提供的字段写入商品
func (s *ProductService) apply(ctx context.Context, p *model.Product, req types.ProductRequest) error {
	if req.StoreID != nil {
		if _, err := s.stores.GetByID(ctx, *req.StoreID); err != nil {
			return err
		}
		p.StoreID = req.StoreID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.RewardPoints != nil {
		if req.RewardPoints.IsNegative() {
			return apperr.Validation(constants.MsgInvalidRequest)
		}
		p.RewardPoints = *req.RewardPoints
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Images != nil {
		p.Images = model.StringList(req.Images)
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Variants != nil {
		variants, err := toVariants(*req.Variants)
		if err != nil {
			return err
		}
		p.Variants = variants
	}
	p.SyncStock()
	return nil
}

// toVariants 校验 (size, color) 在商品内唯一
func toVariants(in []types.VariantRequest) (model.Variants, error) {
	out := make(model.Variants, 0, len(in))
	for _, v := range in {
		if out.Find(v.Size, v.Color) >= 0 {
			return nil, apperr.Validation(constants.MsgDuplicateVariant)
		}
		out = append(out, model.Variant{Size: v.Size, Color: v.Color, Stock: v.Stock})
	}
	return out, nil
}
