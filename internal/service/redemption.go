package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/internal/utils"
	"kazanion/pkg/cache"
	"kazanion/pkg/logger"
)

// defaultPurchaseAttempts 商品版本冲突时的最大尝试次数
const defaultPurchaseAttempts = 3

// RedemptionService 积分兑换服务
type RedemptionService struct {
	tx          *repository.Transactor
	products    *repository.ProductRepository
	users       *repository.UserRepository
	redemptions *repository.RedemptionRepository
	cache       *cache.Cache
	logger      *logger.Logger

	maxAttempts int
	now         func() time.Time
	// beforeWrite 在读取商品之后、写入库存之前调用，为 nil 时跳过
	beforeWrite func(ctx context.Context, tx *sqlx.Tx, productID int64) error
}

// NewRedemptionService 创建兑换服务
func NewRedemptionService(
	tx *repository.Transactor,
	products *repository.ProductRepository,
	users *repository.UserRepository,
	redemptions *repository.RedemptionRepository,
	cache *cache.Cache,
	logger *logger.Logger,
) *RedemptionService {
	return &RedemptionService{
		tx:          tx,
		products:    products,
		users:       users,
		redemptions: redemptions,
		cache:       cache,
		logger:      logger,
		maxAttempts: defaultPurchaseAttempts,
		now:         time.Now,
	}
}

// Purchase 用积分兑换商品规格。库存扣减、余额扣减和兑换记录在同一事务内提交，
// 商品行使用版本号做乐观锁，冲突时重新执行全部校验。
func (s *RedemptionService) Purchase(ctx context.Context, productID int64, req types.PurchaseRequest) (*model.PurchaseResult, error) {
	if req.UserID == nil || *req.UserID <= 0 || req.Size == "" || req.Color == "" {
		return nil, apperr.Validation(constants.MsgPurchaseFieldsRequired)
	}
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperr.Validation(constants.MsgInvalidQuantity)
		}
		quantity = *req.Quantity
	}

	var (
		rd  *model.Redemption
		err error
	)
	for attempt := 1; ; attempt++ {
		rd, err = s.redeemOnce(ctx, productID, *req.UserID, req.Size, req.Color, quantity)
		if !errors.Is(err, repository.ErrVersionConflict) {
			break
		}
		if attempt >= s.maxAttempts {
			s.logger.Warn("兑换重试次数耗尽", "product_id", productID, "user_id", *req.UserID, "attempts", attempt)
			return nil, apperr.Conflict(constants.MsgPurchaseBusy)
		}
		s.logger.Debug("商品版本冲突，重试兑换", "product_id", productID, "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("兑换后读取商品失败: %w", err)
	}
	user, err := s.users.GetByID(ctx, *req.UserID)
	if err != nil {
		return nil, fmt.Errorf("兑换后读取用户失败: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheKeyDashboard); err != nil {
		s.logger.Warn("清除仪表盘缓存失败", err)
	}
	s.logger.Info("兑换成功",
		"order_no", rd.OrderNo,
		"product_id", productID,
		"user_id", user.ID,
		"size", rd.Size,
		"color", rd.Color,
		"quantity", rd.Quantity,
		"points", rd.Points.String(),
	)

	return &model.PurchaseResult{Success: true, Product: product, User: user, Redemption: rd}, nil
}

// redeemOnce 执行一次完整的校验和扣减，版本冲突时返回 repository.ErrVersionConflict
func (s *RedemptionService) redeemOnce(ctx context.Context, productID, userID int64, size, color string, quantity int) (*model.Redemption, error) {
	var rd *model.Redemption
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		products := s.products.WithTx(tx)
		users := s.users.WithTx(tx)

		product, err := products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		idx := product.Variants.Find(size, color)
		if idx < 0 {
			return apperr.Validation(constants.MsgVariantNotFound)
		}
		if product.Variants[idx].Stock < quantity {
			return apperr.InsufficientStock(constants.MsgInsufficientStock)
		}

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		cost := product.RewardPoints.Mul(decimal.NewFromInt(int64(quantity)))
		if user.TotalEarnings.LessThan(cost) {
			return apperr.InsufficientBalance(constants.MsgInsufficientBalance)
		}

		if s.beforeWrite != nil {
			if err := s.beforeWrite(ctx, tx, product.ID); err != nil {
				return err
			}
		}

		variants := product.Variants.Clone()
		variants[idx].Stock -= quantity
		if err := products.UpdateVariants(ctx, product.ID, product.Version, variants); err != nil {
			return err
		}

		// 零积分商品不扣余额，MySQL 对未改变的行返回 0 影响行数
		if !cost.IsZero() {
			ok, err := users.DebitBalance(ctx, user.ID, cost)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.InsufficientBalance(constants.MsgInsufficientBalance)
			}
		}

		rd = &model.Redemption{
			OrderNo:   utils.NewOrderNo("RDM", s.now()),
			ProductID: product.ID,
			UserID:    user.ID,
			Size:      size,
			Color:     color,
			Quantity:  quantity,
			Points:    cost,
		}
		return s.redemptions.WithTx(tx).Create(ctx, rd)
	})
	if err != nil {
		return nil, err
	}
	return rd, nil
}

// List 分页获取兑换记录
func (s *RedemptionService) List(ctx context.Context, userID *int64, page repository.Page) ([]model.Redemption, int64, error) {
	return s.redemptions.List(ctx, userID, page)
}
