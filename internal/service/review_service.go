package service

import (
	"context"
	"strings"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 商品评价服务
// 评价写入后在同一事务内重新聚合商品评分
type ReviewService struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	pipeline    *reconcile.Pipeline
	publisher   events.Publisher
	search      *SearchService
}

// NewReviewService 创建评价服务
func NewReviewService(
	repo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	pipeline *reconcile.Pipeline,
	publisher events.Publisher,
	searchService *SearchService,
) *ReviewService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ReviewService{
		repo:        repo,
		productRepo: productRepo,
		pipeline:    pipeline,
		publisher:   publisher,
		search:      searchService,
	}
}

// ReviewInput 评价输入
type ReviewInput struct {
	Body  string
	Score int
}

// AdminReviewQuery 后台评价查询条件
type AdminReviewQuery struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
	Approved  *bool
}

// Submit 用户提交评价（默认未审核）
func (s *ReviewService) Submit(ctx context.Context, userID uint, slug string, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	existing, err := s.repo.GetByProductAndUser(product.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Body:      strings.TrimSpace(input.Body),
		Score:     input.Score,
	}
	err = s.writeAndAggregate(ctx, []uint{product.ID}, func(repo repository.ReviewRepository) error {
		return repo.Create(review)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	publishEvent(ctx, s.publisher, constants.EventReviewSubmitted, review.ID, map[string]interface{}{
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"score":      review.Score,
	})
	return review, nil
}

// UpdateOwn 修改自己的评价，修改后需重新审核
func (s *ReviewService) UpdateOwn(ctx context.Context, userID, reviewID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}
	review, err := s.ownReview(userID, reviewID)
	if err != nil {
		return nil, err
	}
	review.Body = strings.TrimSpace(input.Body)
	review.Score = input.Score
	review.Approved = false

	err = s.writeAndAggregate(ctx, []uint{review.ProductID}, func(repo repository.ReviewRepository) error {
		return repo.Update(review)
	})
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.publisher, constants.EventReviewUpdated, review.ID, map[string]interface{}{
		"product_id": review.ProductID,
		"score":      review.Score,
	})
	s.search.SyncProduct(ctx, review.ProductID)
	return review, nil
}

// DeleteOwn 删除自己的评价
func (s *ReviewService) DeleteOwn(ctx context.Context, userID, reviewID uint) error {
	review, err := s.ownReview(userID, reviewID)
	if err != nil {
		return err
	}
	return s.delete(ctx, review)
}

// AdminDelete 后台删除评价
func (s *ReviewService) AdminDelete(ctx context.Context, reviewID uint) error {
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return s.delete(ctx, review)
}

// SetApproved 批量审核/驳回，每个受影响商品只聚合一次
func (s *ReviewService) SetApproved(ctx context.Context, ids []uint, approved bool) ([]uint, error) {
	ids = reconcile.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrInvalidInput
	}
	var productIDs []uint
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).SetApproved(ids, approved)
		if err != nil {
			return err
		}
		productIDs = affected
		return s.pipeline.AfterReviewChange(ctx, repository.NewReconcileStore(tx), affected...)
	})
	if err != nil {
		return nil, err
	}

	eventType := constants.EventReviewRejected
	if approved {
		eventType = constants.EventReviewApproved
	}
	publishEvents(ctx, s.publisher, eventType, ids)
	for _, productID := range productIDs {
		s.search.SyncProduct(ctx, productID)
	}
	return productIDs, nil
}

// AdminList 后台评价列表
func (s *ReviewService) AdminList(q AdminReviewQuery) ([]models.Review, int64, error) {
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	return s.repo.List(repository.ReviewListFilter{
		Page:        page,
		PageSize:    pageSize,
		ProductID:   q.ProductID,
		UserID:      q.UserID,
		Approved:    q.Approved,
		WithUser:    true,
		WithProduct: true,
	})
}

// ListByUser 用户自己的评价
func (s *ReviewService) ListByUser(userID uint) ([]models.Review, error) {
	reviews, _, err := s.repo.List(repository.ReviewListFilter{UserID: userID, WithProduct: true})
	return reviews, err
}

func (s *ReviewService) delete(ctx context.Context, review *models.Review) error {
	err := s.writeAndAggregate(ctx, []uint{review.ProductID}, func(repo repository.ReviewRepository) error {
		return repo.Delete(review.ID)
	})
	if err != nil {
		return err
	}
	publishEvent(ctx, s.publisher, constants.EventReviewDeleted, review.ID, map[string]interface{}{
		"product_id": review.ProductID,
		"user_id":    review.UserID,
	})
	s.search.SyncProduct(ctx, review.ProductID)
	return nil
}

func (s *ReviewService) writeAndAggregate(ctx context.Context, productIDs []uint, write func(repo repository.ReviewRepository) error) error {
	return s.repo.Transaction(func(tx *gorm.DB) error {
		if err := write(s.repo.WithTx(tx)); err != nil {
			return err
		}
		return s.pipeline.AfterReviewChange(ctx, repository.NewReconcileStore(tx), productIDs...)
	})
}

func (s *ReviewService) ownReview(userID, reviewID uint) (*models.Review, error) {
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrReviewNotOwner
	}
	return review, nil
}

func validateReviewInput(input ReviewInput) error {
	if strings.TrimSpace(input.Body) == "" {
		return ErrReviewBodyRequired
	}
	if input.Score < constants.ReviewScoreMin || input.Score > constants.ReviewScoreMax {
		return ErrReviewScoreInvalid
	}
	return nil
}
