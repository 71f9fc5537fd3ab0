package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// productsテーブルを作成・更新
func (r *ProductGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.Product{})
}

// 検索/ページング付きで返す。新しい順。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// name / description を対象
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	if err := tx.Order("created_at desc").Order("id desc").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Product{}, repo.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	return r.first(ctx, "slug = ?", strings.ToLower(strings.TrimSpace(slug)))
}

func (r *ProductGormRepository) first(ctx context.Context, query string, arg string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where(query, arg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	prepare(&p, time.Now())

	err := r.db.WithContext(ctx).Create(&p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Product{}, repo.ErrDuplicate
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 全件入れ替え（トランザクション）
func (r *ProductGormRepository) ReplaceAll(ctx context.Context, products []model.Product) (int, error) {
	now := time.Now()
	rows := make([]model.Product, len(products))
	for i, p := range products {
		prepare(&p, now)
		rows[i] = p
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, repo.ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func prepare(p *model.Product, now time.Time) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
